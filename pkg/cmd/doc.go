// Package cmd implements the movine CLI: one urfave/cli command per verb
// (init, generate, status, up, down, redo, fix), collected into the root
// application through the fx "commands" group.
//
// Commands are thin: each one validates configuration, wires an orchestrator
// via newMovine, and delegates to the corresponding pkg/movine entry point.
// All migration semantics live below this package.
package cmd
