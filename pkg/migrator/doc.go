// Package migrator implements the migration reconciliation engine: content-addressed
// migration identity, matching of on-disk migrations against database-recorded
// migrations, and plan construction for the status/up/down/redo/fix operations.
//
// The package has no knowledge of any particular database or SQL dialect. It treats
// migration payloads as opaque text, hashed for identity, and does not import the
// database-facing half of the system: package adaptor builds on the types declared
// here and executes the plans this package produces.
//
// Key types:
//   - Migration: an immutable, content-addressed record of a single migration.
//   - MatchSet / Match: the classified, ascending-by-key merge of a local and a
//     database-recorded set of migrations.
//   - Plan / PlanBuilder: the ordered list of steps a requested verb produces from a
//     MatchSet.
package migrator
