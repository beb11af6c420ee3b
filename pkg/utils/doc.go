// Package utils provides small shared helpers used across the movine codebase.
//
// Ptr returns a pointer to its argument, which keeps call sites building
// optional Migration payloads and plan options readable:
//
//	m, err := migrator.Build("create_users", now, utils.Ptr(upSQL), utils.Ptr(downSQL))
package utils
