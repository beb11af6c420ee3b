// Movine is a migration manager for your database schema.
//
// It evolves a schema forward and backward through an ordered sequence of
// paired up/down SQL scripts, tracking each applied migration in the database
// by key and content hash so that drift between the deployed history and the
// scripts on disk is detected and can be reconciled.
//
// Usage:
//
//	# Bootstrap a project (movine.toml must describe the database)
//	movine init
//
//	# Create a new migration stub, inspect state, move the schema around
//	movine generate create_users
//	movine status
//	movine up
//	movine down -n 1
//	movine fix
//
// For configuration options, see package config.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/pseudomuto/movine/pkg/cmd"
	"github.com/pseudomuto/movine/pkg/config"
	"go.uber.org/fx"
)

// Build-time variables set by GoReleaser during release builds.
var (
	version string = "local"
	commit  string = "local"
	date    string = time.Now().UTC().Format(time.RFC3339)
)

func main() {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			func() context.Context { return context.Background() },
			func() []string { return os.Args },
			func() *cmd.Version {
				return &cmd.Version{Version: version, Commit: commit, Timestamp: date}
			},
		),
		config.Module,
		cmd.Module,
	)

	// fx.NopLogger keeps DI noise out of CLI output, so surface build errors
	// (e.g. a malformed movine.toml) ourselves before running.
	if err := app.Err(); err != nil {
		log.Fatal(err)
	}

	app.Run()
}
