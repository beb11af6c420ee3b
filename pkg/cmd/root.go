package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the main movine CLI application with the given
// version and command-line arguments. Commands are collected from the fx
// "commands" group and the app is started via an fx lifecycle hook so that
// shutdown (and the process exit code) flows through fx.Shutdowner.
//
// Configuration is read from movine.toml in the working directory, or from
// MOVINE_* environment variables when the file is absent.
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "movine",
		Usage: "A migration manager for your database schema",
		Description: `movine evolves a database schema forward and backward through an ordered
sequence of paired up/down SQL scripts, detecting and reconciling drift
between the migrations recorded in the database and those present on disk.

Migrations live under migrations/<YYYY-MM-DD-HHMMSS>_<name>/{up.sql,down.sql}
and are tracked in the database by key and content hash, so movine can tell
when an applied script no longer matches the copy on disk.`,
		Version:  p.Version.Version,
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func requireConfig(cfg *config.Config) func(context.Context, *cli.Command) (context.Context, error) {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cfg == nil {
			return ctx, migrator.NewError(migrator.KindConfigNotFound, config.DefaultFile+" not found and no MOVINE_* environment variables set")
		}

		return ctx, nil
	}
}
