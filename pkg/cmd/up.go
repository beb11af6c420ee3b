package cmd

import (
	"context"
	"log/slog"

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type upParams struct {
	fx.In

	Config *config.Config
}

// NewUpCommand creates the up command for applying unapplied migrations.
//
// Up applies every Unapplied migration in ascending key order, each inside its
// own transaction. It refuses to run (DirtyHistory) when a Divergent or
// Variant entry precedes a migration that would be applied; run fix first.
//
// Example usage:
//
//	# Apply everything pending
//	movine up
//
//	# Apply only the next migration, or preview without applying
//	movine up -n 1
//	movine up -p
func NewUpCommand(p upParams) *cli.Command {
	return &cli.Command{
		Name:   "up",
		Usage:  "Apply unapplied migrations",
		Before: requireConfig(p.Config),
		Flags:  []cli.Flag{numberFlag(), planFlag(), verboseFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configureLogging(cmd)

			mv, closer, err := newMovine(p.Config)
			if err != nil {
				return err
			}
			defer closer()

			slog.Debug("running up", "number", cmd.Int("number"), "plan", cmd.Bool("plan"))
			return mv.Up(ctx, migrator.Options{Count: countOption(cmd)}, cmd.Bool("plan"))
		},
	}
}
