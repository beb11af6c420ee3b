package cmd

import (
	"context"
	"log/slog"

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type downParams struct {
	fx.In

	Config *config.Config
}

// NewDownCommand creates the down command for reverting migrations from the
// top of history. Variant entries are reverted using the down SQL recorded in
// the tracking table at apply time; --ignore-divergent leaves Divergent
// entries in place while still reverting Variants.
func NewDownCommand(p downParams) *cli.Command {
	return &cli.Command{
		Name:   "down",
		Usage:  "Revert migrations from the top of history",
		Before: requireConfig(p.Config),
		Flags: []cli.Flag{
			numberFlag(),
			planFlag(),
			&cli.BoolFlag{
				Name:    "ignore-divergent",
				Aliases: []string{"i"},
				Usage:   "Leave divergent migrations in place",
			},
			verboseFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configureLogging(cmd)

			mv, closer, err := newMovine(p.Config)
			if err != nil {
				return err
			}
			defer closer()

			opts := migrator.Options{
				Count:           countOption(cmd),
				IgnoreDivergent: cmd.Bool("ignore-divergent"),
			}

			slog.Debug("running down", "number", cmd.Int("number"), "ignore_divergent", opts.IgnoreDivergent)
			return mv.Down(ctx, opts, cmd.Bool("plan"))
		},
	}
}
