package cmd

import (
	"context"

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type initParams struct {
	fx.In

	Config *config.Config
}

// NewInitCommand creates the init command for bootstrapping a project.
//
// Init creates the migrations directory, writes the epoch-keyed movine_init
// migration, creates the tracking table in the configured database, and
// applies any unapplied local migrations. It is safe to re-run.
//
// Example usage:
//
//	# Bootstrap the project described by movine.toml
//	movine init
func NewInitCommand(p initParams) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Create the migration directory and tracking table",
		Before: requireConfig(p.Config),
		Flags:  []cli.Flag{verboseFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configureLogging(cmd)

			mv, closer, err := newMovine(p.Config)
			if err != nil {
				return err
			}
			defer closer()

			return mv.Init(ctx)
		},
	}
}
