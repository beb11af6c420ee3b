package cmd

import (
	"context"

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type statusParams struct {
	fx.In

	Config *config.Config
}

// NewStatusCommand creates the status command for showing migration status.
//
// Status prints every migration known to either side, classified by comparing
// the content hashes recorded in the database against the files on disk:
//
//	Applied    — in both, hashes match
//	Unapplied  — on disk only
//	Divergent  — in both, hashes differ
//	Variant    — in the database only
//
// Example usage:
//
//	movine status
func NewStatusCommand(p statusParams) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show every migration and its classification",
		Before: requireConfig(p.Config),
		Flags:  []cli.Flag{verboseFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configureLogging(cmd)

			mv, closer, err := newMovine(p.Config)
			if err != nil {
				return err
			}
			defer closer()

			return mv.Status(ctx)
		},
	}
}
