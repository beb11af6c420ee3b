package cmd

import (
	"context"

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type fixParams struct {
	fx.In

	Config *config.Config
}

// NewFixCommand creates the fix command for reconciling drift.
//
// Fix unwinds Divergent and Variant entries from the top of history (using the
// down SQL recorded at apply time), then replays the corrected local scripts
// along with anything unapplied. Afterward no Divergent or Variant entries
// remain and up is unblocked.
func NewFixCommand(p fixParams) *cli.Command {
	return &cli.Command{
		Name:   "fix",
		Usage:  "Reconcile divergent and variant migrations",
		Before: requireConfig(p.Config),
		Flags:  []cli.Flag{planFlag(), verboseFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configureLogging(cmd)

			mv, closer, err := newMovine(p.Config)
			if err != nil {
				return err
			}
			defer closer()

			return mv.Fix(ctx, cmd.Bool("plan"))
		},
	}
}
