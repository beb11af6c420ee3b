package cmd

import (
	"context"

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type redoParams struct {
	fx.In

	Config *config.Config
}

// NewRedoCommand creates the redo command: down then up for the most recent
// applied migration (or the top -n of them). Fails when the top of history is
// not Applied; run fix first.
func NewRedoCommand(p redoParams) *cli.Command {
	return &cli.Command{
		Name:   "redo",
		Usage:  "Revert and re-apply the most recent migrations",
		Before: requireConfig(p.Config),
		Flags:  []cli.Flag{numberFlag(), planFlag(), verboseFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configureLogging(cmd)

			mv, closer, err := newMovine(p.Config)
			if err != nil {
				return err
			}
			defer closer()

			return mv.Redo(ctx, migrator.Options{Count: countOption(cmd)}, cmd.Bool("plan"))
		},
	}
}
