package cmd

import (
	"context"
	"time"

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type generateParams struct {
	fx.In

	Config *config.Config
}

// NewGenerateCommand creates the generate command for writing a new migration
// stub: an empty up.sql/down.sql pair keyed by the current time. An unfilled
// stub is not rejected: up records it in the tracking table without executing
// any SQL.
func NewGenerateCommand(p generateParams) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Write an empty up.sql/down.sql pair keyed by now",
		ArgsUsage: "<name>",
		Before:    requireConfig(p.Config),
		Flags:     []cli.Flag{verboseFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configureLogging(cmd)

			name := cmd.Args().First()
			if name == "" {
				return migrator.NewError(migrator.KindBadMigration, "a migration name is required")
			}

			mv, closer, err := newMovine(p.Config)
			if err != nil {
				return err
			}
			defer closer()

			return mv.Generate(name, time.Now().UTC())
		},
	}
}
