package cmd

import (
	"log/slog"
	"os"

	"github.com/pseudomuto/movine/pkg/adaptor"
	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/pseudomuto/movine/pkg/movine"
	"github.com/pseudomuto/movine/pkg/utils"
	"github.com/urfave/cli/v3"
)

// newMovine wires the adaptor and file store selected by cfg into an
// orchestrator writing to stdout. The returned closer releases the adaptor's
// connection pool and must be deferred by the caller.
func newMovine(cfg *config.Config) (*movine.Movine, func(), error) {
	a, err := adaptor.Load(cfg)
	if err != nil {
		return nil, nil, err
	}

	store := migrator.NewFileStore(cfg.Dir)

	return movine.New(a, store, os.Stdout), func() { _ = a.Close() }, nil
}

// countOption translates the -n flag into the optional count the plan builder
// accepts: nil when the flag wasn't set.
func countOption(cmd *cli.Command) *int {
	if !cmd.IsSet("number") {
		return nil
	}

	return utils.Ptr(int(cmd.Int("number")))
}

func numberFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "number",
		Aliases: []string{"n"},
		Usage:   "Limit how many migrations the operation acts on",
	}
}

func planFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "Show the plan instead of executing it",
	}
}

func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug logging",
	}
}

// configureLogging raises the process-wide log level for the duration of the
// command when --verbose is set.
func configureLogging(cmd *cli.Command) {
	if cmd.Bool("verbose") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
}
