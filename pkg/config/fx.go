package config

import (
	"go.uber.org/fx"

	"github.com/pseudomuto/movine/pkg/migrator"
)

// Module provides the process-wide Config, loaded once from movine.toml (or the
// environment) at startup. When no configuration is found it provides a nil
// *Config, which every command rejects through requireConfig.
var Module = fx.Module("config", fx.Provide(
	func() (*Config, error) {
		cfg, err := Load(DefaultFile)
		if err != nil && migrator.IsKind(err, migrator.KindConfigNotFound) {
			return nil, nil
		}
		return cfg, err
	},
))
