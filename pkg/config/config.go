// Package config loads movine's database configuration from movine.toml or the
// environment, and selects the adaptor section the CLI should use.
package config

import (
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/pseudomuto/movine/pkg/migrator"
)

// DefaultFile is the configuration file movine looks for in the working directory.
const DefaultFile = "movine.toml"

// DefaultMigrationsDir is the default root of the on-disk migration tree.
const DefaultMigrationsDir = "migrations"

type (
	// Postgres carries the parameters required to connect to a Postgres database.
	// All fields are required when this section is populated.
	Postgres struct {
		User     string `toml:"user" env:"MOVINE_POSTGRES_USER"`
		Password string `toml:"password" env:"MOVINE_POSTGRES_PASSWORD"`
		Database string `toml:"database" env:"MOVINE_POSTGRES_DATABASE"`
		Host     string `toml:"host" env:"MOVINE_POSTGRES_HOST"`
		Port     int    `toml:"port" env:"MOVINE_POSTGRES_PORT"`
	}

	// SQLite carries the parameters required to connect to a SQLite database.
	SQLite struct {
		File string `toml:"file" env:"MOVINE_SQLITE_FILE"`
	}

	// Config is the top-level shape of movine.toml. Exactly one of Postgres or
	// SQLite should be populated; Adaptor() enforces that and reports which keys
	// are missing from whichever section looks selected.
	Config struct {
		Dir      string    `toml:"dir" env:"MOVINE_DIR"`
		Postgres *Postgres `toml:"postgres"`
		SQLite   *SQLite   `toml:"sqlite"`
	}
)

// Load reads Config from path, falling back to environment variables alone when
// the file does not exist. It fails with KindConfigNotFound when neither the file
// nor the environment yields any configuration at all.
func Load(path string) (*Config, error) {
	cfg := &Config{Dir: DefaultMigrationsDir}

	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, migrator.WrapError(migrator.KindConfigParse, err, "failed to parse "+path)
		}
		cfg.normalize()
		return cfg, nil
	}

	// cleanenv only descends into struct-valued fields, so the adaptor sections
	// are read as values and attached to cfg afterwards.
	var env struct {
		Dir      string `env:"MOVINE_DIR"`
		Postgres Postgres
		SQLite   SQLite
	}
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, migrator.WrapError(migrator.KindConfigParse, err, "failed to read configuration from environment")
	}
	if env.Dir != "" {
		cfg.Dir = env.Dir
	}
	cfg.Postgres, cfg.SQLite = &env.Postgres, &env.SQLite
	cfg.normalize()

	if cfg.Postgres == nil && cfg.SQLite == nil {
		return nil, migrator.NewError(migrator.KindConfigNotFound, path+" not found and no adaptor environment variables set")
	}

	return cfg, nil
}

// normalize drops adaptor sections that came back as zero values. Load attaches
// both sections when reading the environment, so an absent section and an
// untouched one are indistinguishable without this.
func (c *Config) normalize() {
	if c.Postgres != nil && *c.Postgres == (Postgres{}) {
		c.Postgres = nil
	}
	if c.SQLite != nil && *c.SQLite == (SQLite{}) {
		c.SQLite = nil
	}
}

// Section identifies which adaptor section of Config is populated.
type Section string

const (
	// SectionPostgres selects the Postgres adaptor.
	SectionPostgres Section = "postgres"
	// SectionSQLite selects the SQLite adaptor.
	SectionSQLite Section = "sqlite"
)

// Adaptor reports which adaptor section is selected and validates that every
// required key in that section is present. It fails with KindAdaptorNotFound if
// neither section is populated, or KindMissingParams naming the absent keys if
// the selected section is incomplete.
func (c *Config) Adaptor() (Section, error) {
	switch {
	case c.Postgres != nil && c.SQLite != nil:
		return "", migrator.NewError(migrator.KindAdaptorNotFound, "both postgres and sqlite sections present; exactly one adaptor must be configured")
	case c.Postgres != nil:
		if missing := c.Postgres.missingKeys(); len(missing) > 0 {
			return "", missingParamsError(missing)
		}
		return SectionPostgres, nil
	case c.SQLite != nil:
		if missing := c.SQLite.missingKeys(); len(missing) > 0 {
			return "", missingParamsError(missing)
		}
		return SectionSQLite, nil
	default:
		return "", migrator.NewError(migrator.KindAdaptorNotFound, "no adaptor section (postgres or sqlite) configured")
	}
}

func (p *Postgres) missingKeys() []string {
	var missing []string
	if p.User == "" {
		missing = append(missing, "user")
	}
	if p.Password == "" {
		missing = append(missing, "password")
	}
	if p.Database == "" {
		missing = append(missing, "database")
	}
	if p.Host == "" {
		missing = append(missing, "host")
	}
	if p.Port == 0 {
		missing = append(missing, "port")
	}
	return missing
}

func (s *SQLite) missingKeys() []string {
	var missing []string
	if s.File == "" {
		missing = append(missing, "file")
	}
	return missing
}

func missingParamsError(keys []string) error {
	return migrator.NewError(migrator.KindMissingParams, "missing required parameters: "+strings.Join(keys, ", "))
}
