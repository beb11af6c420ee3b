package adaptor

import (
	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
)

// Load constructs the Adaptor matching cfg's populated section. cfg.Adaptor
// has already validated that exactly one section is present and complete.
func Load(cfg *config.Config) (Adaptor, error) {
	section, err := cfg.Adaptor()
	if err != nil {
		return nil, err
	}

	switch section {
	case config.SectionPostgres:
		return NewPostgresAdaptor(cfg.Postgres)
	case config.SectionSQLite:
		return NewSQLiteAdaptor(cfg.SQLite)
	default:
		return nil, migrator.NewError(migrator.KindAdaptorNotFound, "no adaptor section configured")
	}
}
