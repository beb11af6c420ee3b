package adaptor

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
)

// PostgresAdaptor satisfies Adaptor against a Postgres database via pgx's
// database/sql driver, using sqlx for row mapping and $-style placeholders.
type PostgresAdaptor struct {
	db *sqlx.DB
}

// NewPostgresAdaptor opens a connection pool for the given Postgres section.
func NewPostgresAdaptor(cfg *config.Postgres) (*PostgresAdaptor, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)

	conn, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, migrator.WrapError(migrator.KindDB, err, "failed to open postgres connection")
	}

	return &PostgresAdaptor{db: conn}, nil
}

func (a *PostgresAdaptor) InitUpSQL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key TEXT PRIMARY KEY,
	up_hash TEXT NOT NULL,
	down_sql TEXT NOT NULL DEFAULT '',
	down_hash TEXT NOT NULL DEFAULT '',
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, trackingTable)
}

func (a *PostgresAdaptor) InitDownSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", trackingTable)
}

func (a *PostgresAdaptor) Init(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, a.InitUpSQL()); err != nil {
		return migrator.WrapError(migrator.KindDB, err, "failed to create tracking table")
	}
	return nil
}

func (a *PostgresAdaptor) LoadMigrations(ctx context.Context) ([]*migrator.Migration, error) {
	query := fmt.Sprintf("SELECT key, up_hash, down_sql, down_hash FROM %s ORDER BY key ASC", trackingTable)
	return loadTrackingRows(ctx, a.db, query)
}

func (a *PostgresAdaptor) RunUp(ctx context.Context, m *migrator.Migration) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (key, up_hash, down_sql, down_hash) VALUES ($1, $2, $3, $4)",
		trackingTable,
	)
	return runUp(ctx, a.db, m, query)
}

func (a *PostgresAdaptor) RunDown(ctx context.Context, m *migrator.Migration) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE key = $1", trackingTable)
	return runDown(ctx, a.db, m, query)
}

func (a *PostgresAdaptor) Close() error {
	return a.db.Close()
}
