package adaptor

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/pseudomuto/movine/pkg/config"
	"github.com/pseudomuto/movine/pkg/migrator"
)

// SQLiteAdaptor satisfies Adaptor against a SQLite database via the pure-Go
// modernc.org/sqlite driver, using sqlx for row mapping and ?-style placeholders.
type SQLiteAdaptor struct {
	db *sqlx.DB
}

// NewSQLiteAdaptor opens the database file named by the given SQLite section.
func NewSQLiteAdaptor(cfg *config.SQLite) (*SQLiteAdaptor, error) {
	conn, err := sqlx.Open("sqlite", cfg.File)
	if err != nil {
		return nil, migrator.WrapError(migrator.KindDB, err, "failed to open sqlite database "+cfg.File)
	}

	return &SQLiteAdaptor{db: conn}, nil
}

func (a *SQLiteAdaptor) InitUpSQL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key TEXT PRIMARY KEY,
	up_hash TEXT NOT NULL,
	down_sql TEXT NOT NULL DEFAULT '',
	down_hash TEXT NOT NULL DEFAULT '',
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, trackingTable)
}

func (a *SQLiteAdaptor) InitDownSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", trackingTable)
}

func (a *SQLiteAdaptor) Init(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, a.InitUpSQL()); err != nil {
		return migrator.WrapError(migrator.KindDB, err, "failed to create tracking table")
	}
	return nil
}

func (a *SQLiteAdaptor) LoadMigrations(ctx context.Context) ([]*migrator.Migration, error) {
	query := fmt.Sprintf("SELECT key, up_hash, down_sql, down_hash FROM %s ORDER BY key ASC", trackingTable)
	return loadTrackingRows(ctx, a.db, query)
}

func (a *SQLiteAdaptor) RunUp(ctx context.Context, m *migrator.Migration) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (key, up_hash, down_sql, down_hash) VALUES (?, ?, ?, ?)",
		trackingTable,
	)
	return runUp(ctx, a.db, m, query)
}

func (a *SQLiteAdaptor) RunDown(ctx context.Context, m *migrator.Migration) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE key = ?", trackingTable)
	return runDown(ctx, a.db, m, query)
}

func (a *SQLiteAdaptor) Close() error {
	return a.db.Close()
}
