package adaptor

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/pseudomuto/movine/pkg/migrator"
)

// trackingRow mirrors the tracking-table columns the engine reads: key, the
// applied up-hash, the down-SQL payload needed for a future down step, and its
// hash. applied_at is written but never read back.
type trackingRow struct {
	Key      string `db:"key"`
	UpHash   string `db:"up_hash"`
	DownSQL  string `db:"down_sql"`
	DownHash string `db:"down_hash"`
}

// loadTrackingRows reads every row of the tracking table, ordered by key, and
// reconstructs each as a Migration via migrator.FromTrackingRow.
func loadTrackingRows(ctx context.Context, db *sqlx.DB, query string) ([]*migrator.Migration, error) {
	var rows []trackingRow
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, migrator.WrapError(migrator.KindDB, err, "failed to load tracking table")
	}

	migrations := make([]*migrator.Migration, 0, len(rows))
	for _, row := range rows {
		var downSQL *string
		if row.DownSQL != "" {
			downSQL = &row.DownSQL
		}

		m, err := migrator.FromTrackingRow(row.Key, row.UpHash, downSQL)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, m)
	}

	return migrations, nil
}

// runUp executes m's up-SQL and inserts its tracking row inside a single
// transaction, rolling back both on any failure.
func runUp(ctx context.Context, db *sqlx.DB, m *migrator.Migration, insertQuery string) error {
	if !m.HasUp() {
		return migrator.NewError(migrator.KindBadMigration, "migration "+m.Key()+" has no up SQL to run")
	}

	downSQL := ""
	if m.DownSQL != nil {
		downSQL = *m.DownSQL
	}
	downHash := ""
	if m.DownHash != nil {
		downHash = *m.DownHash
	}

	return inTx(ctx, db, func(tx *sqlx.Tx) error {
		// Empty payloads (the bootstrap migration, unfilled stubs applied via
		// fix) record a tracking row without executing anything.
		if strings.TrimSpace(*m.UpSQL) != "" {
			if _, err := tx.ExecContext(ctx, *m.UpSQL); err != nil {
				return migrator.WrapError(migrator.KindDB, err, "failed to run up migration "+m.Key())
			}
		}
		if _, err := tx.ExecContext(ctx, insertQuery, m.Key(), *m.UpHash, downSQL, downHash); err != nil {
			return migrator.WrapError(migrator.KindDB, err, "failed to record tracking row for "+m.Key())
		}
		return nil
	})
}

// runDown executes m's down-SQL and deletes its tracking row inside a single
// transaction, rolling back both on any failure.
func runDown(ctx context.Context, db *sqlx.DB, m *migrator.Migration, deleteQuery string) error {
	if !m.HasDown() {
		return migrator.NewError(migrator.KindBadMigration, "migration "+m.Key()+" has no down SQL to run")
	}

	return inTx(ctx, db, func(tx *sqlx.Tx) error {
		if strings.TrimSpace(*m.DownSQL) != "" {
			if _, err := tx.ExecContext(ctx, *m.DownSQL); err != nil {
				return migrator.WrapError(migrator.KindDB, err, "failed to run down migration "+m.Key())
			}
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, m.Key()); err != nil {
			return migrator.WrapError(migrator.KindDB, err, "failed to delete tracking row for "+m.Key())
		}
		return nil
	})
}

func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return migrator.WrapError(migrator.KindDB, err, "failed to start transaction")
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return migrator.WrapError(migrator.KindDB, rbErr, "failed to roll back after: "+err.Error())
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return migrator.WrapError(migrator.KindDB, err, "failed to commit transaction")
	}
	return nil
}
