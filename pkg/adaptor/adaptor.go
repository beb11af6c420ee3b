// Package adaptor implements the database-facing collaborator the migration engine
// depends on: creating/reading the tracking table and running a single up or down
// migration inside a transaction. Two concrete adaptors ship, Postgres and SQLite,
// both built on database/sql + sqlx over the same tiny SQL-shape.
package adaptor

import (
	"context"

	"github.com/pseudomuto/movine/pkg/migrator"
)

// Adaptor is the capability set the migration engine depends on. It intentionally
// carries no knowledge of the matching/plan logic above it.
type Adaptor interface {
	// InitUpSQL and InitDownSQL are constant text creating and dropping the
	// tracking table.
	InitUpSQL() string
	InitDownSQL() string

	// Init executes InitUpSQL, creating the tracking table if it does not exist.
	Init(ctx context.Context) error

	// LoadMigrations returns every row in the tracking table as a Migration with
	// UpSQL absent but UpHash present, and DownSQL/DownHash populated so a down
	// step can execute without consulting local files. A row whose recorded
	// down SQL is empty comes back with DownSQL and DownHash nil.
	LoadMigrations(ctx context.Context) ([]*migrator.Migration, error)

	// RunUp executes m's up-SQL and inserts its tracking row atomically.
	RunUp(ctx context.Context, m *migrator.Migration) error

	// RunDown executes m's down-SQL and deletes its tracking row atomically.
	RunDown(ctx context.Context, m *migrator.Migration) error

	// Close releases the underlying connection/pool.
	Close() error
}

const trackingTable = "movine_migrations"

// RunPlan executes every step of plan in order against a, stopping at the first
// failure. Each step commits (or rolls back) independently; no cross-step
// transaction is used, matching the per-migration atomicity contract.
func RunPlan(ctx context.Context, a Adaptor, plan *migrator.Plan) error {
	for _, step := range plan.Steps {
		var err error
		switch step.Step {
		case migrator.Up:
			err = a.RunUp(ctx, step.Migration)
		case migrator.Down:
			err = a.RunDown(ctx, step.Migration)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
