package movine

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/pseudomuto/movine/pkg/adaptor"
	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/pseudomuto/movine/pkg/utils"
)

// Movine is the orchestrator behind every CLI verb. It owns a FileStore for the
// on-disk migration tree, an Adaptor for the database side, and a writer for
// status/plan output.
type Movine struct {
	adaptor adaptor.Adaptor
	store   *migrator.FileStore
	out     io.Writer
}

// New constructs a Movine over the given adaptor and file store, writing
// status and plan output to out.
func New(a adaptor.Adaptor, store *migrator.FileStore, out io.Writer) *Movine {
	return &Movine{adaptor: a, store: store, out: out}
}

// Init bootstraps a project: it creates the migration directory, writes the
// epoch-keyed movine_init migration (if not already present), creates the
// tracking table, and applies every unapplied local migration.
//
// The bootstrap migration's files are empty by convention; the tracking-table
// DDL lives in the adaptor's InitUpSQL/InitDownSQL and runs here, outside the
// plan machinery, so that the table exists before the first plan is recorded
// into it. After Init, status shows movine_init as an ordinary Applied entry
// at the head of history.
func (m *Movine) Init(ctx context.Context) error {
	if err := m.store.CreateMigrationDirectory(); err != nil {
		return err
	}

	init, err := migrator.Build(migrator.EpochMigrationName, migrator.EpochTimestamp, utils.Ptr(""), utils.Ptr(""))
	if err != nil {
		return err
	}

	if !m.store.Exists(init.Key()) {
		if err := m.store.Write(init); err != nil {
			return err
		}
	}

	if err := m.adaptor.Init(ctx); err != nil {
		return err
	}

	slog.Info("initialized migration tracking", "dir", m.store.Dir)

	return m.Up(ctx, migrator.Options{}, false)
}

// Generate writes an empty up.sql/down.sql pair keyed by now. The stub files
// are meant to be filled in by the user before the next up.
func (m *Movine) Generate(name string, now time.Time) error {
	if err := m.store.CreateMigrationDirectory(); err != nil {
		return err
	}

	migration, err := migrator.Build(name, now, nil, nil)
	if err != nil {
		return err
	}

	if err := m.store.Write(migration); err != nil {
		return err
	}

	slog.Info("generated migration", "key", migration.Key())
	return nil
}

// Status prints every match and its classification, ascending by key.
func (m *Movine) Status(ctx context.Context) error {
	set, err := m.match(ctx)
	if err != nil {
		return err
	}

	printStatus(m.out, migrator.NewPlanBuilder(set).Status())
	return nil
}

// Up applies unapplied migrations in ascending key order. With showPlan set it
// renders the plan instead of executing it.
func (m *Movine) Up(ctx context.Context, opts migrator.Options, showPlan bool) error {
	set, err := m.match(ctx)
	if err != nil {
		return err
	}

	plan, err := migrator.NewPlanBuilder(set).Up(opts)
	if err != nil {
		return err
	}

	return m.finish(ctx, plan, showPlan)
}

// Down reverts migrations from the top of history in descending key order.
func (m *Movine) Down(ctx context.Context, opts migrator.Options, showPlan bool) error {
	set, err := m.match(ctx)
	if err != nil {
		return err
	}

	plan, err := migrator.NewPlanBuilder(set).Down(opts)
	if err != nil {
		return err
	}

	return m.finish(ctx, plan, showPlan)
}

// Redo reverts and re-applies the most recent applied migrations.
func (m *Movine) Redo(ctx context.Context, opts migrator.Options, showPlan bool) error {
	set, err := m.match(ctx)
	if err != nil {
		return err
	}

	plan, err := migrator.NewPlanBuilder(set).Redo(opts)
	if err != nil {
		return err
	}

	return m.finish(ctx, plan, showPlan)
}

// Fix reconciles divergent and variant entries, unwinding drift from the top of
// history and replaying the corrected local migrations.
func (m *Movine) Fix(ctx context.Context, showPlan bool) error {
	set, err := m.match(ctx)
	if err != nil {
		return err
	}

	plan, err := migrator.NewPlanBuilder(set).Fix(migrator.Options{})
	if err != nil {
		return err
	}

	return m.finish(ctx, plan, showPlan)
}

func (m *Movine) match(ctx context.Context) (*migrator.MatchSet, error) {
	locals, err := m.store.LoadLocal(m.localFS())
	if err != nil {
		return nil, err
	}

	db, err := m.adaptor.LoadMigrations(ctx)
	if err != nil {
		return nil, err
	}

	return migrator.MatchMake(locals, db)
}

func (m *Movine) finish(ctx context.Context, plan *migrator.Plan, showPlan bool) error {
	if showPlan {
		printPlan(m.out, plan)
		return nil
	}

	return adaptor.RunPlan(ctx, m.adaptor, plan)
}

func (m *Movine) localFS() fs.FS {
	return os.DirFS(m.store.Dir)
}
