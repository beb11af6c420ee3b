package migrator

import "sort"

// Step is the action half of a plan entry.
type Step int

const (
	// Up executes a migration's up-SQL and records it in the tracking table.
	Up Step = iota
	// Down executes a migration's down-SQL and removes its tracking row.
	Down
)

func (s Step) String() string {
	if s == Up {
		return "Up"
	}
	return "Down"
}

// PlanStep pairs an action with the Migration it acts on.
type PlanStep struct {
	Step      Step
	Migration *Migration
}

// Plan is an ordered, pure value describing the steps a verb will execute.
// Executing it is the Adaptor's job; the core only builds it.
type Plan struct {
	Steps []PlanStep
}

// Empty reports whether the plan has no steps.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Steps) == 0
}

// Options configures a PlanBuilder invocation.
type Options struct {
	// Count, if non-nil, limits how many entries the verb acts on (semantics vary
	// by verb; see PlanBuilder method docs).
	Count *int
	// IgnoreDivergent, down only, omits Divergent entries from the down plan while
	// still including Variants.
	IgnoreDivergent bool
}

// PlanBuilder turns a MatchSet and a requested operation into a Plan.
type PlanBuilder struct {
	set *MatchSet
}

// NewPlanBuilder wraps a classified MatchSet for plan construction.
func NewPlanBuilder(set *MatchSet) *PlanBuilder {
	return &PlanBuilder{set: set}
}

// Up builds the plan for the up verb: every Unapplied entry in ascending key order,
// truncated to opts.Count if set. Fails with KindDirtyHistory if a Divergent or
// Variant entry precedes (by key) an Unapplied entry that would run.
func (b *PlanBuilder) Up(opts Options) (*Plan, error) {
	matches := b.set.Matches // already ascending

	var unapplied []*Match
	for _, m := range matches {
		if m.Status == Unapplied {
			unapplied = append(unapplied, m)
		}
	}

	if opts.Count != nil && *opts.Count < len(unapplied) {
		unapplied = unapplied[:*opts.Count]
	}

	if len(unapplied) == 0 {
		return &Plan{}, nil
	}

	lastKey := unapplied[len(unapplied)-1].Key
	for _, m := range matches {
		if m.Key >= lastKey {
			break
		}
		if m.Status == Divergent || m.Status == Variant {
			return nil, NewError(KindDirtyHistory, "unreconciled history at "+m.Key+" blocks up")
		}
	}

	steps := make([]PlanStep, 0, len(unapplied))
	for _, m := range unapplied {
		step, err := upStep(m.Local)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return &Plan{Steps: steps}, nil
}

// Down builds the plan for the down verb: Applied (and, unless IgnoreDivergent,
// Divergent) and Variant entries in descending key order, truncated to opts.Count.
func (b *PlanBuilder) Down(opts Options) (*Plan, error) {
	descending := descendingCopy(b.set.Matches)

	var candidates []*Match
	for _, m := range descending {
		switch m.Status {
		case Applied, Variant:
			candidates = append(candidates, m)
		case Divergent:
			if !opts.IgnoreDivergent {
				candidates = append(candidates, m)
			}
		}
	}

	if opts.Count != nil && *opts.Count < len(candidates) {
		candidates = candidates[:*opts.Count]
	}

	steps := make([]PlanStep, 0, len(candidates))
	for _, m := range candidates {
		step, err := downStep(m)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return &Plan{Steps: steps}, nil
}

// Redo builds the plan for the redo verb: the top n (default 1) Applied entries,
// downed in descending order then upped in ascending order. Fails with
// KindDirtyHistory if the topmost entry in the matched sequence is not Applied.
func (b *PlanBuilder) Redo(opts Options) (*Plan, error) {
	matches := b.set.Matches
	if len(matches) == 0 {
		return &Plan{}, nil
	}
	if matches[len(matches)-1].Status != Applied {
		return nil, NewError(KindDirtyHistory, "top of history is not applied, cannot redo")
	}

	n := 1
	if opts.Count != nil {
		n = *opts.Count
	}
	if n == 0 {
		return &Plan{}, nil
	}

	descending := descendingCopy(matches)
	var applied []*Match
	for _, m := range descending {
		if m.Status == Applied {
			applied = append(applied, m)
			if len(applied) == n {
				break
			}
		} else {
			break
		}
	}

	downSteps := make([]PlanStep, 0, len(applied))
	for _, m := range applied {
		step, err := downStep(m)
		if err != nil {
			return nil, err
		}
		downSteps = append(downSteps, step)
	}

	ascending := make([]*Match, len(applied))
	copy(ascending, applied)
	sort.Slice(ascending, func(i, j int) bool { return ascending[i].Key < ascending[j].Key })

	upSteps := make([]PlanStep, 0, len(ascending))
	for _, m := range ascending {
		step, err := upStep(m.Local)
		if err != nil {
			return nil, err
		}
		upSteps = append(upSteps, step)
	}

	return &Plan{Steps: append(downSteps, upSteps...)}, nil
}

// Fix reconciles divergence from the top down: Divergent/Variant entries scanning
// descending from the top are downed until the first Applied entry is reached, then
// everything from that point scanning ascending that is Unapplied or was divergent
// is upped using local SQL.
func (b *PlanBuilder) Fix(_ Options) (*Plan, error) {
	matches := b.set.Matches

	cutoff := -1
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Status == Applied {
			cutoff = i
			break
		}
	}

	var downSteps []PlanStep
	for i := len(matches) - 1; i > cutoff; i-- {
		m := matches[i]
		if m.Status == Divergent || m.Status == Variant {
			step, err := downStep(m)
			if err != nil {
				return nil, err
			}
			downSteps = append(downSteps, step)
		}
	}

	var upSteps []PlanStep
	for i := cutoff + 1; i < len(matches); i++ {
		m := matches[i]
		if m.Status == Unapplied || m.Status == Divergent {
			step, err := upStep(m.Local)
			if err != nil {
				return nil, err
			}
			upSteps = append(upSteps, step)
		}
	}

	return &Plan{Steps: append(downSteps, upSteps...)}, nil
}

// Status returns the classified sequence unchanged; no plan is emitted.
func (b *PlanBuilder) Status() *MatchSet {
	return b.set
}

func upStep(local *Migration) (PlanStep, error) {
	if local == nil || !local.HasUp() {
		return PlanStep{}, NewError(KindBadMigration, "migration has no up SQL to run")
	}
	return PlanStep{Step: Up, Migration: local}, nil
}

// downStep prefers the database-side migration (what was actually applied) so that
// the SQL executed to revert matches the recorded tracking row, falling back to the
// local copy when the database record is missing or carries no down payload.
func downStep(m *Match) (PlanStep, error) {
	mig := m.DB
	if mig == nil || !mig.HasDown() {
		mig = m.Local
	}
	if mig == nil || !mig.HasDown() {
		return PlanStep{}, NewError(KindBadMigration, "migration "+m.Key+" has no down SQL to run")
	}
	return PlanStep{Step: Down, Migration: mig}, nil
}

func descendingCopy(matches []*Match) []*Match {
	out := make([]*Match, len(matches))
	copy(out, matches)
	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out
}
