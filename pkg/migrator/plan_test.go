package migrator_test

import (
	"testing"

	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestPlanBuilder_Up_ForwardApply(t *testing.T) {
	m1 := build(t, "a", 1, strPtr("up1"), strPtr("down1"))
	m2 := build(t, "b", 31, strPtr("up2"), strPtr("down2"))

	set, err := migrator.MatchMake([]*migrator.Migration{m1, m2}, nil)
	require.NoError(t, err)

	plan, err := migrator.NewPlanBuilder(set).Up(migrator.Options{})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, migrator.Up, plan.Steps[0].Step)
	assert.Equal(t, m1.Key(), plan.Steps[0].Migration.Key())
	assert.Equal(t, m2.Key(), plan.Steps[1].Migration.Key())
}

func TestPlanBuilder_Up_EmptyWhenAllApplied(t *testing.T) {
	m1 := build(t, "a", 1, strPtr("up1"), strPtr("down1"))
	set, err := migrator.MatchMake([]*migrator.Migration{m1}, []*migrator.Migration{m1})
	require.NoError(t, err)

	plan, err := migrator.NewPlanBuilder(set).Up(migrator.Options{})
	require.NoError(t, err)
	assert.True(t, plan.Empty())
}

func TestPlanBuilder_Up_DirtyHistoryBlocks(t *testing.T) {
	m1 := build(t, "a", 1, strPtr("up1"), strPtr("down1"))
	m1Diverged := build(t, "a", 1, strPtr("up1 v2"), strPtr("down1"))
	m2 := build(t, "b", 31, strPtr("up2"), strPtr("down2"))

	set, err := migrator.MatchMake(
		[]*migrator.Migration{m1Diverged, m2},
		[]*migrator.Migration{m1},
	)
	require.NoError(t, err)

	_, err = migrator.NewPlanBuilder(set).Up(migrator.Options{})
	require.Error(t, err)
	assert.True(t, migrator.IsKind(err, migrator.KindDirtyHistory))
}

func TestPlanBuilder_Fix(t *testing.T) {
	m1 := build(t, "a", 1, strPtr("up1"), strPtr("down1"))
	m1Diverged := build(t, "a", 1, strPtr("up1 v2"), strPtr("down1"))
	m2 := build(t, "b", 31, strPtr("up2"), strPtr("down2"))

	set, err := migrator.MatchMake(
		[]*migrator.Migration{m1Diverged, m2},
		[]*migrator.Migration{m1},
	)
	require.NoError(t, err)

	plan, err := migrator.NewPlanBuilder(set).Fix(migrator.Options{})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 3)

	assert.Equal(t, migrator.Down, plan.Steps[0].Step)
	assert.Equal(t, "down1", *plan.Steps[0].Migration.DownSQL)
	assert.Equal(t, migrator.Up, plan.Steps[1].Step)
	assert.Equal(t, "up1 v2", *plan.Steps[1].Migration.UpSQL)
	assert.Equal(t, migrator.Up, plan.Steps[2].Step)
	assert.Equal(t, m2.Key(), plan.Steps[2].Migration.Key())
}

func TestPlanBuilder_Down_WithCount(t *testing.T) {
	m1 := build(t, "a", 1, strPtr("up1"), strPtr("down1"))
	m2 := build(t, "b", 31, strPtr("up2"), strPtr("down2"))
	m3 := build(t, "c", 61, strPtr("up3"), strPtr("down3"))

	set, err := migrator.MatchMake(
		[]*migrator.Migration{m1, m2, m3},
		[]*migrator.Migration{m1, m2, m3},
	)
	require.NoError(t, err)

	plan, err := migrator.NewPlanBuilder(set).Down(migrator.Options{Count: intPtr(2)})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, m3.Key(), plan.Steps[0].Migration.Key())
	assert.Equal(t, m2.Key(), plan.Steps[1].Migration.Key())
}

func TestPlanBuilder_Down_VariantAlwaysIncludedUnlessDivergentFiltered(t *testing.T) {
	m1 := build(t, "a", 1, strPtr("up1"), strPtr("down1"))
	m2 := build(t, "b", 31, strPtr("up2"), strPtr("down2")) // deleted locally -> Variant

	set, err := migrator.MatchMake(
		[]*migrator.Migration{m1},
		[]*migrator.Migration{m1, m2},
	)
	require.NoError(t, err)

	plan, err := migrator.NewPlanBuilder(set).Down(migrator.Options{})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, m2.Key(), plan.Steps[0].Migration.Key())
	assert.Equal(t, m1.Key(), plan.Steps[1].Migration.Key())

	// Filtering divergent entries still keeps the variant.
	plan, err = migrator.NewPlanBuilder(set).Down(migrator.Options{IgnoreDivergent: true})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, m2.Key(), plan.Steps[0].Migration.Key())
	assert.Equal(t, m1.Key(), plan.Steps[1].Migration.Key())
}

func TestPlanBuilder_Redo(t *testing.T) {
	m1 := build(t, "a", 1, strPtr("up1"), strPtr("down1"))
	m2 := build(t, "b", 31, strPtr("up2"), strPtr("down2"))

	set, err := migrator.MatchMake(
		[]*migrator.Migration{m1, m2},
		[]*migrator.Migration{m1, m2},
	)
	require.NoError(t, err)

	plan, err := migrator.NewPlanBuilder(set).Redo(migrator.Options{Count: intPtr(2)})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 4)
	assert.Equal(t, migrator.Down, plan.Steps[0].Step)
	assert.Equal(t, m2.Key(), plan.Steps[0].Migration.Key())
	assert.Equal(t, migrator.Down, plan.Steps[1].Step)
	assert.Equal(t, m1.Key(), plan.Steps[1].Migration.Key())
	assert.Equal(t, migrator.Up, plan.Steps[2].Step)
	assert.Equal(t, m1.Key(), plan.Steps[2].Migration.Key())
	assert.Equal(t, migrator.Up, plan.Steps[3].Step)
	assert.Equal(t, m2.Key(), plan.Steps[3].Migration.Key())
}

func TestPlanBuilder_Redo_DirtyHistoryWhenTopNotApplied(t *testing.T) {
	m1 := build(t, "a", 1, strPtr("up1"), strPtr("down1"))
	set, err := migrator.MatchMake([]*migrator.Migration{m1}, nil)
	require.NoError(t, err)

	_, err = migrator.NewPlanBuilder(set).Redo(migrator.Options{})
	require.Error(t, err)
	assert.True(t, migrator.IsKind(err, migrator.KindDirtyHistory))
}

func TestPlanBuilder_Idempotence(t *testing.T) {
	m1 := build(t, "a", 1, strPtr("up1"), strPtr("down1"))
	set, err := migrator.MatchMake([]*migrator.Migration{m1}, nil)
	require.NoError(t, err)

	plan, err := migrator.NewPlanBuilder(set).Up(migrator.Options{})
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)

	// simulate having applied it: db now contains m1
	set2, err := migrator.MatchMake([]*migrator.Migration{m1}, []*migrator.Migration{m1})
	require.NoError(t, err)
	plan2, err := migrator.NewPlanBuilder(set2).Up(migrator.Options{})
	require.NoError(t, err)
	assert.True(t, plan2.Empty())
}
