package migrator_test

import (
	"testing"

	"github.com/pseudomuto/movine/pkg/migrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, name string, day int, up, down *string) *migrator.Migration {
	t.Helper()
	ts := migrator.EpochTimestamp.AddDate(0, 0, day)
	m, err := migrator.Build(name, ts, up, down)
	require.NoError(t, err)
	return m
}

func TestMatchMake_Classification(t *testing.T) {
	a := build(t, "a", 1, strPtr("up a"), strPtr("down a"))
	aDivergedLocal := build(t, "a", 1, strPtr("up a v2"), strPtr("down a"))
	b := build(t, "b", 2, strPtr("up b"), strPtr("down b"))
	c := build(t, "c", 3, strPtr("up c"), strPtr("down c"))

	set, err := migrator.MatchMake(
		[]*migrator.Migration{aDivergedLocal, b},
		[]*migrator.Migration{a, c},
	)
	require.NoError(t, err)
	require.Len(t, set.Matches, 3)

	byKey := map[string]*migrator.Match{}
	for _, m := range set.Matches {
		byKey[m.Key] = m
	}

	assert.Equal(t, migrator.Divergent, byKey[a.Key()].Status)
	assert.Equal(t, migrator.Unapplied, byKey[b.Key()].Status)
	assert.Equal(t, migrator.Variant, byKey[c.Key()].Status)
}

func TestMatchMake_SortedAscendingAndEveryInputAppearsOnce(t *testing.T) {
	a := build(t, "a", 5, strPtr("x"), strPtr("y"))
	b := build(t, "b", 1, strPtr("x"), strPtr("y"))

	set, err := migrator.MatchMake([]*migrator.Migration{a, b}, nil)
	require.NoError(t, err)
	require.Len(t, set.Matches, 2)
	assert.True(t, set.Matches[0].Key < set.Matches[1].Key)
}

func TestMatchMake_DuplicateLocalKeysRejected(t *testing.T) {
	a1 := build(t, "a", 1, strPtr("x"), strPtr("y"))
	a2 := build(t, "a", 1, strPtr("z"), strPtr("y"))

	_, err := migrator.MatchMake([]*migrator.Migration{a1, a2}, nil)
	require.Error(t, err)
	assert.True(t, migrator.IsKind(err, migrator.KindBadMigration))
}

func TestMatchMake_Applied(t *testing.T) {
	a := build(t, "a", 1, strPtr("x"), strPtr("y"))
	set, err := migrator.MatchMake([]*migrator.Migration{a}, []*migrator.Migration{a})
	require.NoError(t, err)
	assert.Equal(t, migrator.Applied, set.Matches[0].Status)
}

func TestMatchMake_OneSidedDownHashIsNotDivergence(t *testing.T) {
	// The tracking table can't distinguish an empty down payload from an absent
	// one, so a db row that came back without down SQL still matches a local
	// migration whose up hash agrees.
	local := build(t, "a", 1, strPtr("up a"), strPtr(""))
	db, err := migrator.FromTrackingRow(local.Key(), *local.UpHash, nil)
	require.NoError(t, err)

	set, err := migrator.MatchMake([]*migrator.Migration{local}, []*migrator.Migration{db})
	require.NoError(t, err)
	assert.Equal(t, migrator.Applied, set.Matches[0].Status)
}

func TestMatchMake_DownHashMismatchIsDivergence(t *testing.T) {
	local := build(t, "a", 1, strPtr("up a"), strPtr("down a v2"))
	db, err := migrator.FromTrackingRow(local.Key(), *local.UpHash, strPtr("down a"))
	require.NoError(t, err)

	set, err := migrator.MatchMake([]*migrator.Migration{local}, []*migrator.Migration{db})
	require.NoError(t, err)
	assert.Equal(t, migrator.Divergent, set.Matches[0].Status)
}
