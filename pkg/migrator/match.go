package migrator

import "sort"

// Status classifies a Match as a tagged variant rather than a set of booleans.
type Status int

const (
	// Applied means the migration is present in both sets with matching hashes.
	Applied Status = iota
	// Unapplied means the migration is present in the local set only.
	Unapplied
	// Divergent means the migration is present in both sets but hashes differ.
	Divergent
	// Variant means the migration is present in the database set only.
	Variant
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "Applied"
	case Unapplied:
		return "Unapplied"
	case Divergent:
		return "Divergent"
	case Variant:
		return "Variant"
	default:
		return "Unknown"
	}
}

// Match is one entry of the merged, classified sequence produced by MatchMaker.
// Local and DB are nil when absent from the corresponding input set.
type Match struct {
	Key    string
	Status Status
	Local  *Migration
	DB     *Migration
}

// MatchSet is the ascending-by-key classified merge of a local and a database set.
type MatchSet struct {
	Matches []*Match
}

// MatchMake merges locals and db by key, sorts both ascending first, and classifies
// every key into exactly one Match. Duplicate keys within locals are rejected as
// KindBadMigration; duplicates across locals and db are treated as the same entity.
func MatchMake(locals, db []*Migration) (*MatchSet, error) {
	localByKey, err := indexByKey(locals)
	if err != nil {
		return nil, err
	}
	dbByKey, err := indexByKey(db)
	if err != nil {
		return nil, err
	}

	keySet := map[string]bool{}
	for k := range localByKey {
		keySet[k] = true
	}
	for k := range dbByKey {
		keySet[k] = true
	}

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	matches := make([]*Match, 0, len(keys))
	for _, key := range keys {
		l, hasLocal := localByKey[key]
		d, hasDB := dbByKey[key]

		switch {
		case hasLocal && hasDB:
			status := Applied
			if !hashesMatch(l.UpHash, d.UpHash) || downHashesDiverge(l.DownHash, d.DownHash) {
				status = Divergent
			}
			matches = append(matches, &Match{Key: key, Status: status, Local: l, DB: d})
		case hasLocal:
			matches = append(matches, &Match{Key: key, Status: Unapplied, Local: l})
		default:
			matches = append(matches, &Match{Key: key, Status: Variant, DB: d})
		}
	}

	return &MatchSet{Matches: matches}, nil
}

func indexByKey(migrations []*Migration) (map[string]*Migration, error) {
	idx := make(map[string]*Migration, len(migrations))
	for _, m := range migrations {
		key := m.Key()
		if _, exists := idx[key]; exists {
			return nil, NewError(KindBadMigration, "duplicate migration key: "+key)
		}
		idx[key] = m
	}
	return idx, nil
}

// hashesMatch compares two optional hashes. Both absent counts as a match (there's
// nothing to diverge on); one present and one absent does not.
func hashesMatch(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// downHashesDiverge compares down hashes only when both sides carry one. The
// tracking table can't distinguish an empty down payload from an absent one, so
// one-sided absence of a down hash is not divergence.
func downHashesDiverge(local, db *string) bool {
	return local != nil && db != nil && *local != *db
}
