package migrator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// KeyLayout is the canonical timestamp layout used to format and parse a Migration's key.
const KeyLayout = "2006-01-02-150405"

// Migration is an immutable, content-addressed record of a single database migration.
//
// A Migration is built once (by FileStore, by an Adaptor reading the tracking table, or
// by the bootstrap step) and never mutated afterward. Hashes are a pure function of the
// SQL payloads present at construction time.
type Migration struct {
	Name      string
	Timestamp time.Time

	UpSQL   *string
	DownSQL *string

	UpHash   *string
	DownHash *string
}

// Build constructs a Migration from its name, timestamp, and optional SQL payloads.
// It fails with KindBadMigration if name is empty or the resulting key would not
// round-trip through KeyLayout.
func Build(name string, timestamp time.Time, upSQL, downSQL *string) (*Migration, error) {
	if name == "" {
		return nil, NewError(KindBadMigration, "migration name must not be empty")
	}

	ts := timestamp.UTC()

	m := &Migration{
		Name:      name,
		Timestamp: ts,
		UpSQL:     upSQL,
		DownSQL:   downSQL,
		UpHash:    hashOf(upSQL),
		DownHash:  hashOf(downSQL),
	}

	if _, err := time.Parse(KeyLayout, ts.Format(KeyLayout)); err != nil {
		return nil, WrapError(KindBadMigration, err, "malformed migration timestamp")
	}

	return m, nil
}

// Key returns the canonical YYYY-MM-DD-HHMMSS_name identity string used for all
// matching, ordering, and tracking-table storage.
func (m *Migration) Key() string {
	return fmt.Sprintf("%s_%s", m.Timestamp.Format(KeyLayout), m.Name)
}

// HasUp reports whether the migration carries an up-SQL payload.
func (m *Migration) HasUp() bool {
	return m.UpSQL != nil
}

// HasDown reports whether the migration carries a down-SQL payload.
func (m *Migration) HasDown() bool {
	return m.DownSQL != nil
}

func hashOf(sql *string) *string {
	if sql == nil {
		return nil
	}
	sum := sha256.Sum256([]byte(*sql))
	h := hex.EncodeToString(sum[:])
	return &h
}

// ParseKey splits a canonical key back into its timestamp and name components.
// Used by FileStore when reconstructing a Migration from a directory name.
func ParseKey(key string) (time.Time, string, error) {
	if len(key) < len(KeyLayout)+1 {
		return time.Time{}, "", NewError(KindBadMigration, "key too short: "+key)
	}

	tsPart := key[:len(KeyLayout)]
	rest := key[len(KeyLayout):]
	if len(rest) == 0 || rest[0] != '_' {
		return time.Time{}, "", NewError(KindBadMigration, "malformed key: "+key)
	}
	name := rest[1:]
	if name == "" {
		return time.Time{}, "", NewError(KindBadMigration, "key has empty name: "+key)
	}

	ts, err := time.Parse(KeyLayout, tsPart)
	if err != nil {
		return time.Time{}, "", WrapError(KindBadMigration, err, "malformed key timestamp: "+key)
	}

	return ts, name, nil
}

// EpochMigrationName is the name of the bootstrap migration created by init.
const EpochMigrationName = "movine_init"

// EpochTimestamp is the fixed timestamp (UTC epoch) that sorts movine_init before
// every other migration regardless of when the project was created.
var EpochTimestamp = time.Unix(0, 0).UTC()

// FromTrackingRow reconstructs a Migration from a tracking-table row as read by an
// Adaptor's LoadMigrations: the row carries the applied up-hash but never the
// up-SQL text itself, and the down-SQL payload needed to run a future Down step.
// DownHash is recomputed from downSQL rather than trusted from the row, keeping
// hashes a pure function of the payload as Migration's invariant requires.
func FromTrackingRow(key, upHash string, downSQL *string) (*Migration, error) {
	ts, name, err := ParseKey(key)
	if err != nil {
		return nil, err
	}

	return &Migration{
		Name:      name,
		Timestamp: ts,
		DownSQL:   downSQL,
		UpHash:    &upHash,
		DownHash:  hashOf(downSQL),
	}, nil
}
