// Package codes holds the command-code, data-code, and client-type lookup
// tables loaded once at startup and treated as read-only for the rest of
// the run.
package codes

import (
	"sync"

	"github.com/sdsymphony/hist2json/pkg/pool"
	"github.com/sdsymphony/hist2json/pkg/symphony/textnorm"
)

// Table is an immutable-after-load mapping from a tag to a human-readable
// name. Command-code and client-type values are stored as-is
// (fold-spaces=false); data-code values are stored normalised
// (fold-spaces=true).
type Table struct {
	mu         sync.RWMutex
	entries    map[string]string
	foldSpaces bool
}

// NewTable returns an empty table. foldSpaces controls how values passed to
// Merge are normalised before storage.
func NewTable(foldSpaces bool) *Table {
	return &Table{
		entries:    make(map[string]string),
		foldSpaces: foldSpaces,
	}
}

// Merge adds or replaces the entry for tag, running value through the
// string normaliser first. Calling Merge twice with the same (tag, value)
// pair is a no-op after the first call -- the table converges to the same
// normalised value, so the merge operation is idempotent.
//
// The three tables share a large fraction of their translated names (e.g.
// "Item ID" and "User ID" each recur across command, data, and client-type
// entries), so the normalised value is interned: independently loaded
// tables end up pointing at the same backing string rather than each
// holding its own copy.
func (t *Table) Merge(tag, value string) {
	normalized := pool.InternString(textnorm.Clean(value, t.foldSpaces))

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[tag] = normalized
}

// Lookup returns the canonical name for tag and whether it was found.
func (t *Table) Lookup(tag string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[tag]
	return v, ok
}

// Len reports the number of entries currently in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Tables bundles the three code tables a decode run needs.
type Tables struct {
	Command *Table
	Data    *Table
	Client  *Table
}

// NewTables returns an empty Tables bundle with the fold-spaces convention
// from §4.1: command and client-type codes preserve spacing/case, data
// codes are normalised.
func NewTables() *Tables {
	return &Tables{
		Command: NewTable(false),
		Data:    NewTable(true),
		Client:  NewTable(false),
	}
}

// MergeExtras merges a built-in supplemental map into table, used for the
// handful of data codes (uF, uL, uU, P7) that ship hard-coded rather than
// via the primary data-code file.
func (t *Table) MergeExtras(extras map[string]string) {
	for tag, value := range extras {
		t.Merge(tag, value)
	}
}
