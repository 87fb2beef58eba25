/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

// Package table implements the open-addressing hash table loxgo uses for
// both the string-intern set and the VM's globals environment. It is
// hand-written rather than built on a third-party map, because the VM's
// self-patching global inline cache and the string interner both depend on
// probing behavior (linear probing, tombstone deletion, a fixed 75% max load
// factor) that an opaque map type doesn't expose.
package table

// Key is anything that can be stored in a Table: it must know its own hash
// and how to compare itself against another Key of the same concrete type.
type Key interface {
	Hash() uint32
	Equal(other Key) bool
}

const maxLoad = 0.75

type state byte

const (
	stateEmpty state = iota
	stateTombstone
	stateOccupied
)

type entry[K Key, V any] struct {
	key   K
	value V
	state state
}

// Table is an open-addressing hash table keyed by Key, holding values of
// type V. The zero Table is ready to use.
type Table[K Key, V any] struct {
	entries []entry[K, V]

	// count is occupied+tombstone slots, the figure that governs growth:
	// tombstones count against the load factor so a table doesn't fill up
	// with them and degrade every probe into a full scan.
	count int

	// live is occupied slots only, what Count reports.
	live int
}

// New returns an empty Table.
func New[K Key, V any]() *Table[K, V] {
	return &Table[K, V]{}
}

// Count reports the number of live key/value pairs in the table.
func (t *Table[K, V]) Count() int {
	return t.live
}

// Get looks up key, returning its value and true if present.
func (t *Table[K, V]) Get(key K) (V, bool) {
	var zero V
	if len(t.entries) == 0 {
		return zero, false
	}

	idx := findEntry(t.entries, key)
	e := &t.entries[idx]
	if e.state != stateOccupied {
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, overwriting any existing value. Reports
// whether key was new to the table.
func (t *Table[K, V]) Set(key K, value V) bool {
	if float64(t.count+1) > float64(len(t.entries))*maxLoad {
		t.grow()
	}

	idx := findEntry(t.entries, key)
	e := &t.entries[idx]
	isNew := e.state != stateOccupied
	if e.state == stateEmpty {
		t.count++
	}
	if isNew {
		t.live++
	}

	e.key = key
	e.value = value
	e.state = stateOccupied
	return isNew
}

// Delete removes key from the table, leaving a tombstone behind so that
// later probes for other keys sharing its bucket chain still succeed.
// Reports whether key was present.
func (t *Table[K, V]) Delete(key K) bool {
	if len(t.entries) == 0 {
		return false
	}

	idx := findEntry(t.entries, key)
	e := &t.entries[idx]
	if e.state != stateOccupied {
		return false
	}

	var zeroK K
	var zeroV V
	e.key = zeroK
	e.value = zeroV
	e.state = stateTombstone
	t.live--
	return true
}

// AddAll copies every live entry of from into t, overwriting on collision.
func (t *Table[K, V]) AddAll(from *Table[K, V]) {
	for _, e := range from.entries {
		if e.state == stateOccupied {
			t.Set(e.key, e.value)
		}
	}
}

// FindMatch looks up a key by its hash and a match predicate, without
// needing a constructed K to compare against. The string interner uses this
// to check whether a string with the given hash already has an interned
// ObjString, before allocating one.
func (t *Table[K, V]) FindMatch(hash uint32, match func(K) bool) (K, bool) {
	var zero K
	if len(t.entries) == 0 {
		return zero, false
	}

	capacity := len(t.entries)
	index := int(hash % uint32(capacity))
	for {
		e := &t.entries[index]
		switch e.state {
		case stateEmpty:
			return zero, false
		case stateOccupied:
			if match(e.key) {
				return e.key, true
			}
		}
		index = (index + 1) % capacity
	}
}

// findEntry returns the index of key's slot: the existing entry if key is
// present, otherwise the first tombstone or empty slot along its probe
// sequence, so callers can use the index for both lookup and insertion.
func findEntry[K Key, V any](entries []entry[K, V], key K) int {
	capacity := len(entries)
	index := int(key.Hash() % uint32(capacity))
	tombstone := -1

	for {
		e := &entries[index]
		switch e.state {
		case stateEmpty:
			if tombstone != -1 {
				return tombstone
			}
			return index
		case stateTombstone:
			if tombstone == -1 {
				tombstone = index
			}
		default:
			if e.key.Equal(key) {
				return index
			}
		}
		index = (index + 1) % capacity
	}
}

// grow doubles the table's capacity (or sets it to 8, from empty) and
// rehashes every live entry into the new array. Tombstones are dropped in
// the process.
func (t *Table[K, V]) grow() {
	newEntries := make([]entry[K, V], growCapacity(len(t.entries)))

	t.count = 0
	for _, e := range t.entries {
		if e.state != stateOccupied {
			continue
		}
		idx := findEntry(newEntries, e.key)
		newEntries[idx] = e
		t.count++
	}

	t.entries = newEntries
}

func growCapacity(capacity int) int {
	if capacity < 8 {
		return 8
	}
	return capacity * 2
}
