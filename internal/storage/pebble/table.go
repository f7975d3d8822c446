package pebblestore

import "errors"

var tablePrefix = []byte("tbl/")

// TablePrefix returns the key prefix "tbl/{name}/" owned by a table.
func TablePrefix(name string) []byte {
	k := make([]byte, 0, len(tablePrefix)+len(name)+1)
	k = append(k, tablePrefix...)
	k = append(k, name...)
	k = append(k, '/')
	return k
}

// prefixUpperBound returns the smallest key greater than every key with prefix p.
func prefixUpperBound(p []byte) []byte {
	end := append([]byte(nil), p...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// Table is an ordered keyspace inside a DB. Keys passed to and returned from
// a Table are relative to its prefix.
type Table struct {
	db     *DB
	name   string
	prefix []byte
}

// Table returns the keyspace for name. Callers validate names (see package tables).
func (db *DB) Table(name string) *Table {
	return &Table{db: db, name: name, prefix: TablePrefix(name)}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

func (t *Table) key(k []byte) []byte {
	out := make([]byte, 0, len(t.prefix)+len(k))
	out = append(out, t.prefix...)
	return append(out, k...)
}

// Get returns a copy of the value stored under key and whether it was present.
func (t *Table) Get(key []byte) ([]byte, bool, error) {
	v, err := t.db.Get(t.key(key))
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Insert stores value under key and returns the previous value, if any.
func (t *Table) Insert(key, value []byte) ([]byte, error) {
	prev, _, err := t.Get(key)
	if err != nil {
		return nil, err
	}
	if err := t.db.Set(t.key(key), value); err != nil {
		return nil, err
	}
	return prev, nil
}

// Ascend calls fn for every key in ascending byte order until fn returns false.
// The slices passed to fn are copies owned by the callee.
func (t *Table) Ascend(fn func(key, value []byte) bool) error {
	return t.db.ScanPrefix(t.prefix, func(k, v []byte) bool {
		return fn(k[len(t.prefix):], v)
	})
}

// Flush makes every write to the table durable regardless of the fsync mode.
func (t *Table) Flush() error { return t.db.Sync() }
