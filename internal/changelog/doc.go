// Package changelog implements an append-only changeset log over an ordered
// key-value table, with full replay on load.
//
// # Layout
//
// Keys within the table:
//   - "counter"   next sequence number, 8 bytes little-endian
//   - {seq_be8}   one entry per stored changeset, value is the codec payload
//
// Entry keys are big-endian so the table's byte ordering is the sequence
// ordering. The counter key is 7 bytes and never collides with an entry key.
// Stores written with little-endian entry keys (the sled layout) must be
// rewritten before they can be opened here.
//
// # Usage
//
//	l, err := changelog.Open[ChangeSet](table, codec.CBOR[ChangeSet]{})
//	if err != nil { /* ErrStorage or ErrCorruptState */ }
//	_ = l.Append(cs)                 // empty changesets are skipped
//	err = l.Load(tracker.ApplyChangeset)
//
// A Log assumes it is the only writer of its table. Load never mutates the
// table and may be called any number of times.
package changelog
