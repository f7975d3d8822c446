package keychain

import (
	"cmp"
	"maps"
	"slices"
)

// Tracker holds keychain derivation progress and transaction positions.
type Tracker[K cmp.Ordered, P comparable] struct {
	lastRevealed map[K]uint32
	txs          map[string]P
}

// NewTracker returns an empty tracker.
func NewTracker[K cmp.Ordered, P comparable]() *Tracker[K, P] {
	return &Tracker[K, P]{
		lastRevealed: make(map[K]uint32),
		txs:          make(map[string]P),
	}
}

// ApplyChangeset folds cs into the tracker. Derivation indices never move
// backwards, so replaying a log in order is equivalent to applying the merge
// of all its changesets.
func (t *Tracker[K, P]) ApplyChangeset(cs ChangeSet[K, P]) {
	for k, idx := range cs.DerivationIndices {
		if cur, ok := t.lastRevealed[k]; !ok || idx > cur {
			t.lastRevealed[k] = idx
		}
	}
	maps.Copy(t.txs, cs.ChainGraph.Txs)
}

// RevealTo advances keychain k to index and returns the resulting changeset,
// which is empty when k is already at or beyond index.
func (t *Tracker[K, P]) RevealTo(k K, index uint32) ChangeSet[K, P] {
	if cur, ok := t.lastRevealed[k]; ok && cur >= index {
		return ChangeSet[K, P]{}
	}
	cs := ChangeSet[K, P]{DerivationIndices: DerivationAdditions[K]{k: index}}
	t.ApplyChangeset(cs)
	return cs
}

// InsertTx records txid at pos and returns the resulting changeset, which is
// empty when the tracker already has txid at pos.
func (t *Tracker[K, P]) InsertTx(txid string, pos P) ChangeSet[K, P] {
	if cur, ok := t.txs[txid]; ok && cur == pos {
		return ChangeSet[K, P]{}
	}
	cs := ChangeSet[K, P]{ChainGraph: ChainAdditions[P]{Txs: map[string]P{txid: pos}}}
	t.ApplyChangeset(cs)
	return cs
}

// LastRevealed returns the last revealed index of keychain k.
func (t *Tracker[K, P]) LastRevealed(k K) (uint32, bool) {
	idx, ok := t.lastRevealed[k]
	return idx, ok
}

// Position returns the chain position of txid.
func (t *Tracker[K, P]) Position(txid string) (P, bool) {
	pos, ok := t.txs[txid]
	return pos, ok
}

// Keychains returns every keychain with a revealed index, in order.
func (t *Tracker[K, P]) Keychains() []K {
	return slices.Sorted(maps.Keys(t.lastRevealed))
}

// Snapshot is a point-in-time copy of a tracker's state.
type Snapshot[K cmp.Ordered, P comparable] struct {
	LastRevealed map[K]uint32 `json:"last_revealed"`
	Txs          map[string]P `json:"txs"`
}

// Snapshot copies the tracker state.
func (t *Tracker[K, P]) Snapshot() Snapshot[K, P] {
	return Snapshot[K, P]{
		LastRevealed: maps.Clone(t.lastRevealed),
		Txs:          maps.Clone(t.txs),
	}
}
