package keychain

import (
	"cmp"
	"iter"

	"github.com/lava-xyz/bdk-pebble/internal/changelog"
)

// Store persists tracker changesets in a changelog.
type Store[K cmp.Ordered, P comparable] struct {
	log *changelog.Log[ChangeSet[K, P]]
}

// NewStore opens the changeset log held in table.
func NewStore[K cmp.Ordered, P comparable](table changelog.Table, c changelog.Codec[ChangeSet[K, P]], opts ...changelog.Option) (*Store[K, P], error) {
	l, err := changelog.Open[ChangeSet[K, P]](table, c, opts...)
	if err != nil {
		return nil, err
	}
	return &Store[K, P]{log: l}, nil
}

// AppendChangeset persists cs. Empty changesets are skipped.
func (s *Store[K, P]) AppendChangeset(cs ChangeSet[K, P]) error {
	return s.log.Append(cs)
}

// LoadIntoTracker replays every stored changeset into tr. On error tr holds
// a partial replay and must be discarded.
func (s *Store[K, P]) LoadIntoTracker(tr *Tracker[K, P]) error {
	return s.log.Load(tr.ApplyChangeset)
}

// Entries iterates the stored changesets with their sequence numbers.
func (s *Store[K, P]) Entries() iter.Seq2[changelog.Entry[ChangeSet[K, P]], error] {
	return s.log.Entries()
}

// Next returns the sequence number of the next stored changeset.
func (s *Store[K, P]) Next() uint64 { return s.log.Next() }

// Recover rebuilds a tracker from the full log. No tracker is returned on error.
func Recover[K cmp.Ordered, P comparable](s *Store[K, P]) (*Tracker[K, P], error) {
	tr := NewTracker[K, P]()
	if err := s.LoadIntoTracker(tr); err != nil {
		return nil, err
	}
	return tr, nil
}
