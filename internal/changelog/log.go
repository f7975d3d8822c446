package changelog

import (
	"bytes"
	"fmt"
	"iter"
	"math"

	logpkg "github.com/lava-xyz/bdk-pebble/pkg/log"
)

// Table is the ordered key-value store a Log persists into.
type Table interface {
	// Get returns the value under key and whether it exists.
	Get(key []byte) ([]byte, bool, error)
	// Insert stores value under key and returns the previous value, if any.
	Insert(key, value []byte) ([]byte, error)
	// Ascend visits every key in ascending byte order until fn returns false.
	Ascend(fn func(key, value []byte) bool) error
}

// Flusher is implemented by tables that can force writes to stable storage.
type Flusher interface {
	Flush() error
}

// Changeset is an incremental state update. Empty changesets are never stored.
type Changeset interface {
	IsEmpty() bool
}

// Codec converts changesets to and from stored payloads.
type Codec[C any] interface {
	Encode(cs C) ([]byte, error)
	Decode(b []byte) (C, error)
}

// Entry is one stored changeset and its sequence number.
type Entry[C any] struct {
	Seq       uint64
	Changeset C
}

// Option configures a Log.
type Option func(*options)

type options struct {
	sync   bool
	name   string
	logger logpkg.Logger
}

// WithSync controls whether Append flushes the table after writing the counter.
// It defaults to true; disable it when the table already syncs every write.
func WithSync(sync bool) Option {
	return func(o *options) { o.sync = sync }
}

// WithName labels log output with the table name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l logpkg.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Log is a single-writer, append-only changeset log.
type Log[C Changeset] struct {
	table  Table
	codec  Codec[C]
	sync   bool
	logger logpkg.Logger

	next uint64
}

// Open recovers the sequence counter from table and returns a ready Log.
// A table without a counter starts at zero; a counter that is not exactly
// 8 bytes fails with ErrCorruptState.
func Open[C Changeset](table Table, codec Codec[C], opts ...Option) (*Log[C], error) {
	o := options{sync: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logpkg.NewNopLogger()
	}
	logger := o.logger.WithComponent("changelog")
	if o.name != "" {
		logger = logger.With(logpkg.Str("table", o.name))
	}

	raw, found, err := table.Get(CounterKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read counter: %w", ErrStorage, err)
	}
	var next uint64
	if found {
		if next, err = decodeCounter(raw); err != nil {
			logger.Error("counter unreadable", logpkg.Err(err))
			return nil, err
		}
	}

	logger.Info("changeset log opened", logpkg.Uint64("next_seq", next), logpkg.Bool("recovered", found))
	return &Log[C]{
		table:  table,
		codec:  codec,
		sync:   o.sync,
		logger: logger,
		next:   next,
	}, nil
}

// Next returns the sequence number the next stored changeset will receive.
func (l *Log[C]) Next() uint64 { return l.next }

// Append stores cs under the next sequence number. Empty changesets are a
// no-op. On error the in-memory counter is unchanged, so the call can be
// retried as a whole; a retry rewrites the same entry key.
func (l *Log[C]) Append(cs C) error {
	if cs.IsEmpty() {
		return nil
	}
	seq := l.next
	if seq == math.MaxUint64 {
		return ErrSequenceExhausted
	}

	payload, err := l.codec.Encode(cs)
	if err != nil {
		panic(fmt.Sprintf("changelog: encode changeset %d: %v", seq, err))
	}

	if _, err := l.table.Insert(EntryKey(seq), payload); err != nil {
		return fmt.Errorf("%w: write entry %d: %w", ErrStorage, seq, err)
	}
	if _, err := l.table.Insert(CounterKey, EncodeCounter(seq+1)); err != nil {
		return fmt.Errorf("%w: write counter %d: %w", ErrStorage, seq+1, err)
	}
	if l.sync {
		if f, ok := l.table.(Flusher); ok {
			if err := f.Flush(); err != nil {
				return fmt.Errorf("%w: flush after entry %d: %w", ErrStorage, seq, err)
			}
		}
	}

	l.next = seq + 1
	l.logger.Debug("changeset appended", logpkg.Uint64("seq", seq), logpkg.Int("bytes", len(payload)))
	return nil
}

// Load replays every stored changeset into apply in ascending sequence order.
// On error apply may have seen a prefix of the log; callers must discard
// whatever state it built.
func (l *Log[C]) Load(apply func(C)) error {
	n := 0
	for e, err := range l.Entries() {
		if err != nil {
			l.logger.Error("replay aborted", logpkg.Int("applied", n), logpkg.Err(err))
			return err
		}
		apply(e.Changeset)
		n++
	}
	l.logger.Debug("replay finished", logpkg.Int("applied", n))
	return nil
}

// Entries returns a lazy sequence over the stored changesets. Each range
// re-reads the table from the start. An error is yielded at most once and
// ends the sequence.
func (l *Log[C]) Entries() iter.Seq2[Entry[C], error] {
	return func(yield func(Entry[C], error) bool) {
		stopped := false
		err := l.table.Ascend(func(k, v []byte) bool {
			if bytes.Equal(k, CounterKey) {
				return true
			}
			seq, ok := seqFromKey(k)
			if !ok {
				stopped = true
				yield(Entry[C]{}, fmt.Errorf("%w: unexpected key %x", ErrCorruptState, k))
				return false
			}
			cs, err := l.codec.Decode(v)
			if err != nil {
				stopped = true
				yield(Entry[C]{Seq: seq}, fmt.Errorf("%w: decode entry %d: %w", ErrCorruptState, seq, err))
				return false
			}
			if !yield(Entry[C]{Seq: seq, Changeset: cs}, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(Entry[C]{}, fmt.Errorf("%w: iterate: %w", ErrStorage, err))
		}
	}
}
