package runtime

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lava-xyz/bdk-pebble/internal/changelog"
	"github.com/lava-xyz/bdk-pebble/internal/codec"
	cfgpkg "github.com/lava-xyz/bdk-pebble/internal/config"
	"github.com/lava-xyz/bdk-pebble/internal/keychain"
	pebblestore "github.com/lava-xyz/bdk-pebble/internal/storage/pebble"
	"github.com/lava-xyz/bdk-pebble/internal/tables"
	logpkg "github.com/lava-xyz/bdk-pebble/pkg/log"
)

// Options for building the Runtime. Zero DataDir, Fsync and FsyncInterval
// fall back to the values in Config.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Logger        logpkg.Logger

	// Metrics observes store latencies. Optional.
	Metrics pebblestore.MetricsHook
}

// Runtime owns the Pebble instance shared by every changeset table.
type Runtime struct {
	db     *pebblestore.DB
	config cfgpkg.Config
	logger logpkg.Logger
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	cfg := opts.Config
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if cfg.DataDir == "" {
		return nil, errors.New("runtime: data dir is required")
	}
	fsync := opts.Fsync
	if fsync == pebblestore.FsyncModeUnspecified && cfg.Fsync == "" {
		fsync = pebblestore.FsyncModeAlways
	}
	if fsync == pebblestore.FsyncModeUnspecified {
		m, err := cfg.FsyncMode()
		if err != nil {
			return nil, err
		}
		fsync = m
	}
	cfg.Fsync = fsync.String()
	interval := opts.FsyncInterval
	if interval <= 0 {
		interval = cfg.FsyncInterval()
	}
	if cfg.Codec != "" && !codec.Valid(cfg.Codec) {
		return nil, fmt.Errorf("%w: %q", codec.ErrUnknownCodec, cfg.Codec)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNopLogger()
	}

	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       cfg.DataDir,
		Fsync:         fsync,
		FsyncInterval: interval,
		Metrics:       opts.Metrics,
	})
	if err != nil {
		return nil, err
	}
	logger.WithComponent("runtime").Info("store opened",
		logpkg.Str("data_dir", cfg.DataDir),
		logpkg.Str("fsync", cfg.Fsync),
		logpkg.Str("codec", cmp.Or(cfg.Codec, "per-table")))
	return &Runtime{db: db, config: cfg, logger: logger}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// OpenTable returns the keyspace of name, registering it on first use. New
// tables are pinned to the configured codec; existing tables keep theirs
// unless a conflicting codec was configured explicitly.
func (r *Runtime) OpenTable(name string) (*pebblestore.Table, tables.Meta, error) {
	meta, err := tables.EnsureTable(r.db, name, r.config.Codec)
	if err != nil {
		return nil, tables.Meta{}, err
	}
	return r.db.Table(name), meta, nil
}

// Tables lists the registered tables in name order.
func (r *Runtime) Tables() ([]tables.Meta, error) { return tables.List(r.db) }

// LogOptions returns the changelog options implied by the configuration.
// Appends skip the explicit flush when the store already fsyncs each write.
func (r *Runtime) LogOptions(name string) []changelog.Option {
	return []changelog.Option{
		changelog.WithName(name),
		changelog.WithSync(r.config.SyncAppends && !r.db.SyncsEachWrite()),
		changelog.WithLogger(r.logger),
	}
}

// OpenLog opens the changeset log stored in table name.
func OpenLog[C changelog.Changeset](r *Runtime, name string) (*changelog.Log[C], error) {
	tbl, meta, err := r.OpenTable(name)
	if err != nil {
		return nil, err
	}
	c, err := codec.ByName[C](meta.Codec)
	if err != nil {
		return nil, err
	}
	return changelog.Open[C](tbl, c, r.LogOptions(name)...)
}

// OpenKeychainStore opens the keychain tracker store held in table name.
func OpenKeychainStore[K cmp.Ordered, P comparable](r *Runtime, name string) (*keychain.Store[K, P], error) {
	tbl, meta, err := r.OpenTable(name)
	if err != nil {
		return nil, err
	}
	c, err := codec.ByName[keychain.ChangeSet[K, P]](meta.Codec)
	if err != nil {
		return nil, err
	}
	return keychain.NewStore[K, P](tbl, c, r.LogOptions(name)...)
}

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the effective configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the runtime logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }
