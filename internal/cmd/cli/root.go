package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/lava-xyz/bdk-pebble/internal/config"
	"github.com/lava-xyz/bdk-pebble/internal/keychain"
	"github.com/lava-xyz/bdk-pebble/internal/runtime"
	"github.com/lava-xyz/bdk-pebble/internal/tables"
	logpkg "github.com/lava-xyz/bdk-pebble/pkg/log"
)

// Store is the keychain store the CLI reads and writes: string keychain
// names and block-height positions.
type Store = keychain.Store[string, keychain.TxHeight]

// NewRoot constructs the root command with its persistent flags and subcommands.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "chlog",
		Short:         "Append-only changeset log CLI",
		Long:          "chlog stores wallet tracker changesets in an embedded Pebble database and replays them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.String("data-dir", "", "Data directory (if not specified, uses config or the OS-specific application data directory)")
	pf.String("config", "", "Config file (.json or .toml)")
	pf.String("fsync", "", "Fsync mode: always|interval|never")
	pf.String("codec", "", "Codec for new tables: cbor|gob|json (existing tables keep theirs; a conflicting value is an error)")
	pf.String("log-level", "", "Log level: debug|info|warn|error")
	pf.String("log-format", "", "Log format: text|json")

	root.AddCommand(
		newAppendCommand(),
		newReplayCommand(),
		newEntriesCommand(),
		newCounterCommand(),
		newTablesCommand(),
	)
	return root
}

// loadConfig layers defaults, the config file, CHLOG_* variables and flags,
// in that order.
func loadConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	if err := cfgpkg.FromEnv(&cfg); err != nil {
		return cfgpkg.Config{}, err
	}
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"data-dir", &cfg.DataDir},
		{"fsync", &cfg.Fsync},
		{"codec", &cfg.Codec},
		{"log-level", &cfg.Log.Level},
		{"log-format", &cfg.Log.Format},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.dst, _ = cmd.Flags().GetString(o.flag)
		}
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg cfgpkg.LogConfig) (logpkg.Logger, error) {
	return logpkg.ApplyConfig(&logpkg.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		Writer: cmd.ErrOrStderr(),
	})
}

// withRuntime opens the runtime for the duration of fn.
func withRuntime(cmd *cobra.Command, fn func(*runtime.Runtime) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg.Log)
	if err != nil {
		return err
	}
	logpkg.RedirectStdLog(logger)
	rt, err := runtime.Open(runtime.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()
	return fn(rt)
}

// withStore opens table as a keychain store. Unless create is set the table
// must already be registered.
func withStore(cmd *cobra.Command, create bool, fn func(*runtime.Runtime, *Store) error) error {
	name, _ := cmd.Flags().GetString("table")
	if err := tables.ValidateName(name); err != nil {
		return err
	}
	return withRuntime(cmd, func(rt *runtime.Runtime) error {
		if !create {
			if _, found, err := tables.Get(rt.DB(), name); err != nil {
				return err
			} else if !found {
				return fmt.Errorf("table %q not found", name)
			}
		}
		store, err := runtime.OpenKeychainStore[string, keychain.TxHeight](rt, name)
		if err != nil {
			return err
		}
		return fn(rt, store)
	})
}

func addTableFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("table", "t", "", "Table name")
	_ = cmd.MarkFlagRequired("table")
}
