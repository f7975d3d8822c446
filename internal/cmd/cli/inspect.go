package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lava-xyz/bdk-pebble/internal/keychain"
	"github.com/lava-xyz/bdk-pebble/internal/runtime"
)

// newReplayCommand constructs the `replay` subcommand.
func newReplayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild the tracker from the log and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, false, func(_ *runtime.Runtime, store *Store) error {
				tr, err := keychain.Recover(store)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tr.Snapshot())
			})
		},
	}
	addTableFlag(cmd)
	return cmd
}

// newEntriesCommand constructs the `entries` subcommand.
func newEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List stored changesets in sequence order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, false, func(_ *runtime.Runtime, store *Store) error {
				enc := json.NewEncoder(cmd.OutOrStdout())
				for e, err := range store.Entries() {
					if err != nil {
						return err
					}
					if err := enc.Encode(map[string]any{
						"seq":       e.Seq,
						"changeset": e.Changeset,
					}); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	addTableFlag(cmd)
	return cmd
}

// newCounterCommand constructs the `counter` subcommand.
func newCounterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Print the sequence number of the next changeset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, false, func(_ *runtime.Runtime, store *Store) error {
				fmt.Fprintln(cmd.OutOrStdout(), store.Next())
				return nil
			})
		},
	}
	addTableFlag(cmd)
	return cmd
}

// newTablesCommand constructs the `tables` subcommand.
func newTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List registered tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, func(rt *runtime.Runtime) error {
				metas, err := rt.Tables()
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tCODEC\tCREATED_MS")
				for _, m := range metas {
					fmt.Fprintf(w, "%s\t%s\t%d\n", m.Name, m.Codec, m.CreatedAtMs)
				}
				return w.Flush()
			})
		},
	}
}
