package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lava-xyz/bdk-pebble/internal/keychain"
	"github.com/lava-xyz/bdk-pebble/internal/runtime"
)

// newAppendCommand constructs the `append` subcommand. The tracker is
// recovered first so only real progress is written.
func newAppendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append",
		Short: "Reveal keychain indices and record transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kc, _ := cmd.Flags().GetString("keychain")
			index, _ := cmd.Flags().GetUint32("index")
			txid, _ := cmd.Flags().GetString("tx")
			height, _ := cmd.Flags().GetUint32("height")
			unconfirmed, _ := cmd.Flags().GetBool("unconfirmed")

			reveal := cmd.Flags().Changed("keychain")
			if reveal != cmd.Flags().Changed("index") {
				return errors.New("--keychain and --index must be given together")
			}
			if txid == "" && (unconfirmed || cmd.Flags().Changed("height")) {
				return errors.New("--height and --unconfirmed require --tx")
			}
			if txid != "" && unconfirmed == cmd.Flags().Changed("height") {
				return errors.New("--tx needs exactly one of --height or --unconfirmed")
			}
			if !reveal && txid == "" {
				return errors.New("nothing to append; pass --keychain/--index or --tx")
			}

			return withStore(cmd, true, func(_ *runtime.Runtime, store *Store) error {
				tr, err := keychain.Recover(store)
				if err != nil {
					return err
				}
				var cs keychain.ChangeSet[string, keychain.TxHeight]
				if reveal {
					cs.Merge(tr.RevealTo(kc, index))
				}
				if txid != "" {
					pos := keychain.Unconfirmed
					if !unconfirmed {
						pos = keychain.ConfirmedAt(height)
					}
					cs.Merge(tr.InsertTx(txid, pos))
				}
				if cs.IsEmpty() {
					fmt.Fprintln(cmd.OutOrStdout(), "unchanged")
					return nil
				}
				seq := store.Next()
				if err := store.AppendChangeset(cs); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "appended seq=%d\n", seq)
				return nil
			})
		},
	}
	addTableFlag(cmd)
	cmd.Flags().String("keychain", "", "Keychain to reveal")
	cmd.Flags().Uint32("index", 0, "Last derivation index to reveal")
	cmd.Flags().String("tx", "", "Transaction id to record")
	cmd.Flags().Uint32("height", 0, "Confirmation height of --tx")
	cmd.Flags().Bool("unconfirmed", false, "Record --tx as unconfirmed")
	return cmd
}
