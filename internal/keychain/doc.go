// Package keychain models wallet keychain state as a Tracker that is rebuilt
// from persisted ChangeSets.
//
// A Tracker records, per keychain, the last revealed derivation index and,
// per transaction id, the transaction's chain position. Mutating helpers
// return the ChangeSet describing what changed; callers persist it with a
// Store and later replay the log into a fresh Tracker:
//
//	store, _ := keychain.NewStore[string, keychain.TxHeight](table, codec.CBOR[keychain.ChangeSet[string, keychain.TxHeight]]{})
//	tr, _ := keychain.Recover(store)
//	cs := tr.RevealTo("external", 42)
//	_ = store.AppendChangeset(cs)
package keychain
