// Package runtime wires storage, config, and the table registry into a
// single-process changeset store. It exposes Open/Close, a basic health
// check, and helpers that open logs with the configured codec and
// durability settings.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{Config: config.Default()})
//	defer rt.Close()
//	store, _ := runtime.OpenKeychainStore[string, keychain.TxHeight](rt, "wallet")
//	tr, _ := keychain.Recover(store)
//	_ = store.AppendChangeset(tr.RevealTo("external", 5))
package runtime
