// Package pebblestore provides a thin wrapper around Pebble with fsync policy,
// minimal metrics hooks, and named table keyspaces.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./data",
//	    Fsync:   pebblestore.FsyncModeAlways,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	// A table is an ordered keyspace under "tbl/{name}/".
//	t := db.Table("wallet")
//	prev, _ := t.Insert([]byte("k"), []byte("v"))
//	v, ok, _ := t.Get([]byte("k"))
//	_ = t.Ascend(func(k, v []byte) bool { return true })
//
//	// Force the WAL to stable storage.
//	_ = t.Flush()
package pebblestore
