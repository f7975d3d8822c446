package pebblestore

import (
	"bytes"
	"testing"
)

func TestTableGetInsert(t *testing.T) {
	db, _ := newTestDB(t)
	tbl := db.Table("wallet")

	if _, ok, err := tbl.Get([]byte("k")); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	prev, err := tbl.Insert([]byte("k"), []byte("v1"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if prev != nil {
		t.Fatalf("expected no previous value, got %q", prev)
	}
	prev, err = tbl.Insert([]byte("k"), []byte("v2"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if string(prev) != "v1" {
		t.Fatalf("previous value %q want v1", prev)
	}
	v, ok, err := tbl.Get([]byte("k"))
	if err != nil || !ok || string(v) != "v2" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestTableIsolation(t *testing.T) {
	db, _ := newTestDB(t)
	a := db.Table("a")
	ab := db.Table("a-b")
	if _, err := a.Insert([]byte("x"), []byte("1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := ab.Insert([]byte("y"), []byte("2")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var keys []string
	if err := a.Ascend(func(k, _ []byte) bool { keys = append(keys, string(k)); return true }); err != nil {
		t.Fatalf("ascend: %v", err)
	}
	if len(keys) != 1 || keys[0] != "x" {
		t.Fatalf("table a leaked keys: %v", keys)
	}
}

func TestTableAscendOrderAndStop(t *testing.T) {
	db, _ := newTestDB(t)
	tbl := db.Table("ordered")
	for _, k := range [][]byte{{0x02}, {0x00, 0x01}, {0x01}, {0xff}} {
		if _, err := tbl.Insert(k, k); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	var seen [][]byte
	if err := tbl.Ascend(func(k, v []byte) bool {
		if !bytes.Equal(k, v) {
			t.Fatalf("value mismatch for key %x", k)
		}
		seen = append(seen, k)
		return true
	}); err != nil {
		t.Fatalf("ascend: %v", err)
	}
	want := [][]byte{{0x00, 0x01}, {0x01}, {0x02}, {0xff}}
	if len(seen) != len(want) {
		t.Fatalf("got %d keys want %d", len(seen), len(want))
	}
	for i := range want {
		if !bytes.Equal(seen[i], want[i]) {
			t.Fatalf("key %d: got %x want %x", i, seen[i], want[i])
		}
	}

	n := 0
	if err := tbl.Ascend(func(_, _ []byte) bool { n++; return n < 2 }); err != nil {
		t.Fatalf("ascend: %v", err)
	}
	if n != 2 {
		t.Fatalf("ascend should stop when fn returns false, visited %d", n)
	}
}

func TestTablePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(Options{DataDir: dir, Fsync: FsyncModeNever})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	tbl := db.Table("wallet")
	if _, err := tbl.Insert([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := tbl.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db2, err := Open(Options{DataDir: dir, Fsync: FsyncModeNever})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()
	v, ok, err := db2.Table("wallet").Get([]byte("k"))
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("after reopen: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestPrefixUpperBound(t *testing.T) {
	if got := prefixUpperBound([]byte("tbl/a/")); string(got) != "tbl/a0" {
		t.Fatalf("got %q", got)
	}
	if got := prefixUpperBound([]byte{0x01, 0xff}); !bytes.Equal(got, []byte{0x02}) {
		t.Fatalf("got %x", got)
	}
	if got := prefixUpperBound([]byte{0xff}); got != nil {
		t.Fatalf("all-0xff prefix has no upper bound, got %x", got)
	}
}
