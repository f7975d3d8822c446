package tables

import (
	"errors"
	"strings"
	"testing"

	pebblestore "github.com/lava-xyz/bdk-pebble/internal/storage/pebble"
)

func openDB(t *testing.T) *pebblestore.DB {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestEnsureTableIdempotent(t *testing.T) {
	db := openDB(t)

	m1, err := EnsureTable(db, "wallet", "cbor")
	if err != nil {
		t.Fatalf("ensure1: %v", err)
	}
	m2, err := EnsureTable(db, "wallet", "cbor")
	if err != nil {
		t.Fatalf("ensure2: %v", err)
	}
	if m1 != m2 {
		t.Fatalf("not idempotent: %+v vs %+v", m1, m2)
	}
}

func TestEnsureTableCodecMismatch(t *testing.T) {
	db := openDB(t)
	if _, err := EnsureTable(db, "wallet", "cbor"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := EnsureTable(db, "wallet", "json"); !errors.Is(err, ErrCodecMismatch) {
		t.Fatalf("expected ErrCodecMismatch, got %v", err)
	}
}

func TestEnsureTableAdoptsPinnedCodec(t *testing.T) {
	db := openDB(t)
	if _, err := EnsureTable(db, "wallet", "gob"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	m, err := EnsureTable(db, "wallet", "")
	if err != nil {
		t.Fatalf("reopen without codec: %v", err)
	}
	if m.Codec != "gob" {
		t.Fatalf("pinned codec %q want gob", m.Codec)
	}

	fresh, err := EnsureTable(db, "other", "")
	if err != nil {
		t.Fatalf("ensure other: %v", err)
	}
	if fresh.Codec != "cbor" {
		t.Fatalf("new table codec %q want cbor", fresh.Codec)
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"a", "wallet-1", "main_net", strings.Repeat("x", 64)} {
		if err := ValidateName(name); err != nil {
			t.Fatalf("%q rejected: %v", name, err)
		}
	}
	for _, name := range []string{"", "Wallet", "a/b", "a b", strings.Repeat("x", 65)} {
		if err := ValidateName(name); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("%q accepted", name)
		}
	}
}

func TestListSorted(t *testing.T) {
	db := openDB(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := EnsureTable(db, name, "gob"); err != nil {
			t.Fatalf("ensure %s: %v", name, err)
		}
	}
	got, err := List(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("got %d tables want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.Name != want[i] || m.Codec != "gob" {
			t.Fatalf("table %d: %+v", i, m)
		}
	}
}

func TestCorruptMeta(t *testing.T) {
	db := openDB(t)
	if err := db.Set(metaKey("bad"), []byte("{")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := EnsureTable(db, "bad", "cbor"); !errors.Is(err, ErrCorruptMeta) {
		t.Fatalf("ensure: expected ErrCorruptMeta, got %v", err)
	}
	if _, err := List(db); !errors.Is(err, ErrCorruptMeta) {
		t.Fatalf("list: expected ErrCorruptMeta, got %v", err)
	}
}
