package tables

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	codecpkg "github.com/lava-xyz/bdk-pebble/internal/codec"
	pebblestore "github.com/lava-xyz/bdk-pebble/internal/storage/pebble"
)

// Meta is the registry record kept for every table.
type Meta struct {
	Name        string `json:"name"`
	CreatedAtMs int64  `json:"createdAtMs"`
	Codec       string `json:"codec"`
}

var (
	// ErrInvalidName is returned for names outside [a-z0-9_-]{1,64}.
	ErrInvalidName = errors.New("tables: invalid table name")
	// ErrCodecMismatch is returned when a table is reopened with a different codec.
	ErrCodecMismatch = errors.New("tables: codec mismatch")
	// ErrCorruptMeta is returned when a registry record cannot be decoded.
	ErrCorruptMeta = errors.New("tables: corrupt metadata")
)

var (
	tblMetaPrefix = []byte("tblmeta/")
	nameRe        = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)
)

// ValidateName reports whether name can be used as a table name.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func metaKey(name string) []byte {
	k := make([]byte, 0, len(tblMetaPrefix)+len(name))
	k = append(k, tblMetaPrefix...)
	return append(k, name...)
}

// Get returns the registry record for name.
func Get(db *pebblestore.DB, name string) (Meta, bool, error) {
	b, err := db.Get(metaKey(name))
	if errors.Is(err, pebblestore.ErrNotFound) {
		return Meta{}, false, nil
	}
	if err != nil {
		return Meta{}, false, err
	}
	var m Meta
	if err := json.Unmarshal(b, &m); err != nil {
		return Meta{}, false, fmt.Errorf("%w: %s: %w", ErrCorruptMeta, name, err)
	}
	return m, true, nil
}

// EnsureTable registers name if absent and returns the effective record.
// A new table is pinned to codec, or to the default codec when codec is
// empty. An existing table keeps its pinned codec: an empty codec adopts it,
// any other value must match or the call fails with ErrCodecMismatch.
func EnsureTable(db *pebblestore.DB, name, codec string) (Meta, error) {
	if err := ValidateName(name); err != nil {
		return Meta{}, err
	}
	m, found, err := Get(db, name)
	if err != nil {
		return Meta{}, err
	}
	if found {
		if codec != "" && m.Codec != codec {
			return Meta{}, fmt.Errorf("%w: table %q uses %s, not %s", ErrCodecMismatch, name, m.Codec, codec)
		}
		return m, nil
	}
	if codec == "" {
		codec = codecpkg.Default
	}
	m = Meta{Name: name, CreatedAtMs: time.Now().UnixMilli(), Codec: codec}
	b, err := json.Marshal(m)
	if err != nil {
		return Meta{}, err
	}
	if err := db.Set(metaKey(name), b); err != nil {
		return Meta{}, err
	}
	return m, nil
}

// List returns every registered table in name order.
func List(db *pebblestore.DB) ([]Meta, error) {
	var (
		out       []Meta
		decodeErr error
	)
	err := db.ScanPrefix(tblMetaPrefix, func(k, v []byte) bool {
		var m Meta
		if err := json.Unmarshal(v, &m); err != nil {
			decodeErr = fmt.Errorf("%w: %s: %w", ErrCorruptMeta, k[len(tblMetaPrefix):], err)
			return false
		}
		out = append(out, m)
		return true
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return out, nil
}
