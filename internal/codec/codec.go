// Package codec provides interchangeable changeset encodings.
//
// Every codec is a zero-size generic value, so selecting one is a type
// choice at the call site:
//
//	c := codec.CBOR[keychain.ChangeSet[string, keychain.TxHeight]]{}
//	b, _ := c.Encode(cs)
//	cs, _ = c.Decode(b)
//
// Use ByName when the encoding comes from configuration.
package codec

import (
	"errors"
	"fmt"
	"slices"
)

// Codec encodes values of T to bytes and back.
type Codec[T any] interface {
	Name() string
	Encode(v T) ([]byte, error)
	Decode(b []byte) (T, error)
}

const (
	NameCBOR = "cbor"
	NameGob  = "gob"
	NameJSON = "json"
)

// Default is the encoding used when none is configured.
const Default = NameCBOR

// ErrUnknownCodec is returned by ByName for unsupported names.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Names lists the supported codec names.
func Names() []string { return []string{NameCBOR, NameGob, NameJSON} }

// Valid reports whether name is a supported codec.
func Valid(name string) bool { return slices.Contains(Names(), name) }

// ByName returns the codec registered under name. An empty name selects Default.
func ByName[T any](name string) (Codec[T], error) {
	switch name {
	case NameCBOR, "":
		return CBOR[T]{}, nil
	case NameGob:
		return Gob[T]{}, nil
	case NameJSON:
		return JSON[T]{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownCodec, name, Names())
	}
}
