package codec

import "github.com/fxamacker/cbor/v2"

// Canonical encoding sorts map keys, so equal values produce equal payloads.
var cborEnc = mustEncMode(cbor.CoreDetEncOptions())

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// CBOR encodes values as deterministic CBOR (RFC 8949 core deterministic).
type CBOR[T any] struct{}

func (CBOR[T]) Name() string { return NameCBOR }

func (CBOR[T]) Encode(v T) ([]byte, error) { return cborEnc.Marshal(v) }

func (CBOR[T]) Decode(b []byte) (T, error) {
	var v T
	err := cbor.Unmarshal(b, &v)
	return v, err
}
