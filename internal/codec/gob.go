package codec

import (
	"bytes"
	"encoding/gob"
)

// Gob encodes values with encoding/gob. Each payload is self-describing.
type Gob[T any] struct{}

func (Gob[T]) Name() string { return NameGob }

func (Gob[T]) Encode(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Gob[T]) Decode(b []byte) (T, error) {
	var v T
	err := gob.NewDecoder(bytes.NewReader(b)).Decode(&v)
	return v, err
}
