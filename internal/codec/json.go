package codec

import "encoding/json"

// JSON encodes values with encoding/json.
type JSON[T any] struct{}

func (JSON[T]) Name() string { return NameJSON }

func (JSON[T]) Encode(v T) ([]byte, error) { return json.Marshal(v) }

func (JSON[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}
