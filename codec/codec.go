// Package codec converts values to and from the JSON text kept in the host
// key-value store. Decoding never fails past this package: malformed or
// absent input yields the caller's fallback.
package codec

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Codec encodes values of type T to stored text and back.
type Codec[T any] interface {
	Encode(value T) (string, error)
	Decode(raw string) (T, error)
}

// JSON is the default Codec. It performs no schema validation beyond what
// decoding into T implies.
type JSON[T any] struct{}

func (JSON[T]) Encode(value T) (string, error) {
	return Stringify(value)
}

func (JSON[T]) Decode(raw string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		var zero T
		return zero, fmt.Errorf("decode stored value: %w", err)
	}
	return out, nil
}

// TryParse decodes raw into T. When present is false the fallback is returned
// without parsing; when raw is not valid JSON for T the fallback is returned
// as well.
func TryParse[T any](raw string, present bool, fallback T) T {
	return TryDecode[T](JSON[T]{}, raw, present, fallback)
}

// TryDecode is TryParse for an arbitrary Codec.
func TryDecode[T any](c Codec[T], raw string, present bool, fallback T) T {
	if !present {
		return fallback
	}
	out, err := c.Decode(raw)
	if err != nil {
		return fallback
	}
	return out
}

// Stringify encodes value as JSON. A nil value is encoded as null so that it
// reads back as nil instead of disappearing.
func Stringify(value any) (string, error) {
	if value == nil {
		return "null", nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return string(data), nil
}
