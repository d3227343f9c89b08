// Package jsonx wraps json-iterator in its standard-library compatible mode.
package jsonx

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var jsonx = jsoniter.ConfigCompatibleWithStandardLibrary

func Marshal(v any) ([]byte, error) {
	return jsonx.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return jsonx.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v any) error {
	return jsonx.Unmarshal(data, v)
}

func NewDecoder(r io.Reader) *jsoniter.Decoder {
	return jsonx.NewDecoder(r)
}

func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return jsonx.NewEncoder(w)
}

// RawMessage is a raw encoded JSON value.
type RawMessage = jsoniter.RawMessage
