package jsonx

import (
	jsoniter "github.com/json-iterator/go"
)

// Map keys are sorted so that blobs are stable across runs; transaction ids
// are computed over them.
var jsonx = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

func Marshal(v interface{}) ([]byte, error) {
	return jsonx.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return jsonx.Unmarshal(data, v)
}
