package swapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shape classifies the envelope of a collection response.
type Shape int

const (
	ShapeUnknown Shape = iota // No list found anywhere; treated as empty.
	ShapeArray                // Bare JSON array.
	ShapeResults              // Object with a "results" array.
	ShapeData                 // Object with a "data" array.
)

// String returns the shape name used in log lines.
func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeResults:
		return "results"
	case ShapeData:
		return "data"
	}
	return "unknown"
}

// Collection is a normalized collection response: the envelope that was
// recognised and the raw, still-undecoded elements.
type Collection struct {
	Shape Shape
	Items []json.RawMessage
}

// NormalizeCollection finds the element list in a collection body. It checks,
// in order: a bare array, a "results" array, a "data" array. Anything else
// yields ShapeUnknown with no items and no error. An error is returned only
// when body is not valid JSON.
func NormalizeCollection(body []byte) (Collection, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return Collection{}, fmt.Errorf("swapi: invalid JSON in collection response")
	}

	if items, ok := asArray(trimmed); ok {
		return Collection{Shape: ShapeArray, Items: items}, nil
	}

	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Collection{Shape: ShapeUnknown}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return Collection{}, fmt.Errorf("swapi: decoding collection envelope: %w", err)
	}
	if items, ok := asArray(envelope["results"]); ok {
		return Collection{Shape: ShapeResults, Items: items}, nil
	}
	if items, ok := asArray(envelope["data"]); ok {
		return Collection{Shape: ShapeData, Items: items}, nil
	}
	return Collection{Shape: ShapeUnknown}, nil
}

// asArray decodes raw as a JSON array of raw elements. It reports false for
// anything that is not an array, including a missing field or null.
func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, true
}
