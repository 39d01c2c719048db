package extract

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// JSONDoc wraps a parsed JSON document with gjson path queries. As with
// Doc, lookups on missing paths return zero values.
type JSONDoc struct {
	root gjson.Result
}

// ParseJSON validates and parses a JSON document.
func ParseJSON(data []byte) (*JSONDoc, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document (%d bytes)", len(data))
	}
	return &JSONDoc{root: gjson.ParseBytes(data)}, nil
}

// Str returns the string value at path, or "".
func (d *JSONDoc) Str(path string) string {
	return d.root.Get(path).String()
}

// Int returns the integer value at path, or 0.
func (d *JSONDoc) Int(path string) int {
	return int(d.root.Get(path).Int())
}

// Float returns the float value at path, or 0.
func (d *JSONDoc) Float(path string) float64 {
	return d.root.Get(path).Float()
}

// Exists reports whether path resolves to a value.
func (d *JSONDoc) Exists(path string) bool {
	return d.root.Get(path).Exists()
}

// ForEach iterates over the array at path. It is a no-op if the path is
// missing or not an array.
func (d *JSONDoc) ForEach(path string, fn func(item gjson.Result) bool) {
	d.root.Get(path).ForEach(func(_, item gjson.Result) bool {
		return fn(item)
	})
}

// FindFirst scans the array at path and returns the first element for which
// match returns true. The scan is an explicit linear search so the result
// does not depend on any map iteration order upstream.
func (d *JSONDoc) FindFirst(path string, match func(item gjson.Result) bool) (gjson.Result, bool) {
	var found gjson.Result
	ok := false
	d.ForEach(path, func(item gjson.Result) bool {
		if match(item) {
			found = item
			ok = true
			return false
		}
		return true
	})
	return found, ok
}
