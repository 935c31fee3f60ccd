// Package mapx probes decoded JSON objects through ordered lists of
// acceptable key aliases. The back-office API is loose about field casing
// (camelCase vs PascalCase) and its tokens mix short claim keys with legacy
// XML-namespace-qualified ones, so every such lookup goes through the same
// first-match-wins helpers.
package mapx

import (
	"math"
	"strconv"
)

// First returns the first non-nil value found under any of the given keys,
// probing in the order the keys are listed.
func First(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// FirstString returns the first present value coerced to a string.
// Strings are returned as is, JSON numbers are formatted, booleans
// stringified. Other value shapes (objects, arrays) do not match.
func FirstString(m map[string]any, keys ...string) (string, bool) {
	v, ok := First(m, keys...)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// FirstNumber returns the first present value coerced to a float64.
// JSON numbers match directly; strings are parsed. Non-finite results
// (NaN, ±Inf) are rejected.
func FirstNumber(m map[string]any, keys ...string) (float64, bool) {
	v, ok := First(m, keys...)
	if !ok {
		return 0, false
	}
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// FirstInt is FirstNumber truncated to int64, for identifier fields.
func FirstInt(m map[string]any, keys ...string) (int64, bool) {
	n, ok := FirstNumber(m, keys...)
	if !ok {
		return 0, false
	}
	return int64(n), true
}
