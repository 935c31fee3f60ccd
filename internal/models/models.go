// Package models defines the row entities of the back-office grids.
//
// The API emits both camelCase and PascalCase field names depending on
// which backend version answers, so every entity carries a custom
// UnmarshalJSON probing an ordered alias list per field (same helper the
// session package uses for token claims). Outbound payloads are plain
// camelCase via struct tags. An ID of 0 means "not yet created".
package models

import (
	"encoding/json"

	"github.com/avolkov/backoffice/internal/mapx"
)

// Short-hand wrappers over the shared alias probes.
func strField(m map[string]any, keys ...string) (string, bool) { return mapx.FirstString(m, keys...) }
func numField(m map[string]any, keys ...string) (float64, bool) {
	return mapx.FirstNumber(m, keys...)
}
func intField(m map[string]any, keys ...string) (int64, bool) { return mapx.FirstInt(m, keys...) }

func firstAny(m map[string]any, keys ...string) (any, bool) { return mapx.First(m, keys...) }

func idField(m map[string]any) (int64, bool) { return mapx.FirstInt(m, "id", "Id", "ID") }

// decodeObject parses raw JSON into the loose map the alias probes work on.
func decodeObject(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// reparse round-trips a decoded sub-value (already a []any / map[string]any)
// into a concrete slice or struct, reusing the tolerant unmarshallers.
func reparse(v any, out any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
