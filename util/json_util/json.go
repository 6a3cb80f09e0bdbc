// Package json_util provides JSON helpers shared by the storage layer.
package json_util

import (
	"github.com/goccy/go-json"
)

// Clone deep-copies v through a JSON round trip. The in-memory repository
// uses it so callers never share backing maps with the store.
func Clone[T any](v T) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}
