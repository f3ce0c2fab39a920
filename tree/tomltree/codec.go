// Copyright 2019 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tomltree

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"schemaforge.dev/migrate/tree"
)

// Marshal renders v (a tomltree value: *Map, []any, or scalar) to TOML text.
// The root must be a *Map, since TOML documents are always tables.
func Marshal(v any) ([]byte, error) {
	native, err := toNative(v)
	if err != nil {
		return nil, err
	}
	m, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("tomltree: Marshal: root value must be a map, got %T", v)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, fmt.Errorf("tomltree: Marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses TOML text into a tomltree value rooted at a *Map.
//
// BurntSushi/toml decodes a bare table into a Go map, which carries no
// ordering of its own; this adapter sorts each table's keys alphabetically
// to get a deterministic, reproducible entry order rather than depending on
// Go's randomized map iteration. This is a known divergence from source
// declaration order, acceptable for a test-only reference adapter (the
// deliverable JSON/YAML/XML/TOML format layer itself is out of scope).
func Unmarshal(data []byte) (any, error) {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("tomltree: Unmarshal: %w", err)
	}
	return fromNative(raw), nil
}

func toNative(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case null:
		return nil, fmt.Errorf("tomltree: Marshal: TOML cannot represent an empty/null value directly")
	case *Map:
		out := make(map[string]any, len(val.entries))
		for _, e := range val.entries {
			k, ok := e.Key.(string)
			if !ok {
				return nil, fmt.Errorf("tomltree: Marshal: non-string map key %T", e.Key)
			}
			nv, err := toNative(e.Value)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			nv, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return val, nil
	}
}

func fromNative(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := &Map{}
		for _, k := range keys {
			m.entries = append(m.entries, tree.Entry[any]{Key: k, Value: fromNative(val[k])})
		}
		return m
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromNative(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromNative(item)
		}
		return out
	case time.Time:
		return val.Format(time.RFC3339)
	case int64, float64, bool, string:
		return val
	case int:
		return int64(val)
	default:
		return val
	}
}
