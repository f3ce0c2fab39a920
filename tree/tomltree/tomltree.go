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

// Package tomltree implements tree.Ops[any] over the same ordered-entries
// value shape tree/nativetree uses, with Marshal/Unmarshal functions that go
// through github.com/BurntSushi/toml at the text boundary. Like
// tree/nativetree and tree/yamltree, this is a reference adapter for this
// module's own tests, not a deliverable TOML format layer.
package tomltree

import (
	"fmt"
	"math"

	"schemaforge.dev/migrate/tree"
)

// Map is the ordered-map node kind, identical in shape to
// tree/nativetree.Map; kept as its own type rather than imported so this
// adapter stays self-contained the way tree/yamltree does.
type Map struct {
	entries []tree.Entry[any]
}

// null is the sentinel tomltree uses for Empty(), since TOML itself has no
// native null/nil value.
type null struct{}

// Ops is the zero-configuration tree.Ops[any] implementation for tomltree.
type Ops struct{}

// New returns a usable tomltree.Ops value.
func New() Ops { return Ops{} }

var _ tree.Ops[any] = Ops{}

func (Ops) Empty() any        { return null{} }
func (Ops) Bool(b bool) any   { return b }
func (Ops) Int8(n int8) any   { return int64(n) }
func (Ops) Int16(n int16) any { return int64(n) }
func (Ops) Int32(n int32) any { return int64(n) }
func (Ops) Int64(n int64) any { return n }
func (Ops) Float32(n float32) any {
	return float64(n)
}
func (Ops) Float64(n float64) any { return n }
func (Ops) String(s string) any   { return s }
func (Ops) EmptyList() any        { return []any{} }
func (Ops) EmptyMap() any         { return &Map{} }

// Numeric narrows n to int64 or float64, TOML's only two numeric kinds,
// rejecting NaN/Inf: TOML disallows bare NaN/inf literals outside the
// extended float forms, so this adapter treats them as invalid on creation
// rather than silently emitting a value BurntSushi/toml would refuse to
// marshal.
func (o Ops) Numeric(n any) (any, error) {
	switch v := n.(type) {
	case int, int8, int16, int32, int64:
		return toInt64(v), nil
	case float32:
		return o.Numeric(float64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("tomltree: TOML does not support NaN/Inf values")
		}
		return v, nil
	default:
		return nil, fmt.Errorf("tomltree: unsupported numeric type %T", n)
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}

func (Ops) IsNull(v any) bool { _, ok := v.(null); return ok }
func (Ops) IsBool(v any) bool { _, ok := v.(bool); return ok }
func (Ops) IsNumber(v any) bool {
	switch v.(type) {
	case int64, float64:
		return true
	default:
		return false
	}
}
func (Ops) IsString(v any) bool { _, ok := v.(string); return ok }
func (Ops) IsList(v any) bool   { _, ok := v.([]any); return ok }
func (Ops) IsMap(v any) bool    { _, ok := v.(*Map); return ok }

func (Ops) AsBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("tomltree: AsBool on %T", v)
	}
	return b, nil
}

func (Ops) AsNumber(v any) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("tomltree: AsNumber on %T", v)
	}
}

func (Ops) AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("tomltree: AsString on %T", v)
	}
	return s, nil
}

func (Ops) ListStream(v any) ([]any, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("tomltree: ListStream on %T", v)
	}
	out := make([]any, len(l))
	copy(out, l)
	return out, nil
}

func (Ops) MapEntries(v any) ([]tree.Entry[any], error) {
	m, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("tomltree: MapEntries on %T", v)
	}
	out := make([]tree.Entry[any], len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (o Ops) Get(m any, key string) (any, bool) {
	mm, ok := m.(*Map)
	if !ok {
		return nil, false
	}
	for _, e := range mm.entries {
		if k, ok := e.Key.(string); ok && k == key {
			return e.Value, true
		}
	}
	return nil, false
}

func (o Ops) Has(m any, key string) bool {
	_, ok := o.Get(m, key)
	return ok
}

func (Ops) MergeToList(a, b any) (any, error) {
	al, ok := a.([]any)
	if !ok {
		return nil, fmt.Errorf("tomltree: MergeToList: %T is not a list", a)
	}
	bl, ok := b.([]any)
	if !ok {
		return nil, fmt.Errorf("tomltree: MergeToList: %T is not a list", b)
	}
	out := make([]any, 0, len(al)+len(bl))
	out = append(out, al...)
	out = append(out, bl...)
	return out, nil
}

func cloneMap(m *Map) *Map {
	out := &Map{entries: make([]tree.Entry[any], len(m.entries))}
	copy(out.entries, m.entries)
	return out
}

func (Ops) MergeToMapEntry(m any, key any, value any) (any, error) {
	mm, ok := m.(*Map)
	if !ok {
		return nil, fmt.Errorf("tomltree: MergeToMapEntry: %T is not a map", m)
	}
	ks, ok := key.(string)
	if !ok {
		return nil, fmt.Errorf("tomltree: MergeToMapEntry: key %T is not a string", key)
	}
	out := cloneMap(mm)
	for i, e := range out.entries {
		if k, ok := e.Key.(string); ok && k == ks {
			out.entries[i].Value = value
			return out, nil
		}
	}
	out.entries = append(out.entries, tree.Entry[any]{Key: ks, Value: value})
	return out, nil
}

func (Ops) MergeToMap(m any, other any) (any, error) {
	mm, ok := m.(*Map)
	if !ok {
		return nil, fmt.Errorf("tomltree: MergeToMap: %T is not a map", m)
	}
	om, ok := other.(*Map)
	if !ok {
		return nil, fmt.Errorf("tomltree: MergeToMap: %T is not a map", other)
	}
	out := cloneMap(mm)
	for _, e := range om.entries {
		ks, ok := e.Key.(string)
		if !ok {
			continue
		}
		found := false
		for i, existing := range out.entries {
			if k, ok := existing.Key.(string); ok && k == ks {
				out.entries[i].Value = e.Value
				found = true
				break
			}
		}
		if !found {
			out.entries = append(out.entries, e)
		}
	}
	return out, nil
}

func (Ops) CreateList(items []any) any {
	out := make([]any, len(items))
	copy(out, items)
	return out
}

func (Ops) CreateMap(entries []tree.Entry[any]) any {
	out := &Map{entries: make([]tree.Entry[any], len(entries))}
	copy(out.entries, entries)
	return out
}

func (o Ops) Set(m any, key string, val any) any {
	mm, ok := m.(*Map)
	if !ok {
		return &Map{entries: []tree.Entry[any]{{Key: key, Value: val}}}
	}
	out := cloneMap(mm)
	for i, e := range out.entries {
		if k, ok := e.Key.(string); ok && k == key {
			out.entries[i].Value = val
			return out
		}
	}
	out.entries = append(out.entries, tree.Entry[any]{Key: key, Value: val})
	return out
}

func (o Ops) Remove(m any, key string) any {
	mm, ok := m.(*Map)
	if !ok {
		return m
	}
	out := &Map{}
	for _, e := range mm.entries {
		if k, ok := e.Key.(string); ok && k == key {
			continue
		}
		out.entries = append(out.entries, e)
	}
	return out
}
