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

// Package nativetree implements tree.Ops[any] over plain Go values
// (nil, bool, the numeric kinds, string, []any, and an ordered map of
// string-keyed entries). It is the cheapest tree.Ops to construct literal
// fixtures with and is used throughout this module's own test suite; it is
// not a format adapter (no format is being serialized), just a reference
// implementation of
// the contract, grounded on the Go-value conversion style of the teacher's
// internal/core/convert package.
package nativetree

import (
	"fmt"
	"math"

	"schemaforge.dev/migrate/tree"
)

// Map is the ordered-map node kind: nativetree has no native Go map that
// preserves insertion order, so entries are kept as a slice of pairs,
// mirroring the teacher's encoding/openapi.OrderedMap ([]KeyValue) pattern
// generalized from interface{} values to tree.Entry[any].
type Map struct {
	entries []tree.Entry[any]
}

// Ops is the zero-configuration tree.Ops[any] implementation. There is
// nothing to configure, so a single package-level value would do, but Ops
// is a constructable (zero-size) struct instead of an exported singleton,
// so callers can always write nativetree.New() rather than reach for a
// package-level var.
type Ops struct{}

// New returns a usable nativetree.Ops value.
func New() Ops { return Ops{} }

var _ tree.Ops[any] = Ops{}

func (Ops) Empty() any      { return nil }
func (Ops) Bool(b bool) any { return b }
func (Ops) Int8(n int8) any { return n }
func (Ops) Int16(n int16) any {
	return n
}
func (Ops) Int32(n int32) any   { return n }
func (Ops) Int64(n int64) any   { return n }
func (Ops) Float32(n float32) any { return n }
func (Ops) Float64(n float64) any { return n }
func (Ops) String(s string) any { return s }
func (Ops) EmptyList() any      { return []any{} }
func (Ops) EmptyMap() any       { return &Map{} }

// Numeric passes the sized integer kinds and float32 through unchanged and
// widens int to int64. A float64 with an integral value narrows to int32
// when it fits, else int64; any other float64 stays float64, and NaN/Inf
// are rejected.
func (o Ops) Numeric(n any) (any, error) {
	switch v := n.(type) {
	case int8, int16, int32, int64, float32:
		return v, nil
	case int:
		return o.Numeric(int64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("nativetree: invalid float value %v", v)
		}
		if v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
			return int32(v), nil
		}
		if v == math.Trunc(v) && v >= math.MinInt64 && v <= math.MaxInt64 {
			return int64(v), nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("nativetree: unsupported numeric type %T", n)
	}
}

func (Ops) IsNull(v any) bool { return v == nil }
func (Ops) IsBool(v any) bool { _, ok := v.(bool); return ok }
func (Ops) IsNumber(v any) bool {
	switch v.(type) {
	case int8, int16, int32, int64, float32, float64:
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
		return false, fmt.Errorf("nativetree: AsBool on %T (%v)", v, v)
	}
	return b, nil
}

func (Ops) AsNumber(v any) (float64, error) {
	switch n := v.(type) {
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("nativetree: AsNumber on %T (%v)", v, v)
	}
}

func (Ops) AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("nativetree: AsString on %T (%v)", v, v)
	}
	return s, nil
}

func (Ops) ListStream(v any) ([]any, error) {
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("nativetree: ListStream on %T (%v)", v, v)
	}
	out := make([]any, len(l))
	copy(out, l)
	return out, nil
}

func (Ops) MapEntries(v any) ([]tree.Entry[any], error) {
	m, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("nativetree: MapEntries on %T (%v)", v, v)
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
		return nil, fmt.Errorf("nativetree: MergeToList: %T is not a list", a)
	}
	bl, ok := b.([]any)
	if !ok {
		return nil, fmt.Errorf("nativetree: MergeToList: %T is not a list", b)
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
		return nil, fmt.Errorf("nativetree: MergeToMapEntry: %T is not a map", m)
	}
	ks, ok := key.(string)
	if !ok {
		return nil, fmt.Errorf("nativetree: MergeToMapEntry: key %T is not a string", key)
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
		return nil, fmt.Errorf("nativetree: MergeToMap: %T is not a map", m)
	}
	om, ok := other.(*Map)
	if !ok {
		return nil, fmt.Errorf("nativetree: MergeToMap: %T is not a map", other)
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
