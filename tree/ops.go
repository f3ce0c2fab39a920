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

// Package tree defines TreeOps, the only surface through which the
// migration engine reads, inspects, builds, and edits tree values in a
// specific serialization format. The engine never inspects a tree value V
// directly; every package in this module threads V as a type parameter and
// goes through an Ops[V] implementation supplied by a format adapter.
//
// Concrete adapters (JSON, YAML, TOML, XML) are out of scope for the core;
// this package defines only the contract. The tree/nativetree,
// tree/yamltree and tree/tomltree subpackages are reference adapters used
// by this module's own tests, not a deliverable format layer.
package tree

// Entry is one key/value pair of an ordered mapping. Key and Value are both
// tree nodes: a Choice's tag field and any Field's name are string-valued
// tree nodes, not bare Go strings, so round-tripping through a
// format that tags string keys (e.g. YAML merge keys) stays lossless.
type Entry[V any] struct {
	Key   V
	Value V
}

// Ops is the format-agnostic operation set every format adapter implements.
// A host supplies
// one Ops[V] per serialization format; the engine is generic over V and
// never constructs a V except through these methods.
type Ops[V any] interface {
	// Creation. Pure constructors; no failure modes except format-specific
	// invalid values (surfaced as error from Numeric).
	Empty() V
	Bool(bool) V
	Int8(int8) V
	Int16(int16) V
	Int32(int32) V
	Int64(int64) V
	Float32(float32) V
	Float64(float64) V
	String(string) V
	EmptyList() V
	EmptyMap() V
	// Numeric constructs a numeric node from n, one of the Go numeric
	// kinds; how far it narrows by value is up to each adapter. An
	// unsupported type, or a value the format rejects (e.g. TOML's bare
	// NaN), is an error.
	Numeric(n any) (V, error)

	// Classify. Pure predicates.
	IsNull(V) bool
	IsBool(V) bool
	IsNumber(V) bool
	IsString(V) bool
	IsList(V) bool
	IsMap(V) bool

	// Read primitives. Error if the classification does not match.
	AsBool(V) (bool, error)
	AsNumber(V) (float64, error)
	AsString(V) (string, error)

	// List/map reads.
	ListStream(V) ([]V, error)
	MapEntries(V) ([]Entry[V], error)
	Get(m V, key string) (V, bool)
	Has(m V, key string) bool

	// Build. All build operations produce new values; inputs are never
	// aliased post-edit (copy-on-write).
	MergeToList(a, b V) (V, error)
	MergeToMapEntry(m V, key V, value V) (V, error)
	MergeToMap(m V, other V) (V, error)
	CreateList(items []V) V
	CreateMap(entries []Entry[V]) V

	// Edit. If m is not a map, Set returns a new single-entry map; if m is
	// not a map, Remove returns m unchanged.
	Set(m V, key string, val V) V
	Remove(m V, key string) V
}

// Dynamic bundles a tree value with the Ops that understand it. Dynamic
// values are immutable; every Ops edit method returns a new V rather than mutating
// in place.
type Dynamic[V any] struct {
	Ops   Ops[V]
	Value V
}

// SetField returns a new Dynamic with key bound to val, going through Ops so
// format-specific copy-on-write semantics are respected.
func (d Dynamic[V]) SetField(key string, val V) Dynamic[V] {
	return Dynamic[V]{Ops: d.Ops, Value: d.Ops.Set(d.Value, key, val)}
}

// RemoveField returns a new Dynamic with key dropped, if present.
func (d Dynamic[V]) RemoveField(key string) Dynamic[V] {
	return Dynamic[V]{Ops: d.Ops, Value: d.Ops.Remove(d.Value, key)}
}

// GetField looks up key in d's map value, if d.Value is a map.
func (d Dynamic[V]) GetField(key string) (V, bool) {
	return d.Ops.Get(d.Value, key)
}
