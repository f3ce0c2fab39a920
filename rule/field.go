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

package rule

import (
	"schemaforge.dev/migrate/tree"
	"schemaforge.dev/migrate/typedsl"
)

func asMap[V any](ops tree.Ops[V], in typedsl.Typed[V]) (V, bool) {
	m, ok := in.Value.(V)
	if !ok || !ops.IsMap(m) {
		var zero V
		return zero, false
	}
	return m, true
}

// RenameField rebinds the value under old to new in any map that has old
// present and new absent, preserving every other entry. It does not match
// (and never overwrites an existing new) otherwise.
func RenameField[V any](ops tree.Ops[V], old, new string) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		m, ok := asMap(ops, in)
		if !ok {
			return typedsl.Typed[V]{}, false
		}
		val, present := ops.Get(m, old)
		if !present || ops.Has(m, new) {
			return typedsl.Typed[V]{}, false
		}
		m2 := ops.Set(ops.Remove(m, old), new, val)
		return typedsl.Typed[V]{Type: t, Value: m2}, true
	}
}

// RemoveField drops name from the map if present.
func RemoveField[V any](ops tree.Ops[V], name string) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		m, ok := asMap(ops, in)
		if !ok || !ops.Has(m, name) {
			return typedsl.Typed[V]{}, false
		}
		return typedsl.Typed[V]{Type: t, Value: ops.Remove(m, name)}, true
	}
}

// AddField adds name with def() if it is absent; it never overwrites an
// existing entry.
func AddField[V any](ops tree.Ops[V], name string, def func() V) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		m, ok := asMap(ops, in)
		if !ok || ops.Has(m, name) {
			return typedsl.Typed[V]{}, false
		}
		return typedsl.Typed[V]{Type: t, Value: ops.Set(m, name, def())}, true
	}
}

// TransformField rewrites the value of name through f if name is present;
// it is a no-op (non-match) otherwise.
func TransformField[V any](ops tree.Ops[V], name string, f func(tree.Dynamic[V]) tree.Dynamic[V]) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		m, ok := asMap(ops, in)
		if !ok {
			return typedsl.Typed[V]{}, false
		}
		v, present := ops.Get(m, name)
		if !present {
			return typedsl.Typed[V]{}, false
		}
		out := f(tree.Dynamic[V]{Ops: ops, Value: v})
		return typedsl.Typed[V]{Type: t, Value: ops.Set(m, name, out.Value)}, true
	}
}
