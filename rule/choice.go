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

// FixChoice reads tagField from the map; if its string value is a known key
// of byTag, it applies the corresponding function to the whole enclosing
// map. An unknown tag, or a missing/non-string tagField, is a non-match.
func FixChoice[V any](ops tree.Ops[V], tagField string, byTag map[string]func(tree.Dynamic[V]) tree.Dynamic[V]) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		m, ok := asMap(ops, in)
		if !ok {
			return typedsl.Typed[V]{}, false
		}
		tagV, present := ops.Get(m, tagField)
		if !present {
			return typedsl.Typed[V]{}, false
		}
		tag, err := ops.AsString(tagV)
		if err != nil {
			return typedsl.Typed[V]{}, false
		}
		f, known := byTag[tag]
		if !known {
			return typedsl.Typed[V]{}, false
		}
		out := f(tree.Dynamic[V]{Ops: ops, Value: m})
		return typedsl.Typed[V]{Type: t, Value: out.Value}, true
	}
}

// RenameChoice rewrites tagField's value from oldTag to newTag, matching
// only when the current value is exactly oldTag.
func RenameChoice[V any](ops tree.Ops[V], tagField, oldTag, newTag string) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		m, ok := asMap(ops, in)
		if !ok {
			return typedsl.Typed[V]{}, false
		}
		tagV, present := ops.Get(m, tagField)
		if !present {
			return typedsl.Typed[V]{}, false
		}
		tag, err := ops.AsString(tagV)
		if err != nil || tag != oldTag {
			return typedsl.Typed[V]{}, false
		}
		m2 := ops.Set(m, tagField, ops.String(newTag))
		return typedsl.Typed[V]{Type: t, Value: m2}, true
	}
}
