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

package typedsl

import (
	"fmt"

	"schemaforge.dev/migrate/codec"
	"schemaforge.dev/migrate/migerr"
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/tree"
)

// Variant is one tagged alternative of a Choice.
type Variant[V any] struct {
	Tag   string
	Inner Type[V]
}

// choiceType is the Choice template: a tagged union dispatched on the string
// value of tagField. Like And, the decoded domain value is the tree mapping
// itself. A tag value with no matching Variant is not an error: the map is
// passed through untouched, so a schema that only knows some of the tags a
// producer might emit (the common case immediately before a RenameChoice fix
// runs) doesn't reject data it hasn't been taught to route yet.
type choiceType[V any] struct {
	tagField string
	variants []Variant[V]
}

// Choice builds a tagged union keyed on the string value of tagField.
func Choice[V any](tagField string, variants ...Variant[V]) Type[V] {
	return choiceType[V]{tagField: tagField, variants: variants}
}

func (t choiceType[V]) Reference() Ref { return "" }

func (t choiceType[V]) find(tag string) (Variant[V], bool) {
	for _, v := range t.variants {
		if v.Tag == tag {
			return v, true
		}
	}
	return Variant[V]{}, false
}

func (t choiceType[V]) Codec() codec.Codec[V] {
	return codec.New[V]("choice",
		func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			m, ok := input.(V)
			if !ok {
				return result.Err[V](migerr.TypeMismatchf("choice: expected a map value, got %T", input))
			}
			tagRaw, present := ops.Get(m, t.tagField)
			if !present {
				return result.Err[V](migerr.FieldMissingf("choice: tag field %q is missing", t.tagField))
			}
			tag, err := ops.AsString(tagRaw)
			if err != nil {
				return result.Err[V](migerr.TypeMismatchf("choice: tag field %q: %v", t.tagField, err))
			}
			if variant, found := t.find(tag); found {
				if r := variant.Inner.Codec().Parse(ops, m); r.IsErr() {
					return result.Err[V](fmt.Errorf("choice %q: %w", tag, r.Error()))
				}
			}
			return mergeIntoPrefix(ops, prefix, m)
		},
		func(ops tree.Ops[V], input V) (any, V, []string, error) {
			var zero V
			if !ops.IsMap(input) {
				return nil, zero, nil, migerr.TypeMismatchf("choice: expected a map value")
			}
			tagRaw, present := ops.Get(input, t.tagField)
			if !present {
				return nil, zero, nil, migerr.FieldMissingf("choice: tag field %q is missing", t.tagField)
			}
			tag, err := ops.AsString(tagRaw)
			if err != nil {
				return nil, zero, nil, migerr.TypeMismatchf("choice: tag field %q: %v", t.tagField, err)
			}
			variant, found := t.find(tag)
			if !found {
				// Unresolved tag: pass through, this is not UnresolvedType —
				// that kind is reserved for an unresolved Ref, not an unknown
				// Choice tag.
				return input, ops.Empty(), nil, nil
			}
			r := variant.Inner.Codec().Parse(ops, input)
			v, ok := r.Value()
			if !ok {
				return nil, zero, nil, fmt.Errorf("choice %q: %w", tag, r.Error())
			}
			return v, ops.Empty(), r.Warnings(), nil
		},
	)
}
