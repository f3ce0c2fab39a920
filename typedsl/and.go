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
	"errors"
	"fmt"

	"schemaforge.dev/migrate/codec"
	"schemaforge.dev/migrate/migerr"
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/tree"
)

// andType is the And template: a record whose decoded domain value is the
// tree mapping itself, not a projected Go struct. Decoding validates every
// named child against its own Type and fills in defaults for absent
// Optional children; any entry not claimed by a named child is carried
// through untouched, which is what lets a Remainder child (and field-level
// rules operating directly on the map) see the whole picture.
type andType[V any] struct {
	children []Child[V]
}

// And builds a structural record from a set of named children plus at most
// one Remainder. Order is insignificant; lookups are by name.
func And[V any](children ...Child[V]) Type[V] {
	remainders := 0
	for _, c := range children {
		if c.Kind == ChildRemainder {
			remainders++
		}
	}
	if remainders > 1 {
		panic("typedsl.And: at most one Remainder child is allowed")
	}
	return andType[V]{children: children}
}

func (t andType[V]) Reference() Ref { return "" }

func (t andType[V]) Codec() codec.Codec[V] {
	return codec.New[V]("and",
		func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			m, ok := input.(V)
			if !ok {
				return result.Err[V](migerr.TypeMismatchf("and: expected a map value, got %T", input))
			}
			out := m
			var errs []error
			for _, c := range t.children {
				if c.Kind == ChildRemainder {
					continue
				}
				raw, present := ops.Get(m, c.Name)
				switch {
				case present:
					if r := c.Inner.Codec().Parse(ops, raw); r.IsErr() {
						errs = append(errs, fmt.Errorf("field %q: %w", c.Name, r.Error()))
					}
				case c.Kind == ChildRequired:
					errs = append(errs, migerr.FieldMissingf("field %q is missing", c.Name))
				case c.hasDef:
					er := c.Inner.Codec().EncodeStart(ops, c.Default)
					v, ok := er.Value()
					if !ok {
						errs = append(errs, fmt.Errorf("field %q default: %w", c.Name, er.Error()))
						continue
					}
					out = ops.Set(out, c.Name, v)
				}
			}
			if len(errs) > 0 {
				return result.Err[V](errors.Join(errs...))
			}
			return mergeIntoPrefix(ops, prefix, out)
		},
		func(ops tree.Ops[V], input V) (any, V, []string, error) {
			var zero V
			if !ops.IsMap(input) {
				return nil, zero, nil, migerr.TypeMismatchf("and: expected a map value")
			}
			out := input
			var errs []error
			var warnings []string
			for _, c := range t.children {
				if c.Kind == ChildRemainder {
					continue
				}
				raw, present := ops.Get(input, c.Name)
				switch {
				case present:
					r := c.Inner.Codec().Parse(ops, raw)
					if r.IsErr() {
						errs = append(errs, fmt.Errorf("field %q: %w", c.Name, r.Error()))
						continue
					}
					warnings = append(warnings, r.Warnings()...)
				case c.Kind == ChildRequired:
					errs = append(errs, migerr.FieldMissingf("field %q is missing", c.Name))
				case c.hasDef:
					er := c.Inner.Codec().EncodeStart(ops, c.Default)
					v, ok := er.Value()
					if !ok {
						errs = append(errs, fmt.Errorf("field %q default: %w", c.Name, er.Error()))
						continue
					}
					out = ops.Set(out, c.Name, v)
				}
			}
			if len(errs) > 0 {
				return nil, zero, nil, errors.Join(errs...)
			}
			return out, ops.Empty(), warnings, nil
		},
	)
}
