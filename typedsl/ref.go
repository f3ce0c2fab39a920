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
	"schemaforge.dev/migrate/codec"
	"schemaforge.dev/migrate/migerr"
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/tree"
)

// refType is the Ref template: a forward reference to another logical type,
// resolved against resolver at the moment a value actually needs encoding or
// decoding rather than at construction time. This lets two types refer to
// each other (a recursive or mutually-referential shape) without either one
// needing the other to exist yet when it is built — resolver is typically
// the very Schema whose registerTypes hook is constructing this Ref.
type refType[V any] struct {
	target   Ref
	resolver Resolver[V]
}

// RefType builds a late-bound reference to target, resolved through
// resolver each time the resulting Type's Codec is exercised.
func RefType[V any](target Ref, resolver Resolver[V]) Type[V] {
	return refType[V]{target: target, resolver: resolver}
}

func (t refType[V]) Reference() Ref { return t.target }

func (t refType[V]) Codec() codec.Codec[V] {
	return codec.New[V]("ref("+string(t.target)+")",
		func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			resolved, err := t.resolver.GetType(t.target)
			if err != nil {
				return codec.Failing[V](t.target.String(), migerr.UnresolvedTypef(
					"ref %q: %v", t.target, err)).Encode(ops, input, prefix)
			}
			return resolved.Codec().Encode(ops, input, prefix)
		},
		func(ops tree.Ops[V], input V) (any, V, []string, error) {
			var zero V
			resolved, err := t.resolver.GetType(t.target)
			if err != nil {
				return nil, zero, nil, migerr.UnresolvedTypef("ref %q: %v", t.target, err)
			}
			r, residual := resolved.Codec().Decode(ops, input)
			v, ok := r.Value()
			if !ok {
				return nil, zero, nil, r.Error()
			}
			return v, residual, r.Warnings(), nil
		},
	)
}

// String renders a Ref for diagnostics and error messages.
func (r Ref) String() string { return string(r) }
