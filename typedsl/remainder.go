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
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/tree"
)

// remainderType is the standalone Remainder template: an identity codec over
// whatever tree value it's given. In practice every Remainder in this module
// is declared as a RemainderChild inside an And, where the surrounding
// record's own domain-value-is-the-map representation already carries
// unclaimed entries through untouched; this standalone form exists so a
// Remainder can still be named and bound like any other template (passed to
// Bind, appear alone in a Schema) rather than being only expressible as an
// And's child list entry.
type remainderType[V any] struct{}

// Remainder builds the standalone Remainder template: decoding and encoding
// both pass the tree value through unchanged.
func Remainder[V any]() Type[V] {
	return remainderType[V]{}
}

func (remainderType[V]) Reference() Ref { return "" }

func (remainderType[V]) Codec() codec.Codec[V] {
	return codec.New[V]("remainder",
		func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			v, ok := input.(V)
			if !ok {
				return result.Ok(prefix)
			}
			merged, err := ops.MergeToMap(prefix, v)
			if err != nil {
				// Not map-shaped input (e.g. a bare scalar remainder); fall
				// back to returning it as-is rather than failing the whole
				// surrounding And.
				return result.Ok(v)
			}
			return result.Ok(merged)
		},
		func(ops tree.Ops[V], input V) (any, V, []string, error) {
			return input, ops.Empty(), nil, nil
		},
	)
}
