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

import "schemaforge.dev/migrate/codec"

// listType is the List template: a homogeneous sequence of elem, decoded to
// a []any of elem's own domain representation.
type listType[V any] struct {
	elem Type[V]
}

// List builds a homogeneous list template over elem.
func List[V any](elem Type[V]) Type[V] {
	return listType[V]{elem: elem}
}

func (t listType[V]) Reference() Ref        { return "" }
func (t listType[V]) Codec() codec.Codec[V] { return t.elem.Codec().ListOf() }
