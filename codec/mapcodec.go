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

package codec

import (
	"schemaforge.dev/migrate/migerr"
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/tree"
)

// MapCodec is a codec variant that reads/writes into an existing mapping
// rather than producing a standalone value.
type MapCodec[V any] struct {
	Name string

	encodeInto func(ops tree.Ops[V], a any, m V) result.R[V]
	decodeFrom func(ops tree.Ops[V], m V) result.R[any]
}

// Encode merges a into m.
func (mc MapCodec[V]) Encode(ops tree.Ops[V], a any, m V) result.R[V] {
	return mc.encodeInto(ops, a, m)
}

// Decode reads the field(s) mc is responsible for out of m.
func (mc MapCodec[V]) Decode(ops tree.Ops[V], m V) result.R[any] {
	return mc.decodeFrom(ops, m)
}

// Codec converts mc to a standalone Codec by wrapping it in a fresh empty
// map.
func (mc MapCodec[V]) Codec() Codec[V] {
	return Codec[V]{
		Name: mc.Name,
		encode: func(ops tree.Ops[V], a any, prefix V) result.R[V] {
			return mc.encodeInto(ops, a, ops.EmptyMap())
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			r := mc.decodeFrom(ops, input)
			return result.Map(r, func(a any) decoded[V] {
				return decoded[V]{value: a, residual: ops.Empty()}
			})
		},
	}
}

// FieldOf builds a MapCodec that reads/writes c's value under a required
// mapping entry named name.
func (c Codec[V]) FieldOf(name string) MapCodec[V] {
	return MapCodec[V]{
		Name: name,
		encodeInto: func(ops tree.Ops[V], a any, m V) result.R[V] {
			r := c.EncodeStart(ops, a)
			v, ok := r.Value()
			if !ok {
				return result.Err[V](migerr.CodecErrorf("field %q: %v", name, r.Error()))
			}
			return result.Ok(ops.Set(m, name, v))
		},
		decodeFrom: func(ops tree.Ops[V], m V) result.R[any] {
			v, ok := ops.Get(m, name)
			if !ok {
				return result.Err[any](migerr.FieldMissingf("field %q is missing", name))
			}
			return c.Parse(ops, v)
		},
	}
}

// OptionalFieldOf builds a MapCodec for a mapping entry that may be absent;
// when absent, the decoded domain value is nil, and nothing is re-emitted
// on encode if the in-memory value is nil.
func (c Codec[V]) OptionalFieldOf(name string) MapCodec[V] {
	return MapCodec[V]{
		Name: name,
		encodeInto: func(ops tree.Ops[V], a any, m V) result.R[V] {
			if a == nil {
				return result.Ok(m)
			}
			r := c.EncodeStart(ops, a)
			v, ok := r.Value()
			if !ok {
				return result.Err[V](migerr.CodecErrorf("optional field %q: %v", name, r.Error()))
			}
			return result.Ok(ops.Set(m, name, v))
		},
		decodeFrom: func(ops tree.Ops[V], m V) result.R[any] {
			v, ok := ops.Get(m, name)
			if !ok {
				return result.Ok[any](nil)
			}
			return c.Parse(ops, v)
		},
	}
}

// OptionalFieldOfWithDefault builds a MapCodec for a mapping entry that may
// be absent, supplying def on read. The default is re-emitted on encode even
// when the in-memory value already equals it.
func (c Codec[V]) OptionalFieldOfWithDefault(name string, def any) MapCodec[V] {
	return MapCodec[V]{
		Name: name,
		encodeInto: func(ops tree.Ops[V], a any, m V) result.R[V] {
			if a == nil {
				a = def
			}
			r := c.EncodeStart(ops, a)
			v, ok := r.Value()
			if !ok {
				return result.Err[V](migerr.CodecErrorf("optional field %q: %v", name, r.Error()))
			}
			return result.Ok(ops.Set(m, name, v))
		},
		decodeFrom: func(ops tree.Ops[V], m V) result.R[any] {
			v, ok := ops.Get(m, name)
			if !ok {
				return result.Ok(def)
			}
			return c.Parse(ops, v)
		},
	}
}
