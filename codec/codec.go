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

// Package codec implements typed bidirectional translation between domain
// values and tree values, parameterized over any tree.Ops[V]. Codec values
// are closures-in-structs rather than one interface
// implementation per combinator — the same "typed struct wrapping
// behavior" shape the teacher uses for internal/core/adt.Expr variants,
// chosen here because Go's lack of default interface methods would
// otherwise force every combinator to re-implement Parse/EncodeStart/etc.
package codec

import (
	"schemaforge.dev/migrate/migerr"
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/tree"
)

// Codec translates between a domain value (boxed as any, since the engine
// operates on type-erased Typed values at the rule layer) and a tree value V.
type Codec[V any] struct {
	Name string

	encode func(ops tree.Ops[V], input any, prefix V) result.R[V]
	decode func(ops tree.Ops[V], input V) result.R[decoded[V]]
}

type decoded[V any] struct {
	value    any
	residual V
}

// Failing builds a Codec that always reports err, used by typedsl.RefType
// when a reference cannot be resolved against the active schema chain.
func Failing[V any](name string, err error) Codec[V] {
	return Codec[V]{
		Name: name,
		encode: func(tree.Ops[V], any, V) result.R[V] {
			return result.Err[V](err)
		},
		decode: func(tree.Ops[V], V) result.R[decoded[V]] {
			return result.Err[decoded[V]](err)
		},
	}
}

// New builds a Codec directly from an encode closure and a decode closure
// that reports its outcome as plain return values rather than a result.R, for
// callers outside this package (typedsl's And/Choice templates) that need a
// codec whose encode/decode behavior doesn't fit the Xmap/Record/primitive
// shapes above.
func New[V any](
	name string,
	encode func(ops tree.Ops[V], input any, prefix V) result.R[V],
	decode func(ops tree.Ops[V], input V) (value any, residual V, warnings []string, err error),
) Codec[V] {
	return Codec[V]{
		Name:   name,
		encode: encode,
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			v, residual, warnings, err := decode(ops, input)
			if err != nil {
				return result.Err[decoded[V]](err)
			}
			return result.OkWithWarnings(decoded[V]{value: v, residual: residual}, warnings...)
		},
	}
}

// Encode merges the encoded form of input into prefix.
func (c Codec[V]) Encode(ops tree.Ops[V], input any, prefix V) result.R[V] {
	return c.encode(ops, input, prefix)
}

// Decode returns the decoded value and the residual tree.
func (c Codec[V]) Decode(ops tree.Ops[V], input V) (result.R[any], V) {
	r := c.decode(ops, input)
	v, ok := r.Value()
	if !ok {
		var zero V
		return result.Err[any](r.Error()), zero
	}
	if r.HasWarnings() {
		return result.OkWithWarnings[any](v.value, r.Warnings()...), v.residual
	}
	return result.Ok[any](v.value), v.residual
}

// Parse decodes input and drops the residual tree.
func (c Codec[V]) Parse(ops tree.Ops[V], input V) result.R[any] {
	r, _ := c.Decode(ops, input)
	return r
}

// EncodeStart encodes a value starting from an empty prefix.
func (c Codec[V]) EncodeStart(ops tree.Ops[V], a any) result.R[V] {
	return c.Encode(ops, a, ops.Empty())
}

// ListOf lifts c to a codec over []any, each element independently encoded
// or decoded through c.
func (c Codec[V]) ListOf() Codec[V] {
	return Codec[V]{
		Name: "listOf(" + c.Name + ")",
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			items, ok := input.([]any)
			if !ok {
				return result.Err[V](migerr.CodecErrorf("listOf(%s): expected []any, got %T", c.Name, input))
			}
			encoded := make([]V, 0, len(items))
			for i, it := range items {
				r := c.EncodeStart(ops, it)
				v, ok := r.Value()
				if !ok {
					return result.Err[V](migerr.CodecErrorf("listOf(%s)[%d]: %v", c.Name, i, r.Error()))
				}
				encoded = append(encoded, v)
			}
			// A bare list codec ignores prefix: like every non-field
			// primitive codec, it is only ever merged into a map by a
			// MapCodec wrapper (FieldOf), which handles the merge itself.
			return result.Ok(ops.CreateList(encoded))
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			raw, err := ops.ListStream(input)
			if err != nil {
				return result.Err[decoded[V]](migerr.TypeMismatchf("listOf(%s): %v", c.Name, err))
			}
			out := make([]any, 0, len(raw))
			var warnings []string
			for i, item := range raw {
				r := c.Parse(ops, item)
				v, ok := r.Value()
				if !ok {
					// Some elements decode, some don't; record as a warning and
					// drop the element, rather than aborting the whole list.
					warnings = append(warnings, migerr.New(migerr.PartialDecode,
						"listOf(%s)[%d]: %v", c.Name, i, r.Error()).Error())
					continue
				}
				warnings = append(warnings, r.Warnings()...)
				out = append(out, v)
			}
			return result.OkWithWarnings(decoded[V]{value: out, residual: ops.Empty()}, warnings...)
		},
	}
}

// OptionalOf lifts c to a codec that tolerates a null/empty input by
// decoding it to a nil domain value, and encodes a nil input as the
// unchanged prefix; see OptionalFieldOf for the MapCodec-level field variant
// used in records.
func (c Codec[V]) OptionalOf() Codec[V] {
	return Codec[V]{
		Name: "optionalOf(" + c.Name + ")",
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			if input == nil {
				return result.Ok(prefix)
			}
			return c.Encode(ops, input, prefix)
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			if ops.IsNull(input) {
				return result.Ok(decoded[V]{value: nil, residual: input})
			}
			return c.decode(ops, input)
		},
	}
}

// Xmap builds a new codec over domain type B from c (domain type A) given a
// pair of pure conversion functions.
func Xmap[V any](c Codec[V], toB func(any) any, toA func(any) any) Codec[V] {
	return Codec[V]{
		Name: "xmap(" + c.Name + ")",
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			return c.encode(ops, toA(input), prefix)
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			r := c.decode(ops, input)
			return result.Map(r, func(d decoded[V]) decoded[V] {
				return decoded[V]{value: toB(d.value), residual: d.residual}
			})
		},
	}
}

// FlatXmap is the error-producing variant of Xmap: both conversions may
// fail.
func FlatXmap[V any](c Codec[V], toB func(any) (any, error), toA func(any) (any, error)) Codec[V] {
	return Codec[V]{
		Name: "flatXmap(" + c.Name + ")",
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			a, err := toA(input)
			if err != nil {
				return result.Err[V](migerr.CodecErrorf("flatXmap(%s): %v", c.Name, err))
			}
			return c.encode(ops, a, prefix)
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			r := c.decode(ops, input)
			v, ok := r.Value()
			if !ok {
				return result.Err[decoded[V]](r.Error())
			}
			b, err := toB(v.value)
			if err != nil {
				return result.Err[decoded[V]](migerr.CodecErrorf("flatXmap(%s): %v", c.Name, err))
			}
			return result.OkWithWarnings(decoded[V]{value: b, residual: v.residual}, r.Warnings()...)
		},
	}
}
