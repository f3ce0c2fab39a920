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
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/tree"
)

// Field pairs a MapCodec with the getter that extracts its value from a
// constructed record O, for use with Record below.
type Field[V any] struct {
	Codec  MapCodec[V]
	Getter func(o any) any
}

// Record builds a Codec[V] for a product type from a group of
// (MapCodec, getter) pairs and a constructor: rather than N bespoke
// Builder1..Builder16 classes, this is a homogeneous slice of
// MapCodec<dyn> paired with a fn(Vec<dyn>) -> O constructor, so arity 1 and
// arity 16 are both just a longer fields slice.
//
// Encoding threads the partial map left-to-right, short-circuiting on the
// first field encode error. Decoding decodes every field against the same
// input map and combines all of them: if any field fails, errors aggregate
// into a single failure; the record is only constructed if every field
// succeeds.
func Record[V any](ctor func(values []any) (any, error), fields ...Field[V]) Codec[V] {
	return Codec[V]{
		Name: "record",
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			m := prefix
			for _, f := range fields {
				v := f.Getter(input)
				r := f.Codec.Encode(ops, v, m)
				next, ok := r.Value()
				if !ok {
					return result.Err[V](r.Error())
				}
				m = next
			}
			return result.Ok(m)
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			values := make([]any, len(fields))
			var errs []error
			var warnings []string
			for i, f := range fields {
				r := f.Codec.Decode(ops, input)
				v, ok := r.Value()
				if !ok {
					errs = append(errs, r.Error())
					continue
				}
				warnings = append(warnings, r.Warnings()...)
				values[i] = v
			}
			if len(errs) > 0 {
				return result.Err[decoded[V]](aggregate(errs))
			}
			rec, err := ctor(values)
			if err != nil {
				return result.Err[decoded[V]](err)
			}
			return result.OkWithWarnings(decoded[V]{value: rec, residual: ops.Empty()}, warnings...)
		},
	}
}

func aggregate(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := "multiple field errors:"
	for _, e := range errs {
		msg += " " + e.Error() + ";"
	}
	return &multiError{msg: msg, causes: errs}
}

type multiError struct {
	msg    string
	causes []error
}

func (e *multiError) Error() string { return e.msg }

// Unwrap supports errors.Is/As across the aggregated causes.
func (e *multiError) Unwrap() []error { return e.causes }
