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
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/encoding/unicode"

	"schemaforge.dev/migrate/migerr"
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/tree"
)

// validateUTF8 rejects ill-formed UTF-8 by round-tripping s through a
// UTF-8 encoder, the same check the teacher runs converting a Go string
// into a string value (internal/core/convert.go): a payload field decoded
// off an untrusted byte source can carry invalid UTF-8 that both
// encoding/json and most YAML/TOML libraries pass through uncomplaining.
func validateUTF8(s string) error {
	if _, err := unicode.UTF8.NewEncoder().String(s); err != nil {
		return migerr.TypeMismatchf("string: invalid UTF-8: %v", err)
	}
	return nil
}

func primitive[V any, T any](
	name string,
	build func(tree.Ops[V], T) V,
	read func(tree.Ops[V], V) (T, error),
) Codec[V] {
	return Codec[V]{
		Name: name,
		encode: func(ops tree.Ops[V], input any, _ V) result.R[V] {
			t, ok := input.(T)
			if !ok {
				return result.Err[V](migerr.TypeMismatchf("%s: expected %T, got %T", name, t, input))
			}
			return result.Ok(build(ops, t))
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			t, err := read(ops, input)
			if err != nil {
				return result.Err[decoded[V]](migerr.TypeMismatchf("%s: %v", name, err))
			}
			return result.Ok(decoded[V]{value: t, residual: ops.Empty()})
		},
	}
}

// BOOL is the primitive codec for bool.
func BOOL[V any]() Codec[V] {
	return primitive[V, bool]("BOOL",
		func(o tree.Ops[V], b bool) V { return o.Bool(b) },
		func(o tree.Ops[V], v V) (bool, error) { return o.AsBool(v) })
}

// I8 is the primitive codec for int8.
func I8[V any]() Codec[V] {
	return primitive[V, int8]("I8",
		func(o tree.Ops[V], n int8) V { return o.Int8(n) },
		func(o tree.Ops[V], v V) (int8, error) {
			n, err := o.AsNumber(v)
			return int8(n), err
		})
}

// I16 is the primitive codec for int16.
func I16[V any]() Codec[V] {
	return primitive[V, int16]("I16",
		func(o tree.Ops[V], n int16) V { return o.Int16(n) },
		func(o tree.Ops[V], v V) (int16, error) {
			n, err := o.AsNumber(v)
			return int16(n), err
		})
}

// I32 is the primitive codec for int32.
func I32[V any]() Codec[V] {
	return primitive[V, int32]("I32",
		func(o tree.Ops[V], n int32) V { return o.Int32(n) },
		func(o tree.Ops[V], v V) (int32, error) {
			n, err := o.AsNumber(v)
			return int32(n), err
		})
}

// I64 is the primitive codec for int64.
func I64[V any]() Codec[V] {
	return primitive[V, int64]("I64",
		func(o tree.Ops[V], n int64) V { return o.Int64(n) },
		func(o tree.Ops[V], v V) (int64, error) {
			n, err := o.AsNumber(v)
			return int64(n), err
		})
}

// F32 is the primitive codec for float32.
func F32[V any]() Codec[V] {
	return primitive[V, float32]("F32",
		func(o tree.Ops[V], n float32) V { return o.Float32(n) },
		func(o tree.Ops[V], v V) (float32, error) {
			n, err := o.AsNumber(v)
			return float32(n), err
		})
}

// F64 is the primitive codec for float64.
func F64[V any]() Codec[V] {
	return primitive[V, float64]("F64",
		func(o tree.Ops[V], n float64) V { return o.Float64(n) },
		func(o tree.Ops[V], v V) (float64, error) { return o.AsNumber(v) })
}

// STRING is the primitive codec for string. Both directions reject
// ill-formed UTF-8, since a tagged payload can arrive from a source
// (TOML/YAML text, a foreign JSON emitter) that never validated it.
func STRING[V any]() Codec[V] {
	return Codec[V]{
		Name: "STRING",
		encode: func(ops tree.Ops[V], input any, _ V) result.R[V] {
			s, ok := input.(string)
			if !ok {
				return result.Err[V](migerr.TypeMismatchf("STRING: expected string, got %T", input))
			}
			if err := validateUTF8(s); err != nil {
				return result.Err[V](err)
			}
			return result.Ok(ops.String(s))
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			s, err := ops.AsString(input)
			if err != nil {
				return result.Err[decoded[V]](migerr.TypeMismatchf("STRING: %v", err))
			}
			if err := validateUTF8(s); err != nil {
				return result.Err[decoded[V]](err)
			}
			return result.Ok(decoded[V]{value: s, residual: ops.Empty()})
		},
	}
}

// NonEmptyString rejects the empty string on both encode and decode, on top
// of STRING's own UTF-8 validation ("every bounded codec validates on both
// encode and decode").
func NonEmptyString[V any]() Codec[V] {
	base := STRING[V]()
	return Codec[V]{
		Name: "nonEmptyString",
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			if s, ok := input.(string); ok && s == "" {
				return result.Err[V](migerr.RangeViolationf("nonEmptyString: empty string"))
			}
			return base.encode(ops, input, prefix)
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			r := base.decode(ops, input)
			v, ok := r.Value()
			if ok {
				if s, _ := v.value.(string); s == "" {
					return result.Err[decoded[V]](migerr.RangeViolationf("nonEmptyString: empty string"))
				}
			}
			return r
		},
	}
}

// IntRange is the bounded integer codec over int64 values: both encode and
// decode reject values outside [min, max]. The bound check is a plain int64
// comparison made after the value has been read as an int64, so a
// fractional input is truncated toward zero before it is checked (150.5
// passes intRange(0, 150) as 150); apd.Decimal is used only by the float
// codecs below.
func IntRange[V any](min, max int64) Codec[V] {
	base := I64[V]()
	check := func(n int64) error {
		if n < min || n > max {
			return migerr.RangeViolationf("Value %d outside of range [%d, %d]", n, min, max)
		}
		return nil
	}
	return Codec[V]{
		Name: "intRange",
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			n, ok := asInt64(input)
			if !ok {
				return result.Err[V](migerr.TypeMismatchf("intRange: expected integer, got %T", input))
			}
			if err := check(n); err != nil {
				return result.Err[V](err)
			}
			return base.encode(ops, n, prefix)
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			r := base.decode(ops, input)
			v, ok := r.Value()
			if !ok {
				return r
			}
			n := v.value.(int64)
			if err := check(n); err != nil {
				return result.Err[decoded[V]](err)
			}
			return r
		},
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// FloatRange is the bounded codec for float32 bounds; like DoubleRange it
// reads and decodes values as float64.
func FloatRange[V any](min, max float32) Codec[V] {
	return boundedFloat[V](float64(min), float64(max), "floatRange")
}

// DoubleRange is the bounded float64 codec.
func DoubleRange[V any](min, max float64) Codec[V] {
	return boundedFloat[V](min, max, "doubleRange")
}

func boundedFloat[V any](min, max float64, name string) Codec[V] {
	base := F64[V]()
	dmin := new(apd.Decimal)
	_, _ = dmin.SetFloat64(min)
	dmax := new(apd.Decimal)
	_, _ = dmax.SetFloat64(max)
	check := func(f float64) error {
		d := new(apd.Decimal)
		_, _ = d.SetFloat64(f)
		if d.Cmp(dmin) < 0 || d.Cmp(dmax) > 0 {
			return migerr.RangeViolationf("Value %v outside of range [%v, %v]", f, min, max)
		}
		return nil
	}
	return Codec[V]{
		Name: name,
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			f, ok := asFloat64(input)
			if !ok {
				return result.Err[V](migerr.TypeMismatchf("%s: expected number, got %T", name, input))
			}
			if err := check(f); err != nil {
				return result.Err[V](err)
			}
			return base.encode(ops, f, prefix)
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			r := base.decode(ops, input)
			v, ok := r.Value()
			if !ok {
				return r
			}
			f := v.value.(float64)
			if err := check(f); err != nil {
				return result.Err[decoded[V]](err)
			}
			return r
		},
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Either decodes/encodes as the left codec if it succeeds, else the right.
func Either[V any](left, right Codec[V]) Codec[V] {
	return Codec[V]{
		Name: "either(" + left.Name + "," + right.Name + ")",
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			r := left.encode(ops, input, prefix)
			if r.IsOk() {
				return r
			}
			return right.encode(ops, input, prefix)
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			r := left.decode(ops, input)
			if r.IsOk() {
				return r
			}
			return right.decode(ops, input)
		},
	}
}

// Pair combines two codecs into one over a (A, B) tuple, encoded as a
// two-element list.
func Pair[V any](a, b Codec[V]) Codec[V] {
	return Codec[V]{
		Name: "pair(" + a.Name + "," + b.Name + ")",
		encode: func(ops tree.Ops[V], input any, prefix V) result.R[V] {
			p, ok := input.(PairValue)
			if !ok {
				return result.Err[V](migerr.TypeMismatchf("pair: expected PairValue, got %T", input))
			}
			av := a.EncodeStart(ops, p.First)
			bv := b.EncodeStart(ops, p.Second)
			return result.Apply2(av, bv, func(x, y V) V {
				return ops.CreateList([]V{x, y})
			})
		},
		decode: func(ops tree.Ops[V], input V) result.R[decoded[V]] {
			items, err := ops.ListStream(input)
			if err != nil || len(items) != 2 {
				return result.Err[decoded[V]](migerr.TypeMismatchf("pair: expected a 2-element list"))
			}
			ar := a.Parse(ops, items[0])
			br := b.Parse(ops, items[1])
			return result.Apply2(ar, br, func(x, y any) decoded[V] {
				return decoded[V]{value: PairValue{First: x, Second: y}, residual: ops.Empty()}
			})
		},
	}
}

// PairValue is the domain representation for Pair-codec'd values.
type PairValue struct {
	First  any
	Second any
}
