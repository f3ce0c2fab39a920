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

// leaf wraps a ready-made scalar codec as a Type with no inherent Reference.
type leaf[V any] struct {
	c codec.Codec[V]
}

func (l leaf[V]) Reference() Ref        { return "" }
func (l leaf[V]) Codec() codec.Codec[V] { return l.c }

// Bool is the Primitive bool template.
func Bool[V any]() Type[V] { return leaf[V]{c: codec.BOOL[V]()} }

// I8 is the Primitive i8 template.
func I8[V any]() Type[V] { return leaf[V]{c: codec.I8[V]()} }

// I16 is the Primitive i16 template.
func I16[V any]() Type[V] { return leaf[V]{c: codec.I16[V]()} }

// I32 is the Primitive i32 template.
func I32[V any]() Type[V] { return leaf[V]{c: codec.I32[V]()} }

// I64 is the Primitive i64 template.
func I64[V any]() Type[V] { return leaf[V]{c: codec.I64[V]()} }

// F32 is the Primitive f32 template.
func F32[V any]() Type[V] { return leaf[V]{c: codec.F32[V]()} }

// F64 is the Primitive f64 template.
func F64[V any]() Type[V] { return leaf[V]{c: codec.F64[V]()} }

// String is the Primitive string template.
func String[V any]() Type[V] { return leaf[V]{c: codec.STRING[V]()} }

// Empty is the Primitive empty template: it always decodes to nil and
// encodes nil/anything to ops.Empty().
func Empty[V any]() Type[V] {
	return leaf[V]{c: emptyCodec[V]()}
}

func emptyCodec[V any]() codec.Codec[V] {
	// Empty has no useful domain representation: encode ignores input and
	// returns ops.Empty(), decode always succeeds with a nil domain value.
	return codec.New[V]("empty",
		func(ops tree.Ops[V], _ any, _ V) result.R[V] { return result.Ok(ops.Empty()) },
		func(ops tree.Ops[V], _ V) (any, V, []string, error) { return nil, ops.Empty(), nil, nil },
	)
}
