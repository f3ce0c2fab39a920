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

// Package typedsl implements the structural type templates of spec.md §3:
// Primitive, Field, Optional, List, And, Choice, Ref and Remainder. Each
// template is its own small Go file implementing the shared Type[V]
// interface and building its own codec.Codec[V] from its children's
// codecs, the same one-file-per-variant shape the teacher uses for every
// expression kind in internal/core/adt (StructLit, ListLit, BinaryExpr,
// ...) implementing the shared Expr/Value interfaces.
package typedsl

import (
	"regexp"

	"schemaforge.dev/migrate/codec"
)

// Ref is a TypeReference: a globally unique, stable, lowercase dotted
// string naming a logical type (spec.md §3).
type Ref string

var refPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(\.[a-z][a-z0-9]*)*$`)

// Valid reports whether r is a well-formed TypeReference.
func (r Ref) Valid() bool { return refPattern.MatchString(string(r)) }

// Type is the common interface every structural template implements
// (spec.md §3 "Type template"). Reference identifies which logical type a
// Type value was bound to by a Schema — spec.md §4.3's ifType gate compares
// this, not object identity. The templates in this package report an empty
// Reference (RefType reports its target); a Reference is attached only by
// wrapping a template with Bind below. schema.Schema.Bind stores the
// template it is given as is and does not wrap it.
type Type[V any] interface {
	Reference() Ref
	Codec() codec.Codec[V]
}

// Typed is the (Type<A>, A) pair of spec.md §3: a domain value produced by
// decoding, bundled with the static Type that produced it. For the
// migration-facing templates in this package (And, Choice), the domain
// value A is, by design, the tree value V itself — decoding validates and
// fills in defaults but does not project the mapping into a separate Go
// struct, so field-level rules (rule.RenameField and friends) can keep
// addressing fields by name directly through tree.Ops, exactly as the
// worked examples in spec.md §8 do. For leaf Primitive/List/Optional
// templates used as Field children, A is the natural Go scalar/slice.
type Typed[V any] struct {
	Type  Type[V]
	Value any
}

// schemaBound decorates an inner Type with an explicit Reference. It is
// built by Bind below, not by schema.Schema (spec.md §4.4:
// "Schema is constructed with ... a registerTypes() hook that binds
// TypeReference → Type").
type schemaBound[V any] struct {
	ref   Ref
	inner Type[V]
}

func (b schemaBound[V]) Reference() Ref        { return b.ref }
func (b schemaBound[V]) Codec() codec.Codec[V] { return b.inner.Codec() }

// Bind attaches ref to t, the Go rendering of a Schema binding a
// TypeReference to a Type template.
func Bind[V any](ref Ref, t Type[V]) Type[V] {
	return schemaBound[V]{ref: ref, inner: t}
}

// Resolver is the minimal surface RefType needs from a Schema to resolve a
// late-bound reference (spec.md §3 Ref invariant). schema.Schema[V]
// implements this interface structurally; typedsl does not import schema,
// which would otherwise create an import cycle (schema imports typedsl for
// Type[V]).
type Resolver[V any] interface {
	GetType(ref Ref) (Type[V], error)
}

