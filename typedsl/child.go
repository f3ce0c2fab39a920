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

// ChildKind distinguishes the three shapes a field inside an And can take.
type ChildKind int

const (
	// ChildRequired names a mapping entry that must be present.
	ChildRequired ChildKind = iota
	// ChildOptional names a mapping entry that may be absent, optionally
	// with a default value materialized on decode.
	ChildOptional
	// ChildRemainder captures every entry not claimed by a named sibling;
	// at most one may appear in a given And.
	ChildRemainder
)

// Child is one member of an And's field list: a name, its declared Type, and
// whether it is required, optional, or the catch-all remainder.
type Child[V any] struct {
	Kind    ChildKind
	Name    string
	Inner   Type[V]
	Default any
	hasDef  bool
}

// Field declares a required named child.
func Field[V any](name string, inner Type[V]) Child[V] {
	return Child[V]{Kind: ChildRequired, Name: name, Inner: inner}
}

// Optional declares a child that may be absent with no default, decoding to
// a nil domain value when missing.
func Optional[V any](name string, inner Type[V]) Child[V] {
	return Child[V]{Kind: ChildOptional, Name: name, Inner: inner}
}

// OptionalWithDefault declares a child that decodes to def when absent.
func OptionalWithDefault[V any](name string, inner Type[V], def any) Child[V] {
	return Child[V]{Kind: ChildOptional, Name: name, Inner: inner, Default: def, hasDef: true}
}

// RemainderChild declares the catch-all child of an And: every mapping entry
// not claimed by a sibling Field/Optional is left untouched in the decoded
// map rather than rejected, the structural counterpart of codec.MapCodec's
// fixed-field assumption. See Remainder for the standalone Type template
// form of the same idea.
func RemainderChild[V any]() Child[V] {
	return Child[V]{Kind: ChildRemainder}
}
