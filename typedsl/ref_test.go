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
	"fmt"
	"testing"

	"schemaforge.dev/migrate/tree/nativetree"
)

// mapResolver is a bare-bones Resolver for tests that don't need a full
// schema.Schema.
type mapResolver[V any] map[Ref]Type[V]

func (m mapResolver[V]) GetType(ref Ref) (Type[V], error) {
	t, ok := m[ref]
	if !ok {
		return nil, fmt.Errorf("no such type: %s", ref)
	}
	return t, nil
}

func TestRefTypeResolvesLazily(t *testing.T) {
	ops := nativetree.New()
	resolver := mapResolver[any]{}
	ref := RefType[any]("player", resolver)
	// The target isn't registered yet at construction time.
	resolver["player"] = And[any](Field[any]("name", String[any]()))

	in := nativetree.M("name", "Steve")
	decoded := ref.Codec().Parse(ops, in)
	if !decoded.IsOk() {
		t.Fatalf("Parse: %v", decoded.Error())
	}
}

func TestRefTypeUnresolvedFails(t *testing.T) {
	ops := nativetree.New()
	resolver := mapResolver[any]{}
	ref := RefType[any]("ghost", resolver)
	decoded := ref.Codec().Parse(ops, nativetree.M())
	if decoded.IsOk() {
		t.Fatalf("resolving an unregistered ref should fail")
	}
}

func TestRefTypeReferenceIsTarget(t *testing.T) {
	resolver := mapResolver[any]{}
	ref := RefType[any]("player", resolver)
	if ref.Reference() != "player" {
		t.Fatalf("Reference() = %q, want %q", ref.Reference(), "player")
	}
}
