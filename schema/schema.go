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

package schema

import (
	"schemaforge.dev/migrate/migerr"
	"schemaforge.dev/migrate/typedsl"
)

// Schema is a flat value holding one version's type bindings plus an
// optional parent to fall back to, rather than a class in an inheritance
// hierarchy: GetType is an explicit walk up the parent chain, never virtual
// dispatch.
type Schema[V any] struct {
	version  DataVersion
	parent   *Schema[V]
	bindings map[typedsl.Ref]typedsl.Type[V]
	frozen   bool
}

// New creates an empty, unfrozen Schema at version with the given parent
// (nil for a root schema).
func New[V any](version DataVersion, parent *Schema[V]) *Schema[V] {
	return &Schema[V]{
		version:  version,
		parent:   parent,
		bindings: make(map[typedsl.Ref]typedsl.Type[V]),
	}
}

// Version reports the DataVersion this Schema was registered at.
func (s *Schema[V]) Version() DataVersion { return s.version }

// Parent returns the Schema this one inherits unbound references from, or
// nil for a root schema.
func (s *Schema[V]) Parent() *Schema[V] { return s.parent }

// Bind registers t under ref in s. Bind is typically called from a
// registerTypes hook while constructing the Schema, before Freeze; Ref
// templates built with s as their Resolver only ever call GetType lazily
// once encoding/decoding starts, so self-referential bindings are safe even
// though the map isn't fully populated yet at the moment s is handed out as
// a Resolver.
func (s *Schema[V]) Bind(ref typedsl.Ref, t typedsl.Type[V]) error {
	if s.frozen {
		return migerr.FrozenMutationf("schema %s: cannot bind %q, schema is frozen", s.version, ref)
	}
	if !ref.Valid() {
		return migerr.TypeMismatchf("schema %s: %q is not a valid TypeReference", s.version, ref)
	}
	if _, exists := s.bindings[ref]; exists {
		return migerr.DuplicateRegistrationf("schema %s: %q is already bound", s.version, ref)
	}
	s.bindings[ref] = t
	return nil
}

// Freeze marks s immutable; further Bind calls fail.
func (s *Schema[V]) Freeze() { s.frozen = true }

// Frozen reports whether Freeze has been called.
func (s *Schema[V]) Frozen() bool { return s.frozen }

// GetType resolves ref against s's own bindings, falling back to the parent
// chain when unbound locally, implementing typedsl.Resolver[V].
func (s *Schema[V]) GetType(ref typedsl.Ref) (typedsl.Type[V], error) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.bindings[ref]; ok {
			return t, nil
		}
	}
	return nil, migerr.UnresolvedTypef("type %q is not bound in schema %s or any ancestor", ref, s.version)
}

var _ typedsl.Resolver[any] = (*Schema[any])(nil)
