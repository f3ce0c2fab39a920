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
	"sort"

	"schemaforge.dev/migrate/migerr"
)

// Registry holds every Schema a migration engine knows about, ordered by
// DataVersion. It is built up by Register calls, then Freeze is called once
// before the engine starts serving requests; Register after Freeze fails.
type Registry[V any] struct {
	entries []*Schema[V]
	frozen  bool
}

// NewRegistry creates an empty Registry.
func NewRegistry[V any]() *Registry[V] {
	return &Registry[V]{}
}

// Register inserts s in version order. Two schemas at the same DataVersion,
// or any Register call after Freeze, fail.
func (r *Registry[V]) Register(s *Schema[V]) error {
	if r.frozen {
		return migerr.FrozenMutationf("registry: cannot register schema %s, registry is frozen", s.version)
	}
	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].version.Compare(s.version) >= 0
	})
	if i < len(r.entries) && r.entries[i].version.Compare(s.version) == 0 {
		return migerr.DuplicateRegistrationf("registry: schema %s is already registered", s.version)
	}
	r.entries = append(r.entries, nil)
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = s
	return nil
}

// Freeze marks the registry and every registered Schema immutable.
func (r *Registry[V]) Freeze() {
	r.frozen = true
	for _, s := range r.entries {
		s.Freeze()
	}
}

// Frozen reports whether Freeze has been called.
func (r *Registry[V]) Frozen() bool { return r.frozen }

// Versions returns every registered DataVersion, ascending.
func (r *Registry[V]) Versions() []DataVersion {
	out := make([]DataVersion, len(r.entries))
	for i, s := range r.entries {
		out[i] = s.version
	}
	return out
}

// SchemaFor implements the nearest-version-at-or-below lookup policy: the
// Schema with the greatest DataVersion not exceeding v, or (nil, false) if
// every registered version is strictly above v.
func (r *Registry[V]) SchemaFor(v DataVersion) (*Schema[V], bool) {
	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].version.Compare(v) > 0
	})
	if i == 0 {
		return nil, false
	}
	return r.entries[i-1], true
}

// Latest returns the highest-versioned registered Schema, or (nil, false) if
// the registry is empty.
func (r *Registry[V]) Latest() (*Schema[V], bool) {
	if len(r.entries) == 0 {
		return nil, false
	}
	return r.entries[len(r.entries)-1], true
}
