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

package engine

import (
	"schemaforge.dev/migrate/fix"
	"schemaforge.dev/migrate/schema"
	"schemaforge.dev/migrate/tree"
)

// Bootstrap is the host-supplied wiring point: it populates a fresh registry
// and fix catalog, and reports the version new data should be tagged with.
// New freezes whatever Bootstrap builds before handing back an Engine.
type Bootstrap[V any] struct {
	RegisterSchemas func(*schema.Registry[V])
	RegisterFixes   func(*[]*fix.Fix[V])
	CurrentVersion  func() schema.DataVersion
}

// New constructs an Engine from ops and a Bootstrap, freezing the registry
// it builds. The fix list itself is never frozen — fix order only matters
// through its registration order, read once per Update call.
func New[V any](ops tree.Ops[V], b Bootstrap[V]) *Engine[V] {
	registry := schema.NewRegistry[V]()
	if b.RegisterSchemas != nil {
		b.RegisterSchemas(registry)
	}
	registry.Freeze()

	var fixes []*fix.Fix[V]
	if b.RegisterFixes != nil {
		b.RegisterFixes(&fixes)
	}

	var current schema.DataVersion
	if b.CurrentVersion != nil {
		current = b.CurrentVersion()
	}

	return &Engine[V]{ops: ops, registry: registry, fixes: fixes, current: current}
}
