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

// Package fix provides high-level, named migration steps: the catalog an
// engine plans and applies, each closing over the rule algebra.
package fix

import (
	"schemaforge.dev/migrate/rule"
	"schemaforge.dev/migrate/schema"
	"schemaforge.dev/migrate/typedsl"
)

// MakeRule builds the rewrite for one fix, given the input and output
// schema views the planner selected for it. It is called at most once per
// Fix, lazily, the first time the fix is applied.
type MakeRule[V any] func(in, out *schema.Schema[V]) rule.Rule[V]

// Fix is one elementary migration step for a single logical type, from one
// DataVersion to the next.
type Fix[V any] struct {
	Name    string
	From    schema.DataVersion
	To      schema.DataVersion
	TypeRef typedsl.Ref

	makeRule MakeRule[V]
	built    rule.Rule[V]
	have     bool
}

// New constructs a Fix. makeRule is invoked lazily by Rule.
func New[V any](name string, from, to schema.DataVersion, typeRef typedsl.Ref, makeRule MakeRule[V]) *Fix[V] {
	return &Fix[V]{Name: name, From: from, To: to, TypeRef: typeRef, makeRule: makeRule}
}

// Rule builds (once, then caches) the Fix's rewrite by calling makeRule
// against the schemas the registry has at From and To.
func (f *Fix[V]) Rule(registry *schema.Registry[V]) rule.Rule[V] {
	if f.have {
		return f.built
	}
	in, _ := registry.SchemaFor(f.From)
	out, _ := registry.SchemaFor(f.To)
	f.built = f.makeRule(in, out)
	f.have = true
	return f.built
}
