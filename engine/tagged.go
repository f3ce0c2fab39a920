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

// Package engine is the planner and executor: given a frozen schema
// registry and an ordered fix catalog, it migrates one tagged tree value
// from one DataVersion to another.
package engine

import (
	"schemaforge.dev/migrate/schema"
	"schemaforge.dev/migrate/typedsl"
)

// Tagged bundles a tree value with the logical type and DataVersion it was
// last encoded at — the in-memory form of the (version, body) persisted
// payload envelope. The version lives in the envelope, never inside the
// tree value itself.
type Tagged[V any] struct {
	TypeRef typedsl.Ref
	Version schema.DataVersion
	Value   V
}

// Unit is the empty success payload of an Update call that otherwise only
// needs to report success/failure.
type Unit struct{}
