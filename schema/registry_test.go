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
	"errors"
	"testing"

	"schemaforge.dev/migrate/migerr"
)

func TestRegisterOrdersByVersion(t *testing.T) {
	r := NewRegistry[any]()
	_ = r.Register(New[any](V(3), nil))
	_ = r.Register(New[any](V(1), nil))
	_ = r.Register(New[any](V(2), nil))
	got := r.Versions()
	want := []int32{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d versions, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Int() != w {
			t.Errorf("Versions()[%d] = %d, want %d", i, got[i].Int(), w)
		}
	}
}

func TestRegisterRejectsDuplicateVersion(t *testing.T) {
	r := NewRegistry[any]()
	_ = r.Register(New[any](V(1), nil))
	err := r.Register(New[any](V(1), nil))
	if !errors.Is(err, migerr.Sentinel(migerr.DuplicateRegistration)) {
		t.Fatalf("Register should reject a duplicate version, got %v", err)
	}
}

func TestRegisterFailsOnceFrozen(t *testing.T) {
	r := NewRegistry[any]()
	r.Freeze()
	err := r.Register(New[any](V(1), nil))
	if !errors.Is(err, migerr.Sentinel(migerr.FrozenMutation)) {
		t.Fatalf("Register after Freeze should fail, got %v", err)
	}
}

func TestFreezeAlsoFreezesEverySchema(t *testing.T) {
	r := NewRegistry[any]()
	s := New[any](V(1), nil)
	_ = r.Register(s)
	r.Freeze()
	if !s.Frozen() {
		t.Fatalf("Freeze should propagate to every registered schema")
	}
}

// TestSchemaForNearestAtOrBelow exercises the registry's documented lookup
// policy (DESIGN.md, Open Question decisions): the schema with the greatest
// version not exceeding the requested one.
func TestSchemaForNearestAtOrBelow(t *testing.T) {
	r := NewRegistry[any]()
	s1 := New[any](V(1), nil)
	s3 := New[any](V(3), nil)
	_ = r.Register(s1)
	_ = r.Register(s3)

	got, ok := r.SchemaFor(V(2))
	if !ok || got != s1 {
		t.Fatalf("SchemaFor(2) should return the version-1 schema, got %v, %v", got, ok)
	}
	got, ok = r.SchemaFor(V(3))
	if !ok || got != s3 {
		t.Fatalf("SchemaFor(3) should return the exact match")
	}
	got, ok = r.SchemaFor(V(10))
	if !ok || got != s3 {
		t.Fatalf("SchemaFor(10) should return the highest registered schema below it")
	}
	_, ok = r.SchemaFor(V(0))
	if ok {
		t.Fatalf("SchemaFor below every registered version should report false")
	}
}

func TestLatestReturnsHighestVersion(t *testing.T) {
	r := NewRegistry[any]()
	_, ok := r.Latest()
	if ok {
		t.Fatalf("Latest on an empty registry should report false")
	}
	_ = r.Register(New[any](V(1), nil))
	s2 := New[any](V(2), nil)
	_ = r.Register(s2)
	got, ok := r.Latest()
	if !ok || got != s2 {
		t.Fatalf("Latest should return the version-2 schema")
	}
}
