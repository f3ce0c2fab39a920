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

package yamltree

import "testing"

func TestSetThenGetRoundTrips(t *testing.T) {
	ops := New()
	m := ops.EmptyMap()
	m = ops.Set(m, "name", ops.String("Steve"))
	m = ops.Set(m, "hp", ops.Int32(10))

	v, present := ops.Get(m, "name")
	if !present {
		t.Fatalf("name should be present")
	}
	s, err := ops.AsString(v)
	if err != nil || s != "Steve" {
		t.Fatalf("AsString = %q, %v; want Steve, nil", s, err)
	}
}

func TestMapEntriesPreservesInsertionOrder(t *testing.T) {
	ops := New()
	built := ops.Set(ops.Set(ops.Set(ops.EmptyMap(), "z", ops.Bool(true)), "a", ops.Bool(false)), "m", ops.Bool(true))
	entries, err := ops.MapEntries(built)
	if err != nil {
		t.Fatalf("MapEntries: %v", err)
	}
	want := []string{"z", "a", "m"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, k := range want {
		if entries[i].Key.Value != k {
			t.Errorf("entries[%d].Key = %q, want %q", i, entries[i].Key.Value, k)
		}
	}
}

func TestRemoveDropsNamedEntry(t *testing.T) {
	ops := New()
	m := ops.Set(ops.Set(ops.EmptyMap(), "a", ops.Bool(true)), "b", ops.Bool(false))
	out := ops.Remove(m, "a")
	if ops.Has(out, "a") {
		t.Fatalf("a should have been removed")
	}
	if !ops.Has(out, "b") {
		t.Fatalf("b should still be present")
	}
}

func TestMergeToMapOverwritesAndAppends(t *testing.T) {
	ops := New()
	base := ops.Set(ops.EmptyMap(), "a", ops.Int32(1))
	other := ops.Set(ops.EmptyMap(), "a", ops.Int32(2))
	other = ops.Set(other, "b", ops.Int32(3))
	merged, err := ops.MergeToMap(base, other)
	if err != nil {
		t.Fatalf("MergeToMap: %v", err)
	}
	a, _ := ops.Get(merged, "a")
	n, _ := ops.AsNumber(a)
	if n != 2 {
		t.Fatalf("a = %v, want 2 (overwritten)", n)
	}
	if !ops.Has(merged, "b") {
		t.Fatalf("b should have been appended")
	}
}

func TestIsMapAndIsListClassifyCorrectly(t *testing.T) {
	ops := New()
	if !ops.IsMap(ops.EmptyMap()) {
		t.Fatalf("EmptyMap should classify as a map")
	}
	if !ops.IsList(ops.EmptyList()) {
		t.Fatalf("EmptyList should classify as a list")
	}
	if ops.IsMap(ops.Empty()) {
		t.Fatalf("Empty (null) should not classify as a map")
	}
}
