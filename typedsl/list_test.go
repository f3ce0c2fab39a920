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
	"testing"

	"schemaforge.dev/migrate/tree/nativetree"
)

func TestListRoundTrip(t *testing.T) {
	ops := nativetree.New()
	ty := List[any](I32[any]())
	in := []any{int32(1), int32(2), int32(3)}
	encoded := ty.Codec().EncodeStart(ops, in)
	v, ok := encoded.Value()
	if !ok {
		t.Fatalf("EncodeStart: %v", encoded.Error())
	}
	decoded := ty.Codec().Parse(ops, v)
	got, ok := decoded.Value()
	if !ok {
		t.Fatalf("Parse: %v", decoded.Error())
	}
	items := got.([]any)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
}

func TestListOfAndRecords(t *testing.T) {
	ops := nativetree.New()
	elem := And[any](Field[any]("name", String[any]()))
	ty := List[any](elem)
	in := ops.CreateList([]any{
		nativetree.M("name", "a"),
		nativetree.M("name", "b"),
	})
	decoded := ty.Codec().Parse(ops, in)
	got, ok := decoded.Value()
	if !ok {
		t.Fatalf("Parse: %v", decoded.Error())
	}
	items := got.([]any)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
}
