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

package tree_test

import (
	"testing"

	"gopkg.in/yaml.v3"

	"schemaforge.dev/migrate/tree"
	"schemaforge.dev/migrate/tree/nativetree"
	"schemaforge.dev/migrate/tree/yamltree"
)

// TestConvertToMovesBetweenFormats exercises spec.md §4.1's cross-format
// ConvertTo operation: a nativetree value built from a literal Go fixture is
// rebuilt under yamltree, and every field and value must survive the move.
func TestConvertToMovesBetweenFormats(t *testing.T) {
	native := nativetree.New()
	yml := yamltree.New()

	src := nativetree.M(
		"name", "Steve",
		"hp", int32(20),
		"tags", nativetree.L("a", "b"),
	)

	yNode := tree.ConvertTo[*yaml.Node, any](yml, native, src)

	name, present := yml.Get(yNode, "name")
	if !present {
		t.Fatalf("name should be present after conversion to yamltree")
	}
	if s, err := yml.AsString(name); err != nil || s != "Steve" {
		t.Fatalf("name = %q, %v; want Steve, nil", s, err)
	}

	hp, present := yml.Get(yNode, "hp")
	if !present {
		t.Fatalf("hp should be present after conversion to yamltree")
	}
	if n, err := yml.AsNumber(hp); err != nil || n != 20 {
		t.Fatalf("hp = %v, %v; want 20, nil", n, err)
	}

	tagsNode, present := yml.Get(yNode, "tags")
	if !present {
		t.Fatalf("tags should be present after conversion to yamltree")
	}
	tagItems, err := yml.ListStream(tagsNode)
	if err != nil || len(tagItems) != 2 {
		t.Fatalf("tags list = %v, %v; want 2 items, nil", tagItems, err)
	}
	if s, err := yml.AsString(tagItems[0]); err != nil || s != "a" {
		t.Fatalf("tags[0] = %q, %v; want a, nil", s, err)
	}
	if s, err := yml.AsString(tagItems[1]); err != nil || s != "b" {
		t.Fatalf("tags[1] = %q, %v; want b, nil", s, err)
	}

	// And back: converting the yamltree value back into nativetree must
	// reproduce the same scalars and list length.
	roundTripped := tree.ConvertTo[any, *yaml.Node](native, yml, yNode)
	if s, present := native.Get(roundTripped, "name"); !present || s != "Steve" {
		t.Fatalf("round-tripped name = %v, present=%v; want Steve, true", s, present)
	}
}
