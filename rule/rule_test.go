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

package rule

import (
	"testing"

	"schemaforge.dev/migrate/tree"
	"schemaforge.dev/migrate/tree/nativetree"
	"schemaforge.dev/migrate/typedsl"
)

func typed(ops tree.Ops[any], v any) typedsl.Typed[any] {
	return typedsl.Typed[any]{Type: typedsl.Bool[any](), Value: v}
}

func TestRenameFieldMatchesAndPreservesOthers(t *testing.T) {
	ops := nativetree.New()
	r := RenameField[any](ops, "hp", "health")
	in := typed(ops, nativetree.M("hp", int32(10), "mp", int32(5)))
	out, ok := r(nil, in)
	if !ok {
		t.Fatalf("RenameField should match when old is present and new absent")
	}
	m := out.Value.(*nativetree.Map)
	if v, present := ops.Get(m, "health"); !present || v != int32(10) {
		t.Fatalf("health = %v, present=%v; want 10, true", v, present)
	}
	if _, present := ops.Get(m, "hp"); present {
		t.Fatalf("hp should have been removed")
	}
	if v, present := ops.Get(m, "mp"); !present || v != int32(5) {
		t.Fatalf("mp should be untouched, got %v, present=%v", v, present)
	}
}

func TestRenameFieldNoopWhenNewAlreadyPresent(t *testing.T) {
	ops := nativetree.New()
	r := RenameField[any](ops, "hp", "health")
	in := typed(ops, nativetree.M("hp", int32(10), "health", int32(99)))
	if _, ok := r(nil, in); ok {
		t.Fatalf("RenameField should not overwrite an existing new field")
	}
}

func TestRemoveFieldDropsPresentField(t *testing.T) {
	ops := nativetree.New()
	r := RemoveField[any](ops, "deprecated")
	in := typed(ops, nativetree.M("deprecated", "x", "kept", "y"))
	out, ok := r(nil, in)
	if !ok {
		t.Fatalf("RemoveField should match when the field is present")
	}
	if _, present := ops.Get(out.Value, "deprecated"); present {
		t.Fatalf("deprecated should have been removed")
	}
}

func TestAddFieldFillsAbsentOnly(t *testing.T) {
	ops := nativetree.New()
	r := AddField[any](ops, "level", func() any { return int32(1) })
	in := typed(ops, nativetree.M("name", "Steve"))
	out, ok := r(nil, in)
	if !ok {
		t.Fatalf("AddField should match when absent")
	}
	if v, present := ops.Get(out.Value, "level"); !present || v != int32(1) {
		t.Fatalf("level = %v, present=%v; want 1, true", v, present)
	}

	withLevel := typed(ops, nativetree.M("name", "Steve", "level", int32(50)))
	if _, ok := r(nil, withLevel); ok {
		t.Fatalf("AddField should not match when the field is already present")
	}
}

func TestTransformFieldAppliesFunction(t *testing.T) {
	ops := nativetree.New()
	r := TransformField[any](ops, "hp", func(d tree.Dynamic[any]) tree.Dynamic[any] {
		n := d.Value.(int32)
		return tree.Dynamic[any]{Ops: d.Ops, Value: n * 10}
	})
	in := typed(ops, nativetree.M("hp", int32(4)))
	out, ok := r(nil, in)
	if !ok {
		t.Fatalf("TransformField should match when present")
	}
	if v, _ := ops.Get(out.Value, "hp"); v != int32(40) {
		t.Fatalf("hp = %v, want 40", v)
	}
}

// TestOrKeepIdempotence is spec.md §8 property 5: OrKeep(r) applied twice is
// the same as applying it once, since a non-match becomes an identity match.
func TestOrKeepIdempotence(t *testing.T) {
	ops := nativetree.New()
	r := OrKeep[any](RenameField[any](ops, "old", "new"))
	in := typed(ops, nativetree.M("new", "already renamed"))

	once, ok := r(nil, in)
	if !ok {
		t.Fatalf("OrKeep must always report a match")
	}
	twice, ok := r(once.Type, once)
	if !ok {
		t.Fatalf("OrKeep must always report a match")
	}
	v1, _ := ops.Get(once.Value, "new")
	v2, _ := ops.Get(twice.Value, "new")
	if v1 != v2 {
		t.Fatalf("applying OrKeep twice changed the value: %v != %v", v1, v2)
	}
}

// TestEverywhereFixedPoint is spec.md §8 property 6: once Everywhere has
// exhausted every match, a second pass changes nothing further.
func TestEverywhereFixedPoint(t *testing.T) {
	ops := nativetree.New()
	r := Everywhere[any](ops, RenameField[any](ops, "old", "new"))
	nested := nativetree.M("old", int32(1),
		"child", nativetree.M("old", int32(2)),
	)
	in := typed(ops, nested)

	once, matched := r(nil, in)
	if !matched {
		t.Fatalf("Everywhere should match the nested old fields")
	}
	twice, matchedAgain := r(once.Type, once)
	if matchedAgain {
		t.Fatalf("a second Everywhere pass should not match anything new")
	}
	entries1, _ := ops.MapEntries(once.Value)
	entries2, _ := ops.MapEntries(twice.Value)
	if len(entries1) != len(entries2) {
		t.Fatalf("fixed point: second pass changed the shape")
	}
}

func TestEverywhereRewritesNestedMaps(t *testing.T) {
	ops := nativetree.New()
	r := Everywhere[any](ops, RenameField[any](ops, "old", "new"))
	nested := nativetree.M("child", nativetree.M("old", int32(2)))
	in := typed(ops, nested)
	out, matched := r(nil, in)
	if !matched {
		t.Fatalf("Everywhere should descend into the nested map")
	}
	child, _ := ops.Get(out.Value, "child")
	if v, present := ops.Get(child, "new"); !present || v != int32(2) {
		t.Fatalf("nested rename did not apply: %v, present=%v", v, present)
	}
}

func TestFixChoiceDispatchesOnTag(t *testing.T) {
	ops := nativetree.New()
	r := FixChoice[any](ops, "kind", map[string]func(tree.Dynamic[any]) tree.Dynamic[any]{
		"click": func(d tree.Dynamic[any]) tree.Dynamic[any] {
			return tree.Dynamic[any]{Ops: d.Ops, Value: ops.Set(d.Value, "handled", true)}
		},
	})
	in := typed(ops, nativetree.M("kind", "click"))
	out, ok := r(nil, in)
	if !ok {
		t.Fatalf("FixChoice should match a known tag")
	}
	if v, present := ops.Get(out.Value, "handled"); !present || v != true {
		t.Fatalf("handled = %v, present=%v; want true, true", v, present)
	}

	unknown := typed(ops, nativetree.M("kind", "scroll"))
	if _, ok := r(nil, unknown); ok {
		t.Fatalf("FixChoice should not match an unknown tag")
	}
}

func TestRenameChoiceOnlyMatchesOldTag(t *testing.T) {
	ops := nativetree.New()
	r := RenameChoice[any](ops, "kind", "click", "pointerdown")
	in := typed(ops, nativetree.M("kind", "click"))
	out, ok := r(nil, in)
	if !ok {
		t.Fatalf("RenameChoice should match the old tag")
	}
	if v, _ := ops.Get(out.Value, "kind"); v != "pointerdown" {
		t.Fatalf("kind = %v, want pointerdown", v)
	}

	other := typed(ops, nativetree.M("kind", "key"))
	if _, ok := r(nil, other); ok {
		t.Fatalf("RenameChoice should not match any other tag")
	}
}

func TestSeqChainsBothRules(t *testing.T) {
	ops := nativetree.New()
	r := Seq[any](
		RenameField[any](ops, "hp", "health"),
		AddField[any](ops, "level", func() any { return int32(1) }),
	)
	in := typed(ops, nativetree.M("hp", int32(10)))
	out, ok := r(nil, in)
	if !ok {
		t.Fatalf("Seq should match when either stage matches")
	}
	if v, present := ops.Get(out.Value, "health"); !present || v != int32(10) {
		t.Fatalf("health = %v, present=%v; want 10, true", v, present)
	}
	if v, present := ops.Get(out.Value, "level"); !present || v != int32(1) {
		t.Fatalf("level = %v, present=%v; want 1, true", v, present)
	}
}

func TestOrElseFallsBackOnNoMatch(t *testing.T) {
	ops := nativetree.New()
	r := OrElse[any](
		RenameField[any](ops, "missing", "x"),
		AddField[any](ops, "fallback", func() any { return true }),
	)
	in := typed(ops, nativetree.M("a", 1))
	out, ok := r(nil, in)
	if !ok {
		t.Fatalf("OrElse should apply r2 when r1 doesn't match")
	}
	if v, _ := ops.Get(out.Value, "fallback"); v != true {
		t.Fatalf("fallback = %v, want true", v)
	}
}

func TestIfTypeGatesOnReference(t *testing.T) {
	ops := nativetree.New()
	r := IfType[any]("player", RenameField[any](ops, "hp", "health"))
	in := typedsl.Typed[any]{Type: typedsl.Bind[any]("monster", typedsl.Bool[any]()), Value: nativetree.M("hp", int32(1))}
	if _, ok := r(in.Type, in); ok {
		t.Fatalf("IfType should not match a differently-referenced Type")
	}

	playerIn := typedsl.Typed[any]{Type: typedsl.Bind[any]("player", typedsl.Bool[any]()), Value: nativetree.M("hp", int32(1))}
	if _, ok := r(playerIn.Type, playerIn); !ok {
		t.Fatalf("IfType should match when Reference() equals ref")
	}
}
