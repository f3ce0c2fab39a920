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

// Package rule implements composable, context-free tree rewrites: the
// algebra a Fix closes over to describe one schema migration step.
package rule

import (
	"schemaforge.dev/migrate/tree"
	"schemaforge.dev/migrate/typedsl"
)

// Rule rewrites a Typed value, reporting whether it matched. A false return
// means the rule does not apply here; the caller must treat the input as
// unchanged, not discard it.
type Rule[V any] func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool)

// Noop never matches.
func Noop[V any]() Rule[V] {
	return func(typedsl.Type[V], typedsl.Typed[V]) (typedsl.Typed[V], bool) { return typedsl.Typed[V]{}, false }
}

// Seq applies r1, then applies r2 to r1's result if r1 matched, else to the
// original input. The combined rule matches if either stage did.
func Seq[V any](r1, r2 Rule[V]) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		if out1, ok1 := r1(t, in); ok1 {
			if out2, ok2 := r2(out1.Type, out1); ok2 {
				return out2, true
			}
			return out1, true
		}
		return r2(t, in)
	}
}

// SeqAll left-folds Seq over rs, starting from Noop.
func SeqAll[V any](rs ...Rule[V]) Rule[V] {
	acc := Noop[V]()
	for _, r := range rs {
		acc = Seq(acc, r)
	}
	return acc
}

// OrElse applies r1; if it didn't match, applies r2 to the original input.
func OrElse[V any](r1, r2 Rule[V]) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		if out, ok := r1(t, in); ok {
			return out, true
		}
		return r2(t, in)
	}
}

// IfType gates r to only run when the presented Type's Reference equals ref.
func IfType[V any](ref typedsl.Ref, r Rule[V]) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		if t.Reference() != ref {
			return typedsl.Typed[V]{}, false
		}
		return r(t, in)
	}
}

// Named attaches a debug label to r. It is intentionally pure identity — the
// label exists for call sites to self-document, not to change behavior.
func Named[V any](name string, r Rule[V]) Rule[V] {
	return r
}

// OrKeep converts a non-match into an identity match, so the wrapped rule
// always reports true.
func OrKeep[V any](r Rule[V]) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		if out, ok := r(t, in); ok {
			return out, true
		}
		return in, true
	}
}

// Everywhere lifts r to run at every structural position of in's value —
// every map entry and list element, bottom-up, left-to-right at each
// level — before running once more at the root. Traversal uses an explicit
// stack of frames rather than Go call-stack recursion, so it stays within a
// bounded native stack depth no matter how deeply the tree nests.
func Everywhere[V any](ops tree.Ops[V], r Rule[V]) Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		root, ok := in.Value.(V)
		if !ok {
			return r(t, in)
		}
		newRoot, matched := rewriteBottomUp(ops, root, func(v V) (V, bool) {
			out, ok := r(t, typedsl.Typed[V]{Type: t, Value: v})
			if !ok {
				return v, false
			}
			nv, ok := out.Value.(V)
			if !ok {
				return v, false
			}
			return nv, true
		})
		return typedsl.Typed[V]{Type: t, Value: newRoot}, matched
	}
}

type frame[V any] struct {
	orig   V
	isMap  bool
	isList bool
	keys   []string
	kids   []V
	out    []V
}

// rewriteBottomUp applies apply to every node of root, children before
// parents, rebuilding maps and lists from their already-rewritten children.
// matchedAny is true if apply matched anywhere in the tree, root included.
func rewriteBottomUp[V any](ops tree.Ops[V], root V, apply func(V) (V, bool)) (result V, matchedAny bool) {
	push := func(stack []*frame[V], v V) []*frame[V] {
		f := &frame[V]{orig: v}
		switch {
		case ops.IsMap(v):
			f.isMap = true
			entries, _ := ops.MapEntries(v)
			for _, e := range entries {
				name, err := ops.AsString(e.Key)
				if err != nil {
					// Non-string keys aren't addressable by the Set/Get
					// surface this module builds on; such an entry is not
					// visited and stays in the rebuilt map as it was.
					continue
				}
				f.keys = append(f.keys, name)
				f.kids = append(f.kids, e.Value)
			}
		case ops.IsList(v):
			f.isList = true
			items, _ := ops.ListStream(v)
			f.kids = items
		}
		return append(stack, f)
	}

	stack := push(nil, root)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if len(top.out) < len(top.kids) {
			stack = push(stack, top.kids[len(top.out)])
			continue
		}
		rebuilt := top.orig
		switch {
		case top.isMap:
			for i, k := range top.keys {
				rebuilt = ops.Set(rebuilt, k, top.out[i])
			}
		case top.isList:
			rebuilt = ops.CreateList(top.out)
		}
		newVal, matched := apply(rebuilt)
		matchedAny = matchedAny || matched
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return newVal, matchedAny
		}
		parent := stack[len(stack)-1]
		parent.out = append(parent.out, newVal)
	}
	return root, matchedAny
}
