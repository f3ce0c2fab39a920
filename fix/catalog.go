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

package fix

import (
	"github.com/bmatcuk/doublestar/v4"

	"schemaforge.dev/migrate/rule"
	"schemaforge.dev/migrate/schema"
	"schemaforge.dev/migrate/tree"
	"schemaforge.dev/migrate/typedsl"
)

// RenameFieldFix builds a Fix that renames a record field.
func RenameFieldFix[V any](ops tree.Ops[V], name string, from, to schema.DataVersion, typeRef typedsl.Ref, old, new string) *Fix[V] {
	return New[V](name, from, to, typeRef, func(*schema.Schema[V], *schema.Schema[V]) rule.Rule[V] {
		return rule.RenameField[V](ops, old, new)
	})
}

// RemoveFieldFix builds a Fix that drops a record field.
func RemoveFieldFix[V any](ops tree.Ops[V], name string, from, to schema.DataVersion, typeRef typedsl.Ref, field string) *Fix[V] {
	return New[V](name, from, to, typeRef, func(*schema.Schema[V], *schema.Schema[V]) rule.Rule[V] {
		return rule.RemoveField[V](ops, field)
	})
}

// AddFieldFix builds a Fix that adds a record field with a supplied default
// when it is absent.
func AddFieldFix[V any](ops tree.Ops[V], name string, from, to schema.DataVersion, typeRef typedsl.Ref, field string, def func() V) *Fix[V] {
	return New[V](name, from, to, typeRef, func(*schema.Schema[V], *schema.Schema[V]) rule.Rule[V] {
		return rule.AddField[V](ops, field, def)
	})
}

// TransformFieldFix builds a Fix that rewrites a record field's value
// through f when present.
func TransformFieldFix[V any](ops tree.Ops[V], name string, from, to schema.DataVersion, typeRef typedsl.Ref, field string, f func(tree.Dynamic[V]) tree.Dynamic[V]) *Fix[V] {
	return New[V](name, from, to, typeRef, func(*schema.Schema[V], *schema.Schema[V]) rule.Rule[V] {
		return rule.TransformField[V](ops, field, f)
	})
}

// RenameChoiceFix builds a Fix that renames a tagged-union variant.
func RenameChoiceFix[V any](ops tree.Ops[V], name string, from, to schema.DataVersion, typeRef typedsl.Ref, tagField, oldTag, newTag string) *Fix[V] {
	return New[V](name, from, to, typeRef, func(*schema.Schema[V], *schema.Schema[V]) rule.Rule[V] {
		return rule.RenameChoice[V](ops, tagField, oldTag, newTag)
	})
}

// WalkFix wraps an arbitrary rule.Rule in rule.Everywhere, applying it at
// every structural position of the tagged value rather than only its top
// level — the fix-catalog form of a blanket structural rewrite.
func WalkFix[V any](ops tree.Ops[V], name string, from, to schema.DataVersion, typeRef typedsl.Ref, inner rule.Rule[V]) *Fix[V] {
	return New[V](name, from, to, typeRef, func(*schema.Schema[V], *schema.Schema[V]) rule.Rule[V] {
		return rule.Everywhere[V](ops, inner)
	})
}

// WalkGlobFix applies onMatch only to map values whose dotted path (e.g.
// "spec.containers.env") matches pattern under doublestar.Match. doublestar
// separates segments with '/', not '.', so a '*' in pattern also matches
// across dots ("spec.*" matches "spec.a.b"). onMatch receives the matched
// map itself, so it can edit that map's entries but cannot rename the
// entry under which the map sits; leaf values and the root are never
// matched.
func WalkGlobFix[V any](ops tree.Ops[V], name string, from, to schema.DataVersion, typeRef typedsl.Ref, pattern string, onMatch rule.Rule[V]) *Fix[V] {
	return New[V](name, from, to, typeRef, func(*schema.Schema[V], *schema.Schema[V]) rule.Rule[V] {
		return globWalk[V](ops, pattern, onMatch)
	})
}

// globWalk is the Everywhere-like traversal used by WalkGlobFix: it
// descends the tree maintaining a dotted path, applying onMatch only at map
// positions whose path matches pattern.
func globWalk[V any](ops tree.Ops[V], pattern string, onMatch rule.Rule[V]) rule.Rule[V] {
	return func(t typedsl.Type[V], in typedsl.Typed[V]) (typedsl.Typed[V], bool) {
		root, ok := in.Value.(V)
		if !ok {
			return typedsl.Typed[V]{}, false
		}
		matchedAny := false
		var walk func(path string, v V) V
		walk = func(path string, v V) V {
			switch {
			case ops.IsMap(v):
				entries, _ := ops.MapEntries(v)
				out := v
				for _, e := range entries {
					key, err := ops.AsString(e.Key)
					if err != nil {
						continue
					}
					childPath := key
					if path != "" {
						childPath = path + "." + key
					}
					rewritten := walk(childPath, e.Value)
					out = ops.Set(out, key, rewritten)
				}
				if ok, _ := doublestar.Match(pattern, path); ok && path != "" {
					next, matched := onMatch(t, typedsl.Typed[V]{Type: t, Value: out})
					if matched {
						matchedAny = true
						if nv, ok := next.Value.(V); ok {
							return nv
						}
					}
				}
				return out
			case ops.IsList(v):
				items, _ := ops.ListStream(v)
				out := make([]V, len(items))
				for i, item := range items {
					out[i] = walk(path, item)
				}
				return ops.CreateList(out)
			default:
				return v
			}
		}
		newRoot := walk("", root)
		if !matchedAny {
			return typedsl.Typed[V]{}, false
		}
		return typedsl.Typed[V]{Type: t, Value: newRoot}, true
	}
}
