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

package nativetree

import "schemaforge.dev/migrate/tree"

// M is a test-fixture convenience: it builds a *Map from alternating
// key/value pairs, e.g. M("name", "Steve", "xp", int32(1500)).
func M(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("nativetree.M: odd number of arguments")
	}
	m := &Map{}
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("nativetree.M: even-positioned argument must be a string key")
		}
		m.entries = append(m.entries, tree.Entry[any]{Key: k, Value: kv[i+1]})
	}
	return m
}

// L is a test-fixture convenience for building a list value.
func L(items ...any) []any {
	return items
}
