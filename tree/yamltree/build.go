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

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"schemaforge.dev/migrate/tree"
)

func (Ops) ListStream(v *yaml.Node) ([]*yaml.Node, error) {
	if v == nil || v.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("yamltree: ListStream on non-sequence node %q", nodeDesc(v))
	}
	out := make([]*yaml.Node, len(v.Content))
	copy(out, v.Content)
	return out, nil
}

func (Ops) MapEntries(v *yaml.Node) ([]tree.Entry[*yaml.Node], error) {
	if v == nil || v.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yamltree: MapEntries on non-mapping node %q", nodeDesc(v))
	}
	var out []tree.Entry[*yaml.Node]
	for i := 0; i+1 < len(v.Content); i += 2 {
		out = append(out, tree.Entry[*yaml.Node]{Key: v.Content[i], Value: v.Content[i+1]})
	}
	return out, nil
}

func (o Ops) Get(m *yaml.Node, key string) (*yaml.Node, bool) {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1], true
		}
	}
	return nil, false
}

func (o Ops) Has(m *yaml.Node, key string) bool {
	_, ok := o.Get(m, key)
	return ok
}

func (Ops) MergeToList(a, b *yaml.Node) (*yaml.Node, error) {
	if a == nil || a.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("yamltree: MergeToList: not a sequence")
	}
	if b == nil || b.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("yamltree: MergeToList: not a sequence")
	}
	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	out.Content = append(out.Content, a.Content...)
	out.Content = append(out.Content, b.Content...)
	return out, nil
}

func cloneMapping(m *yaml.Node) *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	out.Content = append(out.Content, m.Content...)
	return out
}

func (Ops) MergeToMapEntry(m *yaml.Node, key *yaml.Node, value *yaml.Node) (*yaml.Node, error) {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yamltree: MergeToMapEntry: not a mapping")
	}
	out := cloneMapping(m)
	for i := 0; i+1 < len(out.Content); i += 2 {
		if out.Content[i].Value == key.Value {
			out.Content[i+1] = value
			return out, nil
		}
	}
	out.Content = append(out.Content, key, value)
	return out, nil
}

func (Ops) MergeToMap(m *yaml.Node, other *yaml.Node) (*yaml.Node, error) {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yamltree: MergeToMap: not a mapping")
	}
	if other == nil || other.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yamltree: MergeToMap: not a mapping")
	}
	out := cloneMapping(m)
	for i := 0; i+1 < len(other.Content); i += 2 {
		k, v := other.Content[i], other.Content[i+1]
		replaced := false
		for j := 0; j+1 < len(out.Content); j += 2 {
			if out.Content[j].Value == k.Value {
				out.Content[j+1] = v
				replaced = true
				break
			}
		}
		if !replaced {
			out.Content = append(out.Content, k, v)
		}
	}
	return out, nil
}

func (Ops) CreateList(items []*yaml.Node) *yaml.Node {
	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	out.Content = append(out.Content, items...)
	return out
}

func (Ops) CreateMap(entries []tree.Entry[*yaml.Node]) *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range entries {
		out.Content = append(out.Content, e.Key, e.Value)
	}
	return out
}

func (o Ops) Set(m *yaml.Node, key string, val *yaml.Node) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return o.CreateMap([]tree.Entry[*yaml.Node]{{Key: o.String(key), Value: val}})
	}
	out := cloneMapping(m)
	for i := 0; i+1 < len(out.Content); i += 2 {
		if out.Content[i].Value == key {
			out.Content[i+1] = val
			return out
		}
	}
	out.Content = append(out.Content, o.String(key), val)
	return out
}

func (o Ops) Remove(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return m
	}
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			continue
		}
		out.Content = append(out.Content, m.Content[i], m.Content[i+1])
	}
	return out
}

var _ tree.Ops[*yaml.Node] = Ops{}
