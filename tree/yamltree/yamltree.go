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

// Package yamltree implements tree.Ops[*yaml.Node] over gopkg.in/yaml.v3's
// node representation, preserving block-mapping insertion order on
// round-trip. It plays the role the teacher's encoding/yaml package plays
// for CUE values, adapted from a CUE-AST target to a tree.Ops[V] target,
// and swapping the teacher's ghodss/yaml dependency (flagged in its own
// TODO as lossy: "does not expose the underlying error ... comments and
// other meta data are lost") for yaml.v3's node API, which keeps both.
package yamltree

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Ops is the zero-configuration tree.Ops[*yaml.Node] implementation.
type Ops struct{}

// New returns a usable yamltree.Ops value.
func New() Ops { return Ops{} }

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func (Ops) Empty() *yaml.Node      { return scalar("!!null", "null") }
func (Ops) Bool(b bool) *yaml.Node { return scalar("!!bool", strconv.FormatBool(b)) }
func (Ops) Int8(n int8) *yaml.Node { return scalar("!!int", strconv.FormatInt(int64(n), 10)) }
func (Ops) Int16(n int16) *yaml.Node {
	return scalar("!!int", strconv.FormatInt(int64(n), 10))
}
func (Ops) Int32(n int32) *yaml.Node { return scalar("!!int", strconv.FormatInt(int64(n), 10)) }
func (Ops) Int64(n int64) *yaml.Node { return scalar("!!int", strconv.FormatInt(n, 10)) }
func (Ops) Float32(n float32) *yaml.Node {
	return scalar("!!float", strconv.FormatFloat(float64(n), 'g', -1, 32))
}
func (Ops) Float64(n float64) *yaml.Node {
	return scalar("!!float", strconv.FormatFloat(n, 'g', -1, 64))
}
func (Ops) String(s string) *yaml.Node { return scalar("!!str", s) }
func (Ops) EmptyList() *yaml.Node      { return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"} }
func (Ops) EmptyMap() *yaml.Node       { return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"} }

// Numeric maps n by its Go type: int, int32 and int64 become !!int
// scalars, float32 and float64 become !!float scalars. A float64 with an
// integral value is not narrowed to !!int, and int8/int16 (or any other
// type) are rejected with an error.
func (o Ops) Numeric(n any) (*yaml.Node, error) {
	switch v := n.(type) {
	case int32:
		return o.Int32(v), nil
	case int64:
		return o.Int64(v), nil
	case float32:
		return o.Float32(v), nil
	case float64:
		return o.Float64(v), nil
	case int:
		return o.Int64(int64(v)), nil
	default:
		return nil, fmt.Errorf("yamltree: unsupported numeric type %T", n)
	}
}

func (Ops) IsNull(v *yaml.Node) bool {
	return v == nil || (v.Kind == yaml.ScalarNode && v.Tag == "!!null")
}
func (Ops) IsBool(v *yaml.Node) bool   { return v != nil && v.Kind == yaml.ScalarNode && v.Tag == "!!bool" }
func (Ops) IsNumber(v *yaml.Node) bool {
	return v != nil && v.Kind == yaml.ScalarNode && (v.Tag == "!!int" || v.Tag == "!!float")
}
func (Ops) IsString(v *yaml.Node) bool { return v != nil && v.Kind == yaml.ScalarNode && v.Tag == "!!str" }
func (Ops) IsList(v *yaml.Node) bool   { return v != nil && v.Kind == yaml.SequenceNode }
func (Ops) IsMap(v *yaml.Node) bool    { return v != nil && v.Kind == yaml.MappingNode }

func (o Ops) AsBool(v *yaml.Node) (bool, error) {
	if !o.IsBool(v) {
		return false, fmt.Errorf("yamltree: AsBool on non-bool node %q", nodeDesc(v))
	}
	return strconv.ParseBool(v.Value)
}

func (o Ops) AsNumber(v *yaml.Node) (float64, error) {
	if !o.IsNumber(v) {
		return 0, fmt.Errorf("yamltree: AsNumber on non-number node %q", nodeDesc(v))
	}
	return strconv.ParseFloat(v.Value, 64)
}

func (o Ops) AsString(v *yaml.Node) (string, error) {
	if !o.IsString(v) {
		return "", fmt.Errorf("yamltree: AsString on non-string node %q", nodeDesc(v))
	}
	return v.Value, nil
}

func nodeDesc(v *yaml.Node) string {
	if v == nil {
		return "<nil>"
	}
	return v.Value
}
