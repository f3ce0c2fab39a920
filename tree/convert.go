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

package tree

// ConvertTo recursively inspects a source value under srcOps and rebuilds
// it under dstOps, the cross-format conversion every host needs to move a
// tagged value between, say, a YAML-sourced tree and a JSON-destined one.
// Unknown shapes (neither null, bool, number, string, list nor map under
// srcOps) become dstOps.Empty().
//
// A Go method cannot introduce a type parameter beyond its receiver's, so
// the two tree types are parameters of a free function rather than a
// TreeOps method — see DESIGN.md.
func ConvertTo[Dst, Src any](dstOps Ops[Dst], srcOps Ops[Src], v Src) Dst {
	switch {
	case srcOps.IsNull(v):
		return dstOps.Empty()
	case srcOps.IsBool(v):
		b, err := srcOps.AsBool(v)
		if err != nil {
			return dstOps.Empty()
		}
		return dstOps.Bool(b)
	case srcOps.IsNumber(v):
		n, err := srcOps.AsNumber(v)
		if err != nil {
			return dstOps.Empty()
		}
		dv, err := dstOps.Numeric(n)
		if err != nil {
			return dstOps.Empty()
		}
		return dv
	case srcOps.IsString(v):
		s, err := srcOps.AsString(v)
		if err != nil {
			return dstOps.Empty()
		}
		return dstOps.String(s)
	case srcOps.IsList(v):
		items, err := srcOps.ListStream(v)
		if err != nil {
			return dstOps.Empty()
		}
		out := make([]Dst, len(items))
		for i, it := range items {
			out[i] = ConvertTo(dstOps, srcOps, it)
		}
		return dstOps.CreateList(out)
	case srcOps.IsMap(v):
		entries, err := srcOps.MapEntries(v)
		if err != nil {
			return dstOps.Empty()
		}
		out := make([]Entry[Dst], len(entries))
		for i, e := range entries {
			out[i] = Entry[Dst]{
				Key:   ConvertTo(dstOps, srcOps, e.Key),
				Value: ConvertTo(dstOps, srcOps, e.Value),
			}
		}
		return dstOps.CreateMap(out)
	default:
		return dstOps.Empty()
	}
}
