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
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
)

// FromStruct derives an And/Field Type template from T's exported fields,
// reflected through T's `jsonschema:"..."` struct tags rather than composed
// by hand. It is sugar over And/Field/Optional/List: the returned Type
// carries no information FromStruct itself invented, only what
// jsonschema-go's reflector already read off T.
//
// FromStruct supports the subset of JSON Schema a struct reflection
// actually produces: object (And), array (List), string, boolean, integer
// and number. A schema whose declared type lies outside that subset (e.g.
// "null") is reported as an error; a schema with no declared type at all
// maps to Empty.
func FromStruct[T any, V any]() (Type[V], error) {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("typedsl.FromStruct: reflecting %T: %w", *new(T), err)
	}
	t, err := fromJSONSchema[V](s)
	if err != nil {
		return nil, fmt.Errorf("typedsl.FromStruct: %T: %w", *new(T), err)
	}
	return t, nil
}

func fromJSONSchema[V any](s *jsonschema.Schema) (Type[V], error) {
	if s == nil {
		return Empty[V](), nil
	}
	switch s.Type {
	case "object":
		return fromObjectSchema[V](s)
	case "array":
		if s.Items == nil {
			return nil, fmt.Errorf("array schema without items")
		}
		elem, err := fromJSONSchema[V](s.Items)
		if err != nil {
			return nil, fmt.Errorf("array items: %w", err)
		}
		return List[V](elem), nil
	case "string":
		return String[V](), nil
	case "boolean":
		return Bool[V](), nil
	case "integer":
		return I64[V](), nil
	case "number":
		return F64[V](), nil
	case "":
		// A schema with no declared type (e.g. the empty struct{} used for
		// a marker field) carries no structural information to mirror.
		return Empty[V](), nil
	default:
		return nil, fmt.Errorf("unsupported JSON Schema type %q", s.Type)
	}
}

func fromObjectSchema[V any](s *jsonschema.Schema) (Type[V], error) {
	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	// Properties is a Go map; jsonschema-go does not otherwise commit to a
	// field order, so fields are sorted by name to keep And's children
	// (and therefore every diagnostic that names them) reproducible across
	// runs.
	sort.Strings(names)

	children := make([]Child[V], 0, len(names))
	for _, name := range names {
		inner, err := fromJSONSchema[V](s.Properties[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		if required[name] {
			children = append(children, Field[V](name, inner))
		} else {
			children = append(children, Optional[V](name, inner))
		}
	}
	return And[V](children...), nil
}
