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

package codec

import (
	"testing"

	"schemaforge.dev/migrate/tree/nativetree"
)

type service struct {
	Name    string
	Timeout int64
}

func serviceCodec() Codec[any] {
	return Record[any](
		func(values []any) (any, error) {
			return service{Name: values[0].(string), Timeout: values[1].(int64)}, nil
		},
		Field[any]{Codec: STRING[any]().FieldOf("name"), Getter: func(o any) any { return o.(service).Name }},
		Field[any]{Codec: I64[any]().OptionalFieldOfWithDefault("timeout", int64(30)), Getter: func(o any) any { return o.(service).Timeout }},
	)
}

// TestRecordRoundTrip is spec.md §8 property 2.
func TestRecordRoundTrip(t *testing.T) {
	ops := nativetree.New()
	c := serviceCodec()
	in := service{Name: "svc", Timeout: 45}
	encoded := c.EncodeStart(ops, in)
	v, ok := encoded.Value()
	if !ok {
		t.Fatalf("EncodeStart: %v", encoded.Error())
	}
	decoded := c.Parse(ops, v)
	got, ok := decoded.Value()
	if !ok {
		t.Fatalf("Parse: %v", decoded.Error())
	}
	if got.(service) != in {
		t.Fatalf("round trip = %+v, want %+v", got, in)
	}
}

// TestRecordOptionalFieldDefaultsAndReemits is spec.md §8 S5 (the
// with-default flavor): an absent "timeout" decodes to 30, and the default
// is re-emitted on encode even though it was never present in the input.
func TestRecordOptionalFieldDefaultsAndReemits(t *testing.T) {
	ops := nativetree.New()
	c := serviceCodec()
	in := nativetree.M("name", "svc")
	decoded := c.Parse(ops, in)
	got, ok := decoded.Value()
	if !ok {
		t.Fatalf("Parse: %v", decoded.Error())
	}
	rec := got.(service)
	if rec.Name != "svc" || rec.Timeout != 30 {
		t.Fatalf("got %+v, want {svc 30}", rec)
	}

	reencoded := c.EncodeStart(ops, rec)
	v, ok := reencoded.Value()
	if !ok {
		t.Fatalf("EncodeStart: %v", reencoded.Error())
	}
	m := v.(*nativetree.Map)
	entries, _ := ops.MapEntries(m)
	found := false
	for _, e := range entries {
		if e.Key == "timeout" {
			found = true
			if e.Value != int64(30) {
				t.Fatalf("timeout = %v, want 30", e.Value)
			}
		}
	}
	if !found {
		t.Fatalf("timeout should be re-emitted on encode, got %+v", entries)
	}
}

func TestRecordAggregatesFieldErrors(t *testing.T) {
	ops := nativetree.New()
	c := Record[any](
		func(values []any) (any, error) { return values, nil },
		Field[any]{Codec: STRING[any]().FieldOf("a"), Getter: func(any) any { return "" }},
		Field[any]{Codec: STRING[any]().FieldOf("b"), Getter: func(any) any { return "" }},
	)
	// Neither "a" nor "b" is present: both field decodes fail, and the
	// record is not constructed.
	decoded := c.Parse(ops, nativetree.M())
	if decoded.IsOk() {
		t.Fatalf("decoding a record missing all required fields should fail")
	}
	msg := decoded.Error().Error()
	if !contains(msg, `"a"`) || !contains(msg, `"b"`) {
		t.Fatalf("aggregated error %q should mention both missing fields", msg)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
