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
	"testing"

	"schemaforge.dev/migrate/tree/nativetree"
)

func TestAndRejectsTwoRemainders(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("And with two Remainder children should panic")
		}
	}()
	And[any](RemainderChild[any](), RemainderChild[any]())
}

// TestAndRemainderPreservation is spec.md §8 property 8: a key no fix
// touches survives decode+encode unchanged.
func TestAndRemainderPreservation(t *testing.T) {
	ops := nativetree.New()
	playerType := And[any](
		Field[any]("name", String[any]()),
		RemainderChild[any](),
	)
	in := nativetree.M("name", "Steve", "xp", int64(1500))
	decoded := playerType.Codec().Parse(ops, in)
	v, ok := decoded.Value()
	if !ok {
		t.Fatalf("Parse: %v", decoded.Error())
	}
	reencoded := playerType.Codec().EncodeStart(ops, v)
	out, ok := reencoded.Value()
	if !ok {
		t.Fatalf("EncodeStart: %v", reencoded.Error())
	}
	xp, present := ops.Get(out, "xp")
	if !present || xp != int64(1500) {
		t.Fatalf("xp = %v, present=%v; want 1500, true", xp, present)
	}
}

func TestAndRequiredFieldMissingFails(t *testing.T) {
	ops := nativetree.New()
	ty := And[any](Field[any]("name", String[any]()))
	decoded := ty.Codec().Parse(ops, nativetree.M())
	if decoded.IsOk() {
		t.Fatalf("decoding without the required field should fail")
	}
}

func TestAndOptionalFieldDefaultsWhenAbsent(t *testing.T) {
	ops := nativetree.New()
	ty := And[any](OptionalWithDefault[any]("timeout", I64[any](), int64(30)))
	decoded := ty.Codec().Parse(ops, nativetree.M())
	v, ok := decoded.Value()
	if !ok {
		t.Fatalf("Parse: %v", decoded.Error())
	}
	got, present := ops.Get(v, "timeout")
	if !present || got != int64(30) {
		t.Fatalf("timeout = %v, present=%v; want 30, true", got, present)
	}
}
