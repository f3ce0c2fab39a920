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

package result

import (
	"errors"
	"testing"
)

func TestOkValue(t *testing.T) {
	r := Ok(42)
	if !r.IsOk() || r.IsErr() {
		t.Fatalf("Ok(42): IsOk=%v IsErr=%v", r.IsOk(), r.IsErr())
	}
	v, ok := r.Value()
	if !ok || v != 42 {
		t.Fatalf("Value() = %v, %v; want 42, true", v, ok)
	}
	if r.HasWarnings() {
		t.Fatalf("Ok(42) should carry no warnings")
	}
}

func TestOkWithWarnings(t *testing.T) {
	r := OkWithWarnings(7, "careful", "twice")
	if !r.IsOk() {
		t.Fatalf("OkWithWarnings should still be ok")
	}
	if !r.HasWarnings() {
		t.Fatalf("expected warnings")
	}
	if got := r.Warnings(); len(got) != 2 || got[0] != "careful" || got[1] != "twice" {
		t.Fatalf("Warnings() = %v", got)
	}
	v, ok := r.Value()
	if !ok || v != 7 {
		t.Fatalf("Value() = %v, %v", v, ok)
	}
}

func TestErr(t *testing.T) {
	cause := errors.New("boom")
	r := Err[int](cause)
	if r.IsOk() || !r.IsErr() {
		t.Fatalf("Err: IsOk=%v IsErr=%v", r.IsOk(), r.IsErr())
	}
	if _, ok := r.Value(); ok {
		t.Fatalf("Value() should report false on error")
	}
	if r.Error() != cause {
		t.Fatalf("Error() = %v, want %v", r.Error(), cause)
	}
}

func TestGetPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Get on an error result should panic")
		}
	}()
	Err[int](errors.New("boom")).Get()
}

func TestMapPreservesWarningsAndShortCircuits(t *testing.T) {
	ok := OkWithWarnings(3, "w1")
	doubled := Map(ok, func(n int) int { return n * 2 })
	if v, _ := doubled.Value(); v != 6 {
		t.Fatalf("Map value = %v, want 6", v)
	}
	if got := doubled.Warnings(); len(got) != 1 || got[0] != "w1" {
		t.Fatalf("Map should preserve warnings, got %v", got)
	}

	errR := Err[int](errors.New("bad"))
	if out := Map(errR, func(n int) int { return n * 2 }); out.IsOk() {
		t.Fatalf("Map over an error result should stay an error")
	}
}

func TestFlatMapMergesWarnings(t *testing.T) {
	first := OkWithWarnings(2, "first")
	out := FlatMap(first, func(n int) R[int] {
		return OkWithWarnings(n+1, "second")
	})
	v, ok := out.Value()
	if !ok || v != 3 {
		t.Fatalf("FlatMap value = %v, %v", v, ok)
	}
	got := out.Warnings()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("FlatMap warnings = %v, want [first second]", got)
	}
}

func TestApply2AggregatesBothErrors(t *testing.T) {
	a := Err[int](errors.New("left broke"))
	b := Err[string](errors.New("right broke"))
	out := Apply2(a, b, func(int, string) bool { return true })
	if out.IsOk() {
		t.Fatalf("Apply2 with two errors should fail")
	}
	msg := out.Error().Error()
	if !contains(msg, "left broke") || !contains(msg, "right broke") {
		t.Fatalf("Apply2 error %q should mention both causes", msg)
	}
}

func TestApply2SucceedsWhenBothOk(t *testing.T) {
	a := OkWithWarnings(1, "wa")
	b := OkWithWarnings("x", "wb")
	out := Apply2(a, b, func(n int, s string) string {
		return s + string(rune('0'+n))
	})
	v, ok := out.Value()
	if !ok || v != "x1" {
		t.Fatalf("Apply2 value = %v, %v, want x1, true", v, ok)
	}
	if len(out.Warnings()) != 2 {
		t.Fatalf("Apply2 should merge warnings from both sides, got %v", out.Warnings())
	}
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && indexOf(s, sub) >= 0
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
