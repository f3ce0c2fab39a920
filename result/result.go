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

// Package result defines the three-state propagation type used by every
// codec and rule operation in the migration engine: a value succeeded
// outright, succeeded with warnings attached, or failed.
package result

import (
	"fmt"
	"strings"
)

// R is the propagation type for codec/rule operations: success, partial
// success with accumulated warnings, or failure. It replaces exceptions as
// control flow (see DESIGN.md, "DataResult with both value and error").
type R[T any] struct {
	value    T
	warnings []string
	err      error
}

// Ok builds a clean success.
func Ok[T any](v T) R[T] {
	return R[T]{value: v}
}

// OkWithWarnings builds a success-with-warnings result. The value is still
// usable; warnings should be surfaced to the diagnostic stream.
func OkWithWarnings[T any](v T, warnings ...string) R[T] {
	return R[T]{value: v, warnings: warnings}
}

// Err builds a hard failure. There is no usable value.
func Err[T any](err error) R[T] {
	return R[T]{err: err}
}

// Errf builds a hard failure from a format string, avoiding a fmt.Errorf
// import at every call site.
func Errf[T any](format string, args ...any) R[T] {
	return R[T]{err: fmt.Errorf(format, args...)}
}

// IsOk reports whether r carries no error (it may still carry warnings).
func (r R[T]) IsOk() bool { return r.err == nil }

// IsErr reports whether r is a hard failure.
func (r R[T]) IsErr() bool { return r.err != nil }

// HasWarnings reports whether r succeeded but accumulated warnings.
func (r R[T]) HasWarnings() bool { return len(r.warnings) > 0 }

// Warnings returns the accumulated warning messages, empty if none.
func (r R[T]) Warnings() []string { return r.warnings }

// Error returns the failure, or nil if r succeeded (with or without warnings).
func (r R[T]) Error() error { return r.err }

// Value returns the success value and true, or the zero value and false if
// r is a hard failure. Warnings do not suppress the value.
func (r R[T]) Value() (T, bool) {
	if r.err != nil {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Get returns the value assuming success; it panics if r is a hard failure.
// Reserved for call sites that have already checked IsOk.
func (r R[T]) Get() T {
	if r.err != nil {
		panic("result: Get called on error result: " + r.err.Error())
	}
	return r.value
}

// WithWarning appends a warning to r, preserving its ok/err state.
func (r R[T]) WithWarning(w string) R[T] {
	r.warnings = append(append([]string{}, r.warnings...), w)
	return r
}

// Map transforms a successful value, preserving warnings and short-circuiting
// on error.
func Map[A, B any](r R[A], f func(A) B) R[B] {
	if r.err != nil {
		return R[B]{err: r.err}
	}
	return R[B]{value: f(r.value), warnings: r.warnings}
}

// FlatMap chains a result-producing function, merging warnings from both
// stages.
func FlatMap[A, B any](r R[A], f func(A) R[B]) R[B] {
	if r.err != nil {
		return R[B]{err: r.err}
	}
	next := f(r.value)
	if len(r.warnings) > 0 {
		next.warnings = append(append([]string{}, r.warnings...), next.warnings...)
	}
	return next
}

// Apply2 combines two independent results with an applicative constructor:
// both must succeed for the combination to succeed, and error messages from
// both sides aggregate into a single failure when either (or both) fail.
// codec.Pair combines its two halves this way; codec.Record aggregates its
// field errors in its own loop instead of calling Apply2.
func Apply2[A, B, O any](ra R[A], rb R[B], f func(A, B) O) R[O] {
	var msgs []string
	if ra.err != nil {
		msgs = append(msgs, ra.err.Error())
	}
	if rb.err != nil {
		msgs = append(msgs, rb.err.Error())
	}
	if len(msgs) > 0 {
		return Errf[O]("%s", strings.Join(msgs, "; "))
	}
	warnings := append(append([]string{}, ra.warnings...), rb.warnings...)
	return R[O]{value: f(ra.value, rb.value), warnings: warnings}
}
