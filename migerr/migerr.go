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

// Package migerr defines the error taxonomy shared across the tree, codec,
// schema, rule and engine packages. It follows the shape of
// cue/errors.Message in the teacher package: a deferred-format message
// instead of a pre-rendered string, so call sites stay cheap until an error
// actually needs printing. Unlike cue/errors, there is no source Position:
// this engine has no parser, so position tracking is dropped (see
// DESIGN.md, "Dropped source comment/position tracking").
package migerr

import "fmt"

// Kind identifies one of this module's error categories. Kind is
// used for programmatic dispatch (errors.Is compares Kinds; see also
// IsHard); Error.Error() carries the human-readable text.
type Kind int

const (
	// TypeMismatch: a tree classification check failed.
	TypeMismatch Kind = iota
	// UnresolvedType: a Ref could not be resolved in the active schema chain.
	UnresolvedType
	// FieldMissing: a non-optional field expected by a codec was absent.
	FieldMissing
	// RangeViolation: a bounded codec saw an out-of-range value.
	RangeViolation
	// DuplicateRegistration: two schemas at the same version, or two fixes
	// with identical (name, from, to).
	DuplicateRegistration
	// FrozenMutation: a write was attempted against a frozen registry.
	FrozenMutation
	// CodecError: a generic encode/decode failure not covered by a more
	// specific kind above.
	CodecError
	// PartialDecode: a list codec decoded some elements and not others.
	PartialDecode
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case UnresolvedType:
		return "UnresolvedType"
	case FieldMissing:
		return "FieldMissing"
	case RangeViolation:
		return "RangeViolation"
	case DuplicateRegistration:
		return "DuplicateRegistration"
	case FrozenMutation:
		return "FrozenMutation"
	case CodecError:
		return "CodecError"
	case PartialDecode:
		return "PartialDecode"
	default:
		return "Unknown"
	}
}

// Error is the concrete error value every package in this module returns.
// It is a value, never a panic, for anything that can be triggered by user
// data; panics are reserved for internal invariant violations that user
// data can never cause.
type Error struct {
	Kind    Kind
	format  string
	args    []any
	Wrapped error
}

// New creates an Error of the given kind with a deferred-format message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, format: format, args: args}
}

// Wrap attaches a cause to an Error, preserving Kind for dispatch while
// keeping the original error reachable through Unwrap.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, format: format, args: args, Wrapped: cause}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf(e.format, e.args...)
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, migerr.New(migerr.RangeViolation, "")) style checks
// against the zero-arg sentinel helpers below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel constructs a bare Error of the given kind, useful only as an
// errors.Is comparison target (its message is never rendered).
func Sentinel(kind Kind) *Error { return &Error{Kind: kind, format: ""} }

// TypeMismatchf reports a tree classification mismatch.
func TypeMismatchf(format string, args ...any) *Error {
	return New(TypeMismatch, format, args...)
}

// UnresolvedTypef reports an unresolved Ref.
func UnresolvedTypef(format string, args ...any) *Error {
	return New(UnresolvedType, format, args...)
}

// FieldMissingf reports an absent required field.
func FieldMissingf(format string, args ...any) *Error {
	return New(FieldMissing, format, args...)
}

// RangeViolationf reports an out-of-range bounded value.
func RangeViolationf(format string, args ...any) *Error {
	return New(RangeViolation, format, args...)
}

// DuplicateRegistrationf reports a conflicting registry insert.
func DuplicateRegistrationf(format string, args ...any) *Error {
	return New(DuplicateRegistration, format, args...)
}

// FrozenMutationf reports a write attempt on a frozen registry.
func FrozenMutationf(format string, args ...any) *Error {
	return New(FrozenMutation, format, args...)
}

// CodecErrorf reports a generic codec failure.
func CodecErrorf(format string, args ...any) *Error {
	return New(CodecError, format, args...)
}

// IsHard reports whether a Kind always aborts a migration outright.
// PartialDecode is the one kind that is soft by construction; everything
// else is hard.
func (k Kind) IsHard() bool {
	return k != PartialDecode
}
