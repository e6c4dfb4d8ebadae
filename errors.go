// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the category of a chunkcodec error, independent of the
// message text or the field path it occurred at.
type Kind string

// Error kinds, matching the taxonomy every implementation of this wire
// format is expected to expose.
const (
	KindUnexpectedEndOfInput Kind = "unexpected_end_of_input"
	KindValueOutOfRange      Kind = "value_out_of_range"
	KindInvalidCharacter     Kind = "invalid_character"
	KindInvalidUTF8          Kind = "invalid_utf8"
	KindArrayLengthMismatch  Kind = "array_length_mismatch"
	KindMissingField         Kind = "missing_field"
	KindUnknownConstructor   Kind = "unknown_constructor"
	KindUnresolvedReference  Kind = "unresolved_reference"
	KindTypeRegistryConflict Kind = "type_registry_conflict"
	KindTypeRegistryMiss     Kind = "type_registry_miss"
	KindIncompatibleVersion  Kind = "incompatible_version"
	KindMalformedHeader      Kind = "malformed_header"
	KindCorruptedChunkMap    Kind = "corrupted_chunk_map"
)

// Error is the structured error type chunkcodec's encode and decode APIs
// return (RegisterCodec reports a conflict as *registry.ConflictError
// instead). Callers can use errors.As to extract the structured information:
//
//	var cerr *chunkcodec.Error
//	if errors.As(err, &cerr) {
//	    if cerr.Kind == chunkcodec.KindMissingField { ... }
//	}
type Error struct {
	// Kind categorizes the failure.
	Kind Kind
	// Message is a human-readable description.
	Message string
	// FieldPath is the nesting at which the error occurred, outermost
	// first. The evolution engine adds record field names and the
	// collection combinators add "[i]" element indexes as an error
	// propagates up; it is empty for an error from a bare primitive.
	FieldPath []string
	// Err is the wrapped underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if len(e.FieldPath) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.FieldPath, "."))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError constructs an *Error of the given kind with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError constructs an *Error of the given kind wrapping cause.
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// WithField prepends name to err's field path if err is a *Error,
// otherwise wraps err in a new *Error of KindMissingField carrying just
// that path segment. Used by the evolution engine and the collection
// combinators to build up the field path as an error propagates out.
func WithField(err error, name string) error {
	var cerr *Error
	if errors.As(err, &cerr) {
		next := &Error{
			Kind:      cerr.Kind,
			Message:   cerr.Message,
			Err:       cerr.Err,
			FieldPath: append([]string{name}, cerr.FieldPath...),
		}
		return next
	}
	return &Error{Kind: KindMissingField, Message: err.Error(), FieldPath: []string{name}, Err: err}
}

// IsKind reports whether err is a *Error of the given kind, unwrapping as
// errors.As does.
func IsKind(err error, kind Kind) bool {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind == kind
	}
	return false
}

// Sentinel errors for the common end-of-input case, so callers that only
// care about that one condition can use errors.Is without pattern
// matching on Kind.
var ErrUnexpectedEndOfInput = &Error{Kind: KindUnexpectedEndOfInput, Message: "unexpected end of input"}
