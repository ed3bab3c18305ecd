/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured errors with stable codes for the
// attribute verification engine and the surrounding admission service.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure in a stable, machine-readable way.
type ErrorCode string

// Verification rejection codes. Every code maps to descriptive text via Text.
const (
	// ErrCodeBadValue is the generic "value missing, malformed, or out of
	// the allowed grammar/range" rejection.
	ErrCodeBadValue ErrorCode = "BAD_ATTRIBUTE_VALUE"

	// ErrCodeBadHost is returned when an ACL host part fails resolution or
	// does not match its resolved fully-qualified form.
	ErrCodeBadHost ErrorCode = "BAD_HOST"

	// ErrCodeJobNameTooLong is returned when a job or reservation name
	// exceeds the name length limit.
	ErrCodeJobNameTooLong ErrorCode = "JOB_NAME_TOO_LONG"

	// ErrCodeValueOutOfRange is returned for range-string values whose
	// bounds are syntactically valid but out of range.
	ErrCodeValueOutOfRange ErrorCode = "VALUE_OUT_OF_RANGE"

	// License bound violations carry attribute-specific codes so callers
	// can surface which limit was broken.
	ErrCodeLicenseMinBadValue    ErrorCode = "LICENSE_MIN_BAD_VALUE"
	ErrCodeLicenseMaxBadValue    ErrorCode = "LICENSE_MAX_BAD_VALUE"
	ErrCodeLicenseLingerBadValue ErrorCode = "LICENSE_LINGER_BAD_VALUE"
)

// Service and system codes.
const (
	// ErrCodeSystem is a fatal local failure (resource exhaustion, broken
	// reporter, unreadable tables). It is never a user input error.
	ErrCodeSystem ErrorCode = "SYSTEM_FAILURE"

	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrCodeMethodNotAllowed  ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeUnavailable       ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout           ErrorCode = "TIMEOUT"
)

// errorText maps codes to the generic human-readable rendering used when a
// verifier rejects without composing a more specific message.
var errorText = map[ErrorCode]string{
	ErrCodeBadValue:              "Illegal attribute or resource value",
	ErrCodeBadHost:               "Access from host not allowed, or unknown host",
	ErrCodeJobNameTooLong:        "Job name is too long",
	ErrCodeValueOutOfRange:       "Requested range outside of allowed values",
	ErrCodeLicenseMinBadValue:    "Bad value for license_min",
	ErrCodeLicenseMaxBadValue:    "Bad value for license_max",
	ErrCodeLicenseLingerBadValue: "Bad value for license_linger_time",
	ErrCodeSystem:                "System error occurred",
	ErrCodeInternal:              "Internal error",
	ErrCodeInvalidRequest:        "Invalid request",
	ErrCodeMethodNotAllowed:      "Method not allowed",
	ErrCodeRateLimitExceeded:     "Rate limit exceeded",
	ErrCodeUnavailable:           "Service unavailable",
	ErrCodeTimeout:               "Request timed out",
}

// Text returns the descriptive text for a code. Unknown codes return an
// empty string; callers must fall back to a generic rendering.
func Text(code ErrorCode) string {
	return errorText[code]
}

// Error is a structured error carrying a stable code, a message intended
// for the requesting user, optional details, and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a structured error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a structured error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps a cause with a code and message.
func Wrap(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// WrapWithContext wraps a cause and attaches structured details.
func WrapWithContext(code ErrorCode, message string, err error, details map[string]any) *Error {
	return &Error{Code: code, Message: message, Err: err, Details: details}
}

// CodeOf extracts the code from an error. Non-structured errors map to
// ErrCodeInternal; nil maps to the empty code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// MessageOf extracts the user-facing message from an error, or an empty
// string when none was attached.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// IsSystem reports whether err is a fatal local failure rather than a
// validation rejection. Callers use this to avoid presenting resource
// exhaustion as a user input error.
func IsSystem(err error) bool {
	switch CodeOf(err) {
	case ErrCodeSystem, ErrCodeInternal:
		return true
	}
	return false
}
