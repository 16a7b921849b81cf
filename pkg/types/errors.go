// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a submission failure. Every failure is terminal for
// that submission; nothing is retried automatically.
type ErrorKind string

const (
	// KindValidation covers missing, oversized, or malformed input,
	// rejected before any external call.
	KindValidation ErrorKind = "validation"

	// KindUnauthenticated covers a missing or invalid session credential.
	KindUnauthenticated ErrorKind = "unauthenticated"

	// KindRateLimited maps a gateway 429.
	KindRateLimited ErrorKind = "rate_limited"

	// KindPaymentRequired maps a gateway 402.
	KindPaymentRequired ErrorKind = "payment_required"

	// KindUpstream covers any other non-2xx gateway response.
	KindUpstream ErrorKind = "upstream"

	// KindParseFailure means the model replied but the reply was not valid
	// JSON. The raw text is preserved for operator review.
	KindParseFailure ErrorKind = "parse_failure"

	// KindPersistence means a result was obtained but could not be saved.
	// Non-fatal: the in-memory result is still shown.
	KindPersistence ErrorKind = "persistence"

	// KindTimeout means the client-side processing bound was exceeded.
	KindTimeout ErrorKind = "timeout"
)

// Error is a classified failure. Raw carries the model's verbatim reply for
// parse failures so callers can show the operator what the model said.
type Error struct {
	Kind ErrorKind
	Msg  string
	Raw  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg != "" {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError classifies an underlying error.
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the classification from err. Unclassified errors report
// KindUpstream, the generic "something external broke" bucket.
func KindOf(err error) ErrorKind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUpstream
}

// RawOf returns the preserved model reply attached to err, if any.
func RawOf(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Raw
	}
	return ""
}
