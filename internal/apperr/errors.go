// Package apperr holds the error taxonomy shared by the sign-in and
// onboarding flows. None of these errors is fatal to the process.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Kind string

const (
	// KindNoCallbackData: the OAuth redirect carried nothing to parse.
	KindNoCallbackData Kind = "no_callback_data"
	// KindMissingToken: the redirect lacked the access or refresh token.
	KindMissingToken Kind = "missing_token"
	// KindProfileFetch: profile lookup failed at the storage service.
	KindProfileFetch Kind = "profile_fetch"
	// KindProfileCreate: stub profile insert failed at the storage service.
	KindProfileCreate Kind = "profile_create"
	// KindValidation: the onboarding form failed field rules.
	KindValidation Kind = "validation"
	// KindSave: the onboarding upsert failed.
	KindSave Kind = "save"
)

// Error is the unified error contract across packages.
type Error struct {
	Kind    Kind
	Op      string            // operation name, ex: "bootstrap.Decide"
	Message string            // safe message
	Fields  map[string]string // field-scoped messages for KindValidation
	Err     error             // wrapped error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(string(e.Kind))
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s: %s", k, e.Fields[k])
		}
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNoCallbackData = &Error{Kind: KindNoCallbackData}
	ErrMissingToken   = &Error{Kind: KindMissingToken}
	ErrProfileFetch   = &Error{Kind: KindProfileFetch}
	ErrProfileCreate  = &Error{Kind: KindProfileCreate}
	ErrValidation     = &Error{Kind: KindValidation}
	ErrSave           = &Error{Kind: KindSave}
)

func E(kind Kind, op, msg string, err error) error {
	return &Error{Kind: kind, Op: op, Message: msg, Err: err}
}

// Validation builds a KindValidation error, or returns nil when fields is empty.
func Validation(op string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Kind: KindValidation, Op: op, Message: "invalid form", Fields: fields}
}

// KindOf returns the kind of the first *Error in the chain, or "".
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// FieldErrors returns the field messages carried by a validation error.
func FieldErrors(err error) map[string]string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind == KindValidation {
		return ae.Fields
	}
	return nil
}
