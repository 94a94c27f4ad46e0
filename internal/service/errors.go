package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMemoNotFound indicates the referenced memo does not exist.
	ErrMemoNotFound = errors.New("memo not found")
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden indicates the memo exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering or updating to an email
	// that already belongs to another account.
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError reports one or more rejected input fields. Nothing is
// persisted when a ValidationError is returned.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) add(field, message string) {
	if _, dup := e.Fields[field]; !dup {
		e.Fields[field] = message
	}
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
