package store

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is against the typed errors below.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
)

// ValidationError reports a malformed draft or argument.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an unresolved question or answer id.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PermissionError reports an action attempted by a user who may not perform it.
type PermissionError struct {
	Action string
	UserID string
}

func (e *PermissionError) Error() string {
	who := e.UserID
	if who == "" {
		who = "anonymous"
	}
	return fmt.Sprintf("user %s may not %s", who, e.Action)
}

func (e *PermissionError) Is(target error) bool { return target == ErrPermission }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func questionNotFound(id int64) error {
	return &NotFoundError{Kind: "question", ID: id}
}

func answerNotFound(id int64) error {
	return &NotFoundError{Kind: "answer", ID: id}
}
