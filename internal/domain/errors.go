package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports malformed or out-of-range input. It is raised
// before any side effect takes place.
type ValidationError struct {
	Field   string
	Message string
	Details []string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + " " + e.Message
	}
	if len(e.Details) > 0 {
		msg += ": " + strings.Join(e.Details, "; ")
	}
	return msg
}

// ErrNotFound matches any NotFoundError with errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a reference to an id that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// GenerationKind classifies a generation failure.
type GenerationKind string

const (
	GenerationFailed        GenerationKind = "failed"
	GenerationEmpty         GenerationKind = "empty"
	GenerationUnparseable   GenerationKind = "unparseable"
	GenerationShapeMismatch GenerationKind = "shape_mismatch"
	GenerationTimeout       GenerationKind = "timeout"
)

// ErrGenerationTimeout matches any GenerationError of kind GenerationTimeout.
var ErrGenerationTimeout = errors.New("generation timed out")

// GenerationError reports a failed, empty, unparseable or mis-shaped answer
// from the generation capability.
type GenerationError struct {
	Kind GenerationKind
	Op   string
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: generation %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: generation %s", e.Op, e.Kind)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationTimeout && e.Kind == GenerationTimeout
}

// ExternalServiceError reports a document export/import failure. Message is
// meant for operators and is passed through to the client.
type ExternalServiceError struct {
	Service string
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
