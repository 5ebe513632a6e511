package llm

import "errors"

var (
	// ErrUnavailable indicates the generation backend is unreachable.
	ErrUnavailable = errors.New("llm backend unavailable")

	// ErrNotConfigured indicates the selected provider lacks credentials.
	ErrNotConfigured = errors.New("llm provider not configured")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrEmptyResponse indicates the backend answered with no text.
	ErrEmptyResponse = errors.New("llm returned empty response")

	// ErrInvalidOutput indicates the LLM response could not be parsed as JSON.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrShapeMismatch indicates the response parsed but lacks required fields.
	ErrShapeMismatch = errors.New("llm output does not match expected shape")
)
