package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the Ollama server could not be reached.
	ErrUnavailable = errors.New("language model server unavailable")

	ErrTimeout = errors.New("language model request timed out")

	// ErrInvalidOutput means the reply could not be decoded into the
	// expected structure.
	ErrInvalidOutput = errors.New("invalid language model output")

	// ErrRequestFailed covers every other failed call.
	ErrRequestFailed = errors.New("language model request failed")
)

// StatusError is a non-200 reply from the server.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Body)
}

// Code maps an error to the short label used in call events.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "FAILED"
	}
}
