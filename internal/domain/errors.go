package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrMalformedResponse   = errors.New("malformed provider response")
)

// Phase names a single outbound call in an agent creation sequence.
type Phase string

const (
	PhaseCreateLLM   Phase = "create-llm"
	PhaseCreateAgent Phase = "create-agent"
)

// ValidationError is returned for requests rejected before any provider call.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError carries a provider's non-success response. Body is kept
// verbatim so callers can relay it untouched. StatusCode is zero when the
// call never got a response.
type UpstreamError struct {
	Provider   Provider
	Phase      Phase
	StatusCode int
	Body       []byte
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Phase, e.Err)
	}
	return fmt.Sprintf("%s %s returned status %d: %s", e.Provider, e.Phase, e.StatusCode, string(e.Body))
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is a ValidationError or an
// unsupported provider, both of which are client errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrUnsupportedProvider)
}
