package imagegen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredential marks a provider that has no credential configured.
var ErrMissingCredential = errors.New("API key not configured")

// ErrNoImages is returned by parsers that found no image entries.
var ErrNoImages = errors.New("no images in response")

// ValidationError is returned when a request is rejected before any
// provider is contacted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProviderConfigurationError means a provider was skipped because it is not
// usable as configured.
type ProviderConfigurationError struct {
	Provider string
	Err      error
}

func (e *ProviderConfigurationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderConfigurationError) Unwrap() error {
	return e.Err
}

// ProviderRequestError is a failed call to a provider: transport failure,
// non-success status, or a response that yielded no images.
type ProviderRequestError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderRequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(" API error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": %d", e.StatusCode)
	}
	if e.Body != "" {
		b.WriteString(" - ")
		b.WriteString(e.Body)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ProviderRequestError) Unwrap() error {
	return e.Err
}

// Attempt records what happened to one candidate in the fallback chain.
type Attempt struct {
	Provider string
	Model    string
	Skipped  bool
	Err      error
}

// ExhaustionError is returned when every candidate was skipped or failed.
type ExhaustionError struct {
	Attempts []Attempt
}

func (e *ExhaustionError) Error() string {
	if len(e.Attempts) == 0 {
		return "all image generation providers failed: no providers configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Err.Error())
	}
	return "all image generation providers failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the per-provider errors to errors.Is and errors.As.
func (e *ExhaustionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}
