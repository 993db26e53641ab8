package ai

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedProviderType = errors.New("unsupported provider type")
	ErrMissingBaseURL          = errors.New("provider requires a base url")
	ErrModelFetchFailed        = errors.New("failed to fetch models")
	ErrEmptyResponse           = errors.New("received empty response from AI provider")
)

// ModelFetchError is returned when a model listing call fails.
// Status carries the backend status text (e.g. "401 Unauthorized").
type ModelFetchError struct {
	Provider   string
	StatusCode int
	Status     string
	Cause      error
}

func (e *ModelFetchError) Error() string {
	switch {
	case e.Status != "":
		return fmt.Sprintf("%s: %s: %s", ErrModelFetchFailed, e.Provider, e.Status)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", ErrModelFetchFailed, e.Provider, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", ErrModelFetchFailed, e.Provider)
	}
}

func (e *ModelFetchError) Unwrap() error { return e.Cause }

func (e *ModelFetchError) Is(target error) bool { return target == ErrModelFetchFailed }

// APIError is a non-OK response from a generation endpoint.
type APIError struct {
	Provider   string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s API error (%s): %s", e.Provider, e.Status, e.Body)
	}
	return fmt.Sprintf("%s API error (%s)", e.Provider, e.Status)
}

// MissingBaseURL builds the error returned when a provider type needs an endpoint.
func MissingBaseURL(p Provider) error {
	return fmt.Errorf("%w: provider %q (%s)", ErrMissingBaseURL, p.Name, p.Type)
}
