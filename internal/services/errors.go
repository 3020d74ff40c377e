package services

import "fmt"

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// ProviderError is a failed call to an external provider. Transient marks
// failures that could in principle succeed on retry (rate limits, timeouts,
// 5xx); the fallback loop advances on either kind, the flag is kept for
// observability and error reporting.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Transient  bool
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// AllModelsExhaustedError is returned when every candidate in the fallback
// list has failed. LastErr is the final underlying cause.
type AllModelsExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *AllModelsExhaustedError) Error() string {
	return fmt.Sprintf("all %d model candidates failed: %v", e.Attempts, e.LastErr)
}

func (e *AllModelsExhaustedError) Unwrap() error { return e.LastErr }
