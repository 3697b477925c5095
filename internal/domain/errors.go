package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentNotFound signals a get-by-id that matched nothing.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// QueryError reports user-supplied search parameters that violate a
// validation rule. The caller can recover by correcting the input; it is
// never retried automatically.
type QueryError struct {
	Field string
	Msg   string
}

func (e *QueryError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NewQueryError creates a QueryError for the given parameter field.
func NewQueryError(field, format string, args ...any) *QueryError {
	return &QueryError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// FetchError reports a non-success status from the search engine.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("received status code %d from search engine", e.StatusCode)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// DocumentNotFoundError wraps ErrDocumentNotFound with the requested id.
type DocumentNotFoundError struct {
	ID string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDocumentNotFound.Error(), e.ID)
}

func (e *DocumentNotFoundError) Unwrap() error { return ErrDocumentNotFound }
