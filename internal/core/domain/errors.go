package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGatewayUnavailable indicates a remote Arke service call failed
	// at the transport level (search, manifest, content or OCR).
	ErrGatewayUnavailable = errors.New("gateway unavailable")

	// ErrManifestFetch indicates an entity manifest could not be retrieved.
	ErrManifestFetch = errors.New("manifest fetch failed")
)

// GatewayError describes a failed call to one of the remote Arke services.
// StatusCode is zero when the request never produced a response.
type GatewayError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": gateway unavailable"
	}
}

// Unwrap returns the underlying transport error, if any.
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrGatewayUnavailable.
func (e *GatewayError) Is(target error) bool {
	return target == ErrGatewayUnavailable
}

// IsNotFound reports whether err is a gateway 404.
func IsNotFound(err error) bool {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.StatusCode == 404
	}
	return errors.Is(err, ErrNotFound)
}

// ManifestFetchError is fatal to the resolution of one entity.
type ManifestFetchError struct {
	PI  string
	Err error
}

func (e *ManifestFetchError) Error() string {
	return fmt.Sprintf("fetch manifest for %s: %v", e.PI, e.Err)
}

func (e *ManifestFetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrManifestFetch.
func (e *ManifestFetchError) Is(target error) bool {
	return target == ErrManifestFetch
}

// ComponentFetchError records one named component that could not be fetched.
// It never aborts resolution; it is stored inline in ResolvedEntity.ComponentData.
type ComponentFetchError struct {
	Component string
	ContentID string
	Err       error
}

func (e *ComponentFetchError) Error() string {
	return fmt.Sprintf("fetch component %q (%s): %v", e.Component, e.ContentID, e.Err)
}

func (e *ComponentFetchError) Unwrap() error {
	return e.Err
}

// ValidationError reports caller-supplied parameters that violate the
// shape or cardinality constraints of a tool.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message, hint string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Hint: hint}
}
