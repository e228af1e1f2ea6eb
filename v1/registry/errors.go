package registry

import (
	"errors"
	"fmt"
)

// Common registry errors
var (
	// ErrNotFound is returned when a schema, subject, or version does not
	// exist in the registry.
	ErrNotFound = errors.New("registry: not found")

	// ErrMissingURL is returned by NewClient when no endpoint is configured.
	ErrMissingURL = errors.New("registry: URL is required")
)

// StatusError is returned when the registry responds with an unexpected
// HTTP status. The response body is preserved for diagnostics; registries
// put their error code and message there.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registry: unexpected status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound checks if the error means the requested schema, subject, or
// version does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
