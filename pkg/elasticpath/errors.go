package elasticpath

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("entity not found")

// APIError represents a non-2xx response from the Elastic Path API
type APIError struct {
	Operation string
	Status    int
	Message   string
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("Elastic Path API error during %s (status %d): %s", e.Operation, e.Status, e.Message)
}
