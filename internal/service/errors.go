package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saadjs/fitlog/internal/store"
)

// ValidationError reports a client-caused problem with an input payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Status() int { return http.StatusBadRequest }

func invalidf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to a record id that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Status() int { return http.StatusNotFound }

// notFoundOr converts store.ErrNotFound into a NotFoundError for resource.
func notFoundOr(err error, resource, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
