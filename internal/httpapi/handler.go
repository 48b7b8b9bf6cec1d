package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var (
	errNoRoute          = errors.New("route not found")
	errMethodNotAllowed = errors.New("method not allowed")
)

// Error is a handler error that knows its HTTP status.
type Error interface {
	error
	Status() int
}

// StatusError attaches a status code to an error raised by the HTTP layer itself.
type StatusError struct {
	Code int
	Err  error
}

func (se StatusError) Error() string {
	return se.Err.Error()
}

func (se StatusError) Status() int {
	return se.Code
}

func (se StatusError) Unwrap() error {
	return se.Err
}

func badRequest(format string, args ...any) error {
	return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf(format, args...)}
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts a handlerFunc, writing any returned error as a {message} body.
func (s *Server) handle(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e Error
	if errors.As(err, &e) {
		if e.Status() >= http.StatusInternalServerError {
			s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		}
		_ = writeJSON(w, e.Status(), errorBody{Message: e.Error()})
		return
	}
	s.logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	_ = writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal server error"})
}

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a single JSON value from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("request body is required")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return badRequest("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type))
		}
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "list"
	default:
		return "object"
	}
}
