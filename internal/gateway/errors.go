package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dileep-u-k/aegis-gateway/internal/tools"
)

// ErrorBody is the structured body of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AdaptationError reports a native invocation payload that could not be turned
// into a Request. It is surfaced as 400.
type AdaptationError struct {
	Reason string
	Err    error
}

func NewAdaptationError(reason string, err error) *AdaptationError {
	return &AdaptationError{Reason: reason, Err: err}
}

func (e *AdaptationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("adapt request: %s: %v", e.Reason, e.Err)
	}
	return "adapt request: " + e.Reason
}

func (e *AdaptationError) Unwrap() error { return e.Err }

// RouteNotFound reports a request no binding matches. It is surfaced as 404.
type RouteNotFound struct {
	Method string
	Path   string
}

func (e *RouteNotFound) Error() string {
	return fmt.Sprintf("no route for %s %s", e.Method, e.Path)
}

// RequestError is a body-level rejection by a handler, surfaced as 400 with
// Code as the error kind.
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string { return e.Code + ": " + e.Message }

// HandlerFault wraps an uncaught failure inside a handler. It is surfaced as
// 500 with a generic body; Err is only ever logged.
type HandlerFault struct {
	Route string
	Err   error
}

func (e *HandlerFault) Error() string {
	return fmt.Sprintf("handler %s: %v", e.Route, e.Err)
}

func (e *HandlerFault) Unwrap() error { return e.Err }

var internalErrorBody = ErrorBody{Error: "internal_error", Message: "internal server error"}

// ErrorResponse converts any error into a Response. It never fails.
func ErrorResponse(err error) *Response {
	var (
		adaptErr *AdaptationError
		reqErr   *RequestError
		notFound *RouteNotFound
		collab   *tools.CollaboratorError
	)
	switch {
	case errors.As(err, &adaptErr):
		return errorJSON(http.StatusBadRequest, ErrorBody{Error: "adaptation_error", Message: adaptErr.Reason})
	case errors.As(err, &reqErr):
		return errorJSON(http.StatusBadRequest, ErrorBody{Error: reqErr.Code, Message: reqErr.Message})
	case errors.As(err, &notFound):
		return errorJSON(http.StatusNotFound, ErrorBody{Error: "not_found", Message: notFound.Error()})
	case errors.As(err, &collab):
		return errorJSON(collab.HTTPStatus(), ErrorBody{Error: string(collab.Kind), Message: collab.Message})
	default:
		return errorJSON(http.StatusInternalServerError, internalErrorBody)
	}
}

func errorJSON(status int, body ErrorBody) *Response {
	raw, _ := json.Marshal(body)
	var h Header
	h.Set(headerContent, contentTypeJSON)
	return &Response{status: status, header: h, body: raw}
}
