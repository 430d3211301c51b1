package tools

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// CollaboratorKind names a failure reported by an external collaborator.
type CollaboratorKind string

const (
	KindNetworkFailure     CollaboratorKind = "NetworkFailure"
	KindParseFailure       CollaboratorKind = "ParseFailure"
	KindServiceUnavailable CollaboratorKind = "ServiceUnavailable"
	KindInvalidQuery       CollaboratorKind = "InvalidQuery"
)

// CollaboratorError is a named failure from a service a tool depends on.
// Message is meant for the caller; Err is kept for logs only.
type CollaboratorError struct {
	Service string
	Kind    CollaboratorKind
	Message string
	Err     error
}

// NewCollaboratorError builds a CollaboratorError.
func NewCollaboratorError(service string, kind CollaboratorKind, message string, err error) *CollaboratorError {
	return &CollaboratorError{Service: service, Kind: kind, Message: message, Err: err}
}

func (e *CollaboratorError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Service, e.Kind, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// HTTPStatus maps the failure kind to the status returned to the caller.
func (e *CollaboratorError) HTTPStatus() int {
	if e.Kind == KindServiceUnavailable {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

// ErrMalformedArguments reports a request body that is not well-formed JSON.
var ErrMalformedArguments = errors.New("request body is not well-formed JSON")

// ArgumentError reports a well-formed request body that violates the tool's schema.
type ArgumentError struct {
	Path     string
	Problems []string
}

func (e *ArgumentError) Error() string {
	if len(e.Problems) == 0 {
		return fmt.Sprintf("request body for %s does not match its schema", e.Path)
	}
	return fmt.Sprintf("request body for %s does not match its schema: %s", e.Path, strings.Join(e.Problems, "; "))
}
