package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dileep-u-k/aegis-gateway/internal/tools"
)

// Liveness returns the GET / handler. The body is encoded once, so every
// call returns identical bytes.
func Liveness(service string) (HandlerFunc, error) {
	if service == "" {
		return nil, fmt.Errorf("service name is required")
	}
	resp, err := JSON(http.StatusOK, map[string]string{"status": service + " is online"})
	if err != nil {
		return nil, err
	}
	return func(context.Context, *Request) (*Response, error) {
		return resp, nil
	}, nil
}

// Discover returns the POST / handler serving the pre-encoded manifest.
func Discover(document []byte, etag string) HandlerFunc {
	resp, _ := RawJSON(http.StatusOK, document)
	if etag != "" {
		resp = resp.WithHeader("ETag", etag)
	}
	return func(context.Context, *Request) (*Response, error) {
		return resp, nil
	}
}

// InvokeTool returns the handler for one catalog tool. The body is checked
// against the tool's schema before the tool runs; a positive timeout bounds
// the tool call.
func InvokeTool(entry *tools.Entry, timeout time.Duration) HandlerFunc {
	path := entry.Definition().Path
	return func(ctx context.Context, req *Request) (*Response, error) {
		body := req.Body()
		if err := entry.Validate(body); err != nil {
			var argErr *tools.ArgumentError
			switch {
			case errors.Is(err, tools.ErrMalformedArguments):
				return nil, &RequestError{Code: "invalid_json", Message: "request body must be a well-formed JSON document"}
			case errors.As(err, &argErr):
				return nil, &RequestError{Code: "invalid_request", Message: strings.Join(argErr.Problems, "; ")}
			default:
				return nil, &HandlerFault{Route: path, Err: err}
			}
		}

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		result, err := entry.Invoke(ctx, body)
		if err != nil {
			var collab *tools.CollaboratorError
			if errors.As(err, &collab) {
				return nil, collab
			}
			return nil, &HandlerFault{Route: path, Err: err}
		}
		return JSON(http.StatusOK, result)
	}
}
