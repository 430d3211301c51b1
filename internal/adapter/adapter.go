// Package adapter converts between the native invocation payloads of the
// hosting runtimes and the gateway's uniform Request and Response.
//
// Each runtime shape is one strategy, picked once at process start:
//
//   - "http": a pre-parsed *http.Request (Vercel Go functions, local server); see FromHTTP and WriteHTTP.
//   - "vercel": the Vercel invoke envelope, a JSON document whose body holds the request.
//   - "apigw-v1": an API Gateway REST API proxy event.
//   - "apigw-v2": an API Gateway HTTP API (payload format 2.0) event.
package adapter

import (
	"errors"
	"fmt"

	"github.com/dileep-u-k/aegis-gateway/internal/gateway"
)

const (
	ShapeHTTP         = "http"
	ShapeVercel       = "vercel"
	ShapeAPIGatewayV1 = "apigw-v1"
	ShapeAPIGatewayV2 = "apigw-v2"
)

// ErrResponseTooLarge reports a reply that does not fit the runtime's payload limit.
var ErrResponseTooLarge = errors.New("response exceeds the runtime payload limit")

// Limits bounds payload sizes. Zero values mean no limit.
type Limits struct {
	MaxRequestBytes  int64
	MaxResponseBytes int
}

// RequestAdapter turns a native invocation payload into a uniform request.
// Malformed payloads fail with *gateway.AdaptationError.
type RequestAdapter interface {
	DecodeRequest(payload []byte) (*gateway.Request, error)
}

// ResponseAdapter turns a uniform response into the native reply payload.
// An error here means no valid reply can be produced.
type ResponseAdapter interface {
	EncodeResponse(resp *gateway.Response) ([]byte, error)
}

// EventCodec is the pair of adapters for one byte-oriented runtime shape.
type EventCodec interface {
	Name() string
	RequestAdapter
	ResponseAdapter
}

// NewEventCodec returns the codec for an event-based runtime shape.
func NewEventCodec(shape string, limits Limits) (EventCodec, error) {
	switch shape {
	case ShapeVercel:
		return &VercelCodec{limits: limits}, nil
	case ShapeAPIGatewayV1:
		return &APIGatewayV1Codec{limits: limits}, nil
	case ShapeAPIGatewayV2:
		return &APIGatewayV2Codec{limits: limits}, nil
	case ShapeHTTP:
		return nil, fmt.Errorf("runtime shape %q is not event based; use FromHTTP and WriteHTTP", shape)
	default:
		return nil, fmt.Errorf("unknown runtime shape %q", shape)
	}
}
