package adapter

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dileep-u-k/aegis-gateway/internal/gateway"
)

// APIGatewayV1Codec handles API Gateway REST API proxy integrations.
type APIGatewayV1Codec struct {
	limits Limits
}

var _ EventCodec = (*APIGatewayV1Codec)(nil)

func (c *APIGatewayV1Codec) Name() string { return ShapeAPIGatewayV1 }

func (c *APIGatewayV1Codec) DecodeRequest(payload []byte) (*gateway.Request, error) {
	var event events.APIGatewayProxyRequest
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, gateway.NewAdaptationError("event is not a valid API Gateway proxy request", err)
	}

	// multiValueHeaders carries every value when present; headers keeps only the last.
	var h gateway.Header
	for _, name := range sortedKeys(event.Headers, event.MultiValueHeaders) {
		values, ok := event.MultiValueHeaders[name]
		if !ok {
			values = []string{event.Headers[name]}
		}
		for _, v := range values {
			if err := addHeader(&h, name, v); err != nil {
				return nil, err
			}
		}
	}

	body, err := decodeBody(event.Body, event.IsBase64Encoded, c.limits)
	if err != nil {
		return nil, err
	}
	if err := checkContentLength(h, body); err != nil {
		return nil, err
	}

	target := event.Path
	if q := v1Query(event); q != "" {
		target += "?" + q
	}
	return gateway.NewRequest(event.HTTPMethod, target, h, body)
}

func v1Query(event events.APIGatewayProxyRequest) string {
	values := url.Values{}
	for k, vs := range event.MultiValueQueryStringParameters {
		values[k] = append([]string(nil), vs...)
	}
	for k, v := range event.QueryStringParameters {
		if _, ok := values[k]; !ok {
			values.Set(k, v)
		}
	}
	return values.Encode()
}

func (c *APIGatewayV1Codec) EncodeResponse(resp *gateway.Response) ([]byte, error) {
	body, b64 := encodeBody(resp)
	payload, err := json.Marshal(events.APIGatewayProxyResponse{
		StatusCode:      resp.Status(),
		Headers:         resp.Header().Map(),
		Body:            body,
		IsBase64Encoded: b64,
	})
	if err != nil {
		return nil, fmt.Errorf("encode api gateway reply: %w", err)
	}
	return checkReplySize(payload, c.limits)
}

// APIGatewayV2Codec handles API Gateway HTTP API events (payload format 2.0),
// which is also the shape of Lambda function URLs.
type APIGatewayV2Codec struct {
	limits Limits
}

var _ EventCodec = (*APIGatewayV2Codec)(nil)

func (c *APIGatewayV2Codec) Name() string { return ShapeAPIGatewayV2 }

func (c *APIGatewayV2Codec) DecodeRequest(payload []byte) (*gateway.Request, error) {
	var event events.APIGatewayV2HTTPRequest
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, gateway.NewAdaptationError("event is not a valid API Gateway HTTP request", err)
	}

	var h gateway.Header
	for _, name := range sortedKeys(event.Headers, nil) {
		if err := addHeader(&h, name, event.Headers[name]); err != nil {
			return nil, err
		}
	}
	// Payload format 2.0 moves cookies out of the headers.
	for _, cookie := range event.Cookies {
		if err := addHeader(&h, "Cookie", cookie); err != nil {
			return nil, err
		}
	}

	body, err := decodeBody(event.Body, event.IsBase64Encoded, c.limits)
	if err != nil {
		return nil, err
	}
	if err := checkContentLength(h, body); err != nil {
		return nil, err
	}

	path := event.RawPath
	if path == "" {
		path = event.RequestContext.HTTP.Path
	}
	if event.RawQueryString != "" {
		path += "?" + event.RawQueryString
	}
	return gateway.NewRequest(event.RequestContext.HTTP.Method, path, h, body)
}

func (c *APIGatewayV2Codec) EncodeResponse(resp *gateway.Response) ([]byte, error) {
	body, b64 := encodeBody(resp)
	payload, err := json.Marshal(events.APIGatewayV2HTTPResponse{
		StatusCode:      resp.Status(),
		Headers:         resp.Header().Map(),
		Body:            body,
		IsBase64Encoded: b64,
	})
	if err != nil {
		return nil, fmt.Errorf("encode api gateway reply: %w", err)
	}
	return checkReplySize(payload, c.limits)
}

// sortedKeys returns the union of both maps' keys in sorted order.
func sortedKeys(single map[string]string, multi map[string][]string) []string {
	seen := make(map[string]bool, len(single)+len(multi))
	keys := make([]string, 0, len(single)+len(multi))
	for k := range single {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range multi {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
