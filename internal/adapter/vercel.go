package adapter

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dileep-u-k/aegis-gateway/internal/gateway"
)

// VercelCodec handles the Vercel invoke envelope:
//
//	{"Action": "Invoke", "body": "<JSON request document>"}
//
// where the request document is {method, path, host, headers, encoding, body}.
// The reply is {statusCode, headers, encoding, body}.
type VercelCodec struct {
	limits Limits
}

var _ EventCodec = (*VercelCodec)(nil)

type vercelEvent struct {
	Action string `json:"Action"`
	Body   string `json:"body"`
}

type vercelRequest struct {
	Method   string                     `json:"method"`
	Path     string                     `json:"path"`
	Host     string                     `json:"host"`
	Headers  map[string]json.RawMessage `json:"headers"`
	Encoding string                     `json:"encoding"`
	Body     string                     `json:"body"`
}

type vercelResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Encoding   string            `json:"encoding,omitempty"`
	Body       string            `json:"body"`
}

func (c *VercelCodec) Name() string { return ShapeVercel }

func (c *VercelCodec) DecodeRequest(payload []byte) (*gateway.Request, error) {
	var event vercelEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, gateway.NewAdaptationError("envelope is not valid JSON", err)
	}
	if event.Action != "Invoke" {
		return nil, gateway.NewAdaptationError(fmt.Sprintf("unsupported envelope action %q", event.Action), nil)
	}

	var inner vercelRequest
	if err := json.Unmarshal([]byte(event.Body), &inner); err != nil {
		return nil, gateway.NewAdaptationError("envelope body is not a request document", err)
	}

	h, err := vercelHeaders(inner.Headers)
	if err != nil {
		return nil, err
	}
	if inner.Host != "" && !h.Has("Host") {
		h.Set("Host", inner.Host)
	}

	switch inner.Encoding {
	case "", "base64":
	default:
		return nil, gateway.NewAdaptationError(fmt.Sprintf("unsupported body encoding %q", inner.Encoding), nil)
	}
	body, err := decodeBody(inner.Body, inner.Encoding == "base64", c.limits)
	if err != nil {
		return nil, err
	}
	if err := checkContentLength(h, body); err != nil {
		return nil, err
	}
	return gateway.NewRequest(inner.Method, inner.Path, h, body)
}

// vercelHeaders accepts either a string or a list of strings per header.
func vercelHeaders(raw map[string]json.RawMessage) (gateway.Header, error) {
	var h gateway.Header
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var single string
		if err := json.Unmarshal(raw[name], &single); err == nil {
			if err := addHeader(&h, name, single); err != nil {
				return gateway.Header{}, err
			}
			continue
		}
		var multi []string
		if err := json.Unmarshal(raw[name], &multi); err != nil {
			return gateway.Header{}, gateway.NewAdaptationError(fmt.Sprintf("header %q is neither a string nor a list of strings", name), err)
		}
		for _, v := range multi {
			if err := addHeader(&h, name, v); err != nil {
				return gateway.Header{}, err
			}
		}
	}
	return h, nil
}

func (c *VercelCodec) EncodeResponse(resp *gateway.Response) ([]byte, error) {
	body, b64 := encodeBody(resp)
	out := vercelResponse{
		StatusCode: resp.Status(),
		Headers:    resp.Header().Map(),
		Body:       body,
	}
	if b64 {
		out.Encoding = "base64"
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode vercel reply: %w", err)
	}
	return checkReplySize(payload, c.limits)
}
