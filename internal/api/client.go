// Package api implements the authenticated HTTP client shared by all
// back-office services. It resolves relative paths against a configured
// base URL, injects JSON and bearer-token headers, and turns non-2xx
// responses into *Error values with a best-effort message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/avolkov/backoffice/internal/logging"
	"github.com/avolkov/backoffice/internal/mapx"
)

// TokenFunc supplies the current bearer token, or "" when there is none.
type TokenFunc func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
	log     logging.Logger
}

// New builds a Client. httpClient may be nil, in which case a default
// client with the transport's own timeouts is used; cookies ride on
// whatever jar the caller configured.
func New(baseURL string, httpClient *http.Client, token TokenFunc, log logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Client{baseURL: baseURL, http: httpClient, token: token, log: log}
}

// RequestOption mutates the outgoing request before default headers are
// applied, so caller-set headers always win over the injected ones.
type RequestOption func(*http.Request)

// WithHeader sets a header on the outgoing request.
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// ResolveURL joins a request path with the configured base URL. Absolute
// and protocol-relative paths pass through unchanged; otherwise exactly
// one slash separates base and path.
func (c *Client) ResolveURL(path string) string {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return path
	}
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Response is a successful (2xx) reply.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// HasJSON reports whether the body is declared as JSON and non-empty.
func (r *Response) HasJSON() bool {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return false
	}
	mt, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals a JSON body into out. Empty bodies and nil targets
// are a no-op, so callers can treat server echoes as optional.
func (r *Response) Decode(out any) error {
	if out == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if !r.HasJSON() {
		return fmt.Errorf("unexpected content type %q", r.ContentType)
	}
	return json.Unmarshal(r.Body, out)
}

// Do sends a request and returns the successful response.
//
// body may be nil (no body), []byte (sent as is), or any other value
// (JSON-marshalled). Accept, Content-Type and Authorization headers are
// injected unless the caller already set them; the bearer token is only
// attached when one is available.
//
// Transport failures are wrapped in ErrUnavailable. Non-2xx statuses
// come back as *Error with an extracted message.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ResolveURL(path), reader)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(req)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Authorization") == "" && c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(data, resp.Status)}
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "status", resp.StatusCode)
		return nil, apiErr
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// GetJSON fetches path and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// PostJSON posts in as JSON and decodes the reply into out (out may be nil).
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	resp, err := c.Do(ctx, http.MethodPost, path, in)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// PutJSON puts in as JSON and decodes the reply into out (out may be nil).
func (c *Client) PutJSON(ctx context.Context, path string, in, out any) error {
	resp, err := c.Do(ctx, http.MethodPut, path, in)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// Delete issues a DELETE and discards any body.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil)
	return err
}

// errorMessage extracts a human-readable explanation from an error body:
// the JSON "message"/"Message" field, then the raw JSON body, then the
// HTTP status text.
func errorMessage(body []byte, status string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return status
	}
	var m map[string]any
	if err := json.Unmarshal(trimmed, &m); err == nil {
		if msg, ok := mapx.FirstString(m, "message", "Message"); ok && msg != "" {
			return msg
		}
		return string(trimmed)
	}
	return status
}
