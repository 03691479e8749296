// Package gateway is the only component that talks to the remote store.
// Every call attaches the session's bearer token when present and returns
// either a decoded payload or one of the errs failure types.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/logger"
)

// MissingTokenReason is reported when a protected call is made signed out.
const MissingTokenReason = "No auth token found - please sign in again."

// NonJSONReason is reported when a JSON endpoint answers with anything else.
const NonJSONReason = "Server did not return JSON"

// TokenSource supplies the opaque bearer credential.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the HTTP implementation of the remote store contract.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *RateLimiter
	log     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimiter paces outgoing requests.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) { c.limiter = rl }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a gateway client for baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		limiter: Unlimited(),
		log:     logger.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request describes one round-trip.
type request struct {
	op          string
	method      string
	path        string
	body        any
	rawBody     io.Reader
	contentType string

	// fail with AuthError before any network I/O when signed out
	authRequired bool
	// 404 maps to NotFoundError for this resource
	notFound string
	// read key used for remote error messages; "error" by default
	errKey string
	// accept a binary body of this media type instead of JSON
	binary string
}

// response is the raw successful result.
type response struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, r request) (*response, error) {
	token, hasToken := "", false
	if c.tokens != nil {
		token, hasToken = c.tokens.Token()
	}
	if r.authRequired && !hasToken {
		return nil, &errs.AuthError{Op: r.op, Reason: MissingTokenReason}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: wait for rate limiter: %w", r.op, err)
	}

	var body io.Reader
	contentType := r.contentType
	switch {
	case r.rawBody != nil:
		body = r.rawBody
	case r.body != nil:
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal body: %w", r.op, err)
		}
		body = bytes.NewReader(data)
	}
	if contentType == "" {
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", r.op, err)
	}
	req.Header.Set("Content-Type", contentType)
	if r.binary != "" {
		req.Header.Set("Accept", r.binary)
	} else {
		req.Header.Set("Accept", "application/json")
	}
	if hasToken {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("op", r.op).Msg("request failed")
		return nil, fmt.Errorf("%s: %w", r.op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", r.op, err)
	}

	c.log.Debug().
		Str("op", r.op).
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("remote call")

	return c.interpret(r, resp, data)
}

// interpret maps an HTTP response to a payload or a typed failure.
func (c *Client) interpret(r request, resp *http.Response, data []byte) (*response, error) {
	status := resp.StatusCode
	ok := status >= 200 && status < 300
	mediaType := mediaTypeOf(resp.Header.Get("Content-Type"))

	if status == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			c.limiter.Backoff(time.Duration(secs) * time.Second)
		}
	}

	if ok && r.binary != "" {
		if mediaType != r.binary {
			return nil, &errs.ProtocolError{Op: r.op, Status: status, Reason: fmt.Sprintf("expected %s, got %q", r.binary, mediaType)}
		}
		return &response{status: status, body: data}, nil
	}

	if status == http.StatusNotFound && r.notFound != "" {
		return nil, &errs.NotFoundError{Op: r.op, Resource: r.notFound}
	}

	isJSON := mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		reason := http.StatusText(status)
		if isJSON {
			if msg := errorMessage(data, r.errKeys()...); msg != "" {
				reason = msg
			}
		}
		return nil, &errs.AuthError{Op: r.op, Reason: reason}
	}

	if !isJSON {
		return nil, &errs.ProtocolError{Op: r.op, Status: status, Reason: NonJSONReason}
	}
	if !json.Valid(data) {
		return nil, &errs.ProtocolError{Op: r.op, Status: status, Reason: "malformed JSON body"}
	}

	msg := errorMessage(data, r.errKeys()...)
	if !ok {
		if msg == "" {
			msg = fmt.Sprintf("Request failed with %d", status)
		}
		return nil, &errs.RemoteError{Op: r.op, Status: status, Message: msg}
	}
	// profile endpoints report failures in a 2xx body
	if r.errKey == errKeyProfile {
		if msg := errorMessage(data, errKeyProfile); msg != "" {
			return nil, &errs.RemoteError{Op: r.op, Status: status, Message: msg}
		}
	}

	return &response{status: status, body: data}, nil
}

const (
	errKeyDefault = "error"
	errKeyProfile = "err"
)

// errKeys lists the body keys searched for an error message, preferred first.
func (r request) errKeys() []string {
	if r.errKey == errKeyProfile {
		return []string{errKeyProfile, errKeyDefault}
	}
	return []string{errKeyDefault, errKeyProfile}
}

func errorMessage(data []byte, keys ...string) string {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return ""
	}
	for _, key := range keys {
		raw, ok := env[key]
		if !ok {
			continue
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
			return msg
		}
	}
	return ""
}

func mediaTypeOf(header string) string {
	if header == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header))
	}
	return mt
}

// decode unmarshals a successful body into out.
func decode(op string, res *response, out any) error {
	if err := json.Unmarshal(res.body, out); err != nil {
		return &errs.ProtocolError{Op: op, Status: res.status, Reason: "unexpected response shape: " + err.Error()}
	}
	return nil
}
