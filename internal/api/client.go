// Package api implements the HTTP client for the remote admin service: base
// URL resolution, bearer-token attachment, envelope decoding and error
// normalization. Nothing above this package sees a raw transport error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adminconsole/pkg/config"
	apperrors "adminconsole/pkg/errors"
	"adminconsole/pkg/logger"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token attached to each request. An empty
// token means the request goes out unauthenticated (login does).
type TokenSource interface {
	Token() (string, error)
}

// anonymous is the zero TokenSource.
type anonymous struct{}

func (anonymous) Token() (string, error) { return "", nil }

// Anonymous returns a TokenSource that never attaches a token.
func Anonymous() TokenSource { return anonymous{} }

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	userAgent  string
	maxRetries int
	verbose    bool
	log        logger.Logger
}

func NewClient(cfg config.APIConfig, tokens TokenSource, log logger.Logger) *Client {
	if tokens == nil {
		tokens = Anonymous()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		verbose:    cfg.VerboseWire,
		log:        log,
	}
}

// NewClientWithHTTP is used by tests to point the client at an httptest
// server with its client.
func NewClientWithHTTP(baseURL string, hc *http.Client, tokens TokenSource, log logger.Logger) *Client {
	c := NewClient(config.APIConfig{BaseURL: baseURL, Timeout: 15 * time.Second}, tokens, log)
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// Get issues a GET and returns the decoded envelope.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST with a JSON body and returns the decoded envelope.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT with a JSON body and returns the decoded envelope.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*Envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.verbose {
		c.log.Debug("request", map[string]interface{}{
			"method": method,
			"url":    u,
		})
	}

	resp, err := c.send(req, method == http.MethodGet)
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()

	if c.verbose {
		c.log.Debug("response", map[string]interface{}{
			"method": method,
			"url":    u,
			"code":   resp.StatusCode,
		})
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, "read response body")
	}

	env := &Envelope{}
	if decodeErr := json.Unmarshal(raw, env); decodeErr != nil {
		env = nil
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, serverMessage(env, resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Wrap(apperrors.ErrServerRejected, serverMessage(env, resp.StatusCode))
	}
	if env == nil || env.Status == "" {
		return nil, apperrors.Wrap(apperrors.ErrMalformedEnvelope, fmt.Sprintf("%s %s", method, path))
	}
	if !env.OK() {
		return nil, apperrors.Wrap(apperrors.ErrServerRejected, serverMessage(env, resp.StatusCode))
	}
	return env, nil
}

// send runs the request, retrying transport failures on GETs only; anything
// with a body may have been applied server-side.
func (c *Client) send(req *http.Request, idempotent bool) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err == nil || !idempotent {
		return resp, err
	}
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(time.Duration(attempt+1) * 200 * time.Millisecond):
		}
		c.log.Warn("retrying request", map[string]interface{}{
			"url":     req.URL.String(),
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
		resp, err = c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
	}
	return resp, err
}

func serverMessage(env *Envelope, code int) string {
	if env != nil && env.Message != "" {
		return env.Message
	}
	return fmt.Sprintf("status %d", code)
}
