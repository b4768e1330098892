package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// Client provides JSON transport to the admin API with bearer auth.
type Client struct {
	client  *http.Client
	baseURL string
	session *Session
}

// NewClient creates a client for the given base URL. The session is
// shared: components constructed with the same session see token
// changes immediately.
func NewClient(baseURL string, timeoutSec int, session *Session) *Client {
	if timeoutSec == 0 {
		timeoutSec = 30 // default timeout
	}
	if session == nil {
		session = NewSession("")
	}

	return &Client{
		client: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		baseURL: baseURL,
		session: session,
	}
}

// Session returns the session the client was constructed with.
func (c *Client) Session() *Session {
	return c.session
}

// GetJSON performs a GET and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, u, nil, out)
}

// PostJSON performs a POST with a JSON payload and decodes into out.
func (c *Client) PostJSON(ctx context.Context, endpoint string, payload, out any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+endpoint, payload, out)
}

// PutJSON performs a PUT with a JSON payload and decodes into out.
func (c *Client) PutJSON(ctx context.Context, endpoint string, payload, out any) error {
	return c.do(ctx, http.MethodPut, c.baseURL+endpoint, payload, out)
}

// Delete performs a DELETE and decodes the confirmation into out when
// out is non-nil.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+endpoint, nil, out)
}

func (c *Client) do(ctx context.Context, method, u string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return &Error{Kind: KindTransport, Message: "failed to marshal JSON payload", Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "failed to create request", Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CryptonBetsAdmin/1.0")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug().
		Str("method", method).
		Str("url", u).
		Msg("making HTTP request")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().
			Str("method", method).
			Str("url", u).
			Err(err).
			Msg("HTTP request failed")
		return &Error{Kind: KindTransport, Message: "HTTP request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "failed to read response body", Err: err}
	}

	log.Debug().
		Str("method", method).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(raw)).
		Msg("received HTTP response")

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &Error{
			Kind:    KindAuthRequired,
			Status:  resp.StatusCode,
			Message: serverMessage(raw, "authentication required"),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Kind:    KindServer,
			Status:  resp.StatusCode,
			Message: serverMessage(raw, http.StatusText(resp.StatusCode)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{
			Kind:    KindDecode,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("response does not match expected schema: %v", err),
			Err:     err,
		}
	}
	return nil
}

// serverMessage extracts the API's error field, falling back when the
// body is not the expected error shape.
func serverMessage(raw []byte, fallback string) string {
	var eb ErrorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return fallback
}
