package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the sheSafe backend. All paths are resolved under
// {base}/api/; the only error kind it produces for HTTP failures is
// *StatusError.
type Client struct {
	base       string
	httpClient *http.Client
}

func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base:       strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string { return c.base }

// StatusError is the single failure kind at the client boundary: a derived
// message, the HTTP status code, and the parsed response body.
type StatusError struct {
	Message string
	Status  int
	Body    map[string]any
}

func (e *StatusError) Error() string { return e.Message }

func (c *Client) endpoint(path string) string {
	return c.base + "/api/" + strings.TrimLeft(path, "/")
}

func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	u := c.endpoint(path)
	log.Printf("api %s %s", method, u)

	var reqBody io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		parsed := parseBody(payload)
		return nil, &StatusError{
			Message: errorMessage(parsed, resp.StatusCode, u),
			Status:  resp.StatusCode,
			Body:    parsed,
		}
	}
	return payload, nil
}

// parseBody decodes a response body leniently: JSON object when possible,
// {"raw": text} otherwise, {} when empty.
func parseBody(b []byte) map[string]any {
	if len(bytes.TrimSpace(b)) == 0 {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return map[string]any{"raw": string(b)}
	}
	return m
}

// errorMessage picks the most specific message the backend offered. FastAPI
// puts it in "detail"; older gateways used "reason" or "message".
func errorMessage(body map[string]any, status int, u string) string {
	msg := fmt.Sprintf("HTTP %d", status)
	for _, key := range []string{"detail", "reason", "message"} {
		if s, ok := body[key].(string); ok && s != "" {
			msg = s
			break
		}
	}
	return fmt.Sprintf("%s (%s)", msg, u)
}

// ResolveToken exchanges a share token for a device identity.
func (c *Client) ResolveToken(ctx context.Context, token string) (ResolveTokenResponse, error) {
	q := url.Values{}
	q.Set("token", token)
	payload, err := c.Get(ctx, "resolve-token?"+q.Encode())
	if err != nil {
		return ResolveTokenResponse{}, err
	}
	var resp ResolveTokenResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return ResolveTokenResponse{}, fmt.Errorf("decode resolve-token response: %w", err)
	}
	if resp.Device == "" {
		return ResolveTokenResponse{}, fmt.Errorf("resolve-token response missing device")
	}
	return resp, nil
}

// Location fetches the latest known snapshot for a device.
func (c *Client) Location(ctx context.Context, device string) (LatestRecord, error) {
	q := url.Values{}
	q.Set("device", device)
	payload, err := c.Get(ctx, "location?"+q.Encode())
	if err != nil {
		return LatestRecord{}, err
	}
	var rec LatestRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return LatestRecord{}, fmt.Errorf("decode location response: %w", err)
	}
	return rec, nil
}

type markSafeRequest struct {
	Device string `json:"device"`
}

// MarkSafe asks the backend to flag the device as safe.
func (c *Client) MarkSafe(ctx context.Context, device string) (MarkSafeResponse, error) {
	payload, err := c.Post(ctx, "mark-safe", markSafeRequest{Device: device})
	if err != nil {
		return MarkSafeResponse{}, err
	}
	var resp MarkSafeResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return MarkSafeResponse{}, fmt.Errorf("decode mark-safe response: %w", err)
	}
	return resp, nil
}
