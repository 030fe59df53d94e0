// Package client is the Go toolkit the dashboard frontends build on: a
// cookie-session REST client plus a generic data-table controller that
// owns the filter/page/fetch cycle.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client talks to the admin API. The session cookie set by VerifyOTP is
// carried automatically by the cookie jar.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New builds a client with its own cookie jar.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

// Session identifies the logged-in admin.
type Session struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RequestOTP asks the API to send a one-time code to email.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/api/admin/request-otp-admin", map[string]string{"email": email}, nil)
}

// VerifyOTP exchanges the code for a session cookie.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (Session, error) {
	var out struct {
		Success bool    `json:"success"`
		User    Session `json:"user"`
	}
	if err := c.post(ctx, "/api/admin/verify-otp-admin", map[string]string{"email": email, "otp": code}, &out); err != nil {
		return Session{}, err
	}
	return out.User, nil
}

// CheckAuth reports the current session, if any.
func (c *Client) CheckAuth(ctx context.Context) (Session, error) {
	var out struct {
		Success bool    `json:"success"`
		User    Session `json:"user"`
	}
	if err := c.get(ctx, "/api/admin/check-auth", nil, &out); err != nil {
		return Session{}, err
	}
	return out.User, nil
}

// Logout clears the session cookie server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/admin/logout", nil, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPost, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, apiErr.Message)
		}
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
