// Package api is the REST client for the trading server polled by tradeboard.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	PathAccountSummary = "/api/account_summary"
	PathPositions      = "/api/positions"
	PathMarketData     = "/api/market_data"
	PathTrade          = "/api/trade"
	PathLogin          = "/login"
	PathLogout         = "/logout"

	// RequestIDHeader carries a per-request id for correlating client and server logs.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to the trading server. The session cookie set by Login is kept in the
// client's cookie jar and sent with every later request.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// NewClient creates a client for baseURL. No retries are configured: a failed poll is
// simply repeated on the next tick.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http: rc,
		log:  log.With().Str("client", "tradeboard-api").Logger(),
	}
}

// SetBaseURL points the client at a different server.
func (c *Client) SetBaseURL(baseURL string) {
	c.http.SetBaseURL(strings.TrimRight(baseURL, "/"))
}

// BaseURL returns the server the client talks to.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Internal helpers

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, uuid.NewString())
}

// do executes r and maps the status code onto the error taxonomy. The returned body is
// only meaningful when err is nil.
func (c *Client) do(r *resty.Request, method, path string) ([]byte, error) {
	start := time.Now()
	resp, err := r.Execute(method, path)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", r.Header.Get(RequestIDHeader)).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("Request completed")

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case code < 200 || code > 299:
		return nil, &StatusError{Path: path, StatusCode: code}
	}

	return resp.Body(), nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	body, err := c.do(c.newRequest(ctx), http.MethodGet, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}

// Endpoints

// AccountSummary fetches the account summary. A body carrying an "error" field is returned
// as-is; the caller decides what to do with it.
func (c *Client) AccountSummary(ctx context.Context) (AccountSummary, error) {
	var s AccountSummary
	return s, c.get(ctx, PathAccountSummary, &s)
}

// Positions fetches open positions. A body whose "positions" field is missing or not an
// array yields ErrMalformed.
func (c *Client) Positions(ctx context.Context) ([]Position, error) {
	var resp struct {
		Positions json.RawMessage `json:"positions"`
	}
	if err := c.get(ctx, PathPositions, &resp); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(resp.Positions)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%s: positions field is not a list: %w", PathPositions, ErrMalformed)
	}

	var positions []Position
	if err := json.Unmarshal(raw, &positions); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", PathPositions, err, ErrMalformed)
	}
	return positions, nil
}

// MarketData fetches the latest quote.
func (c *Client) MarketData(ctx context.Context) (MarketQuote, error) {
	var q MarketQuote
	return q, c.get(ctx, PathMarketData, &q)
}

// Trade submits an order.
func (c *Client) Trade(ctx context.Context, req TradeRequest) (TradeResponse, error) {
	r := c.newRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req)

	body, err := c.do(r, http.MethodPost, PathTrade)
	if err != nil {
		return TradeResponse{}, err
	}

	var tr TradeResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return TradeResponse{}, fmt.Errorf("failed to parse %s response: %w", PathTrade, err)
	}
	return tr, nil
}

// Login posts credentials as a form, the way the browser login page does, and keeps the
// session cookie for later requests.
func (c *Client) Login(ctx context.Context, username, password string) error {
	r := c.newRequest(ctx).SetFormData(map[string]string{
		"username": username,
		"password": password,
	})

	resp, err := r.Post(PathLogin)
	if err != nil {
		return fmt.Errorf("POST %s: %w", PathLogin, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized:
		return ErrInvalidCredentials
	case code < 200 || code > 299:
		return &StatusError{Path: PathLogin, StatusCode: code}
	}

	// JSON servers answer {"success": bool}; HTML servers redirect away from /login on success.
	if strings.HasPrefix(resp.Header().Get("Content-Type"), "application/json") {
		var lr struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(resp.Body(), &lr); err != nil {
			return fmt.Errorf("failed to parse %s response: %w", PathLogin, err)
		}
		if !lr.Success {
			return ErrInvalidCredentials
		}
	} else if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL.Path == PathLogin {
		return ErrInvalidCredentials
	}

	c.log.Info().Str("username", username).Msg("Logged in")
	return nil
}

// Logout ends the session. A 401 means there was no session and is not an error.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(c.newRequest(ctx), http.MethodPost, PathLogout)
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}
	return nil
}
