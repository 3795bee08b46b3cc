package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"duckmail/internal/client/models"
	"duckmail/internal/common"
	"duckmail/internal/logging"
)

const userAgent = "duckmail-cli"

// HTTPClient is the JSON-over-HTTP implementation of Client.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL. A zero timeout
// disables the per-request deadline.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		log:     log,
	}
}

type otpRequest struct {
	Identifier string `json:"identifier"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	OTP        string `json:"otp"`
}

type loginResponse struct {
	User models.AuthenticatedUser `json:"user"`
}

type aliasResponse struct {
	Address string `json:"address"`
}

func (c *HTTPClient) RequestOTP(ctx context.Context, identifier string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/otp", otpRequest{Identifier: identifier}, "", nil)
}

func (c *HTTPClient) Login(ctx context.Context, identifier, otp string) (models.AuthenticatedUser, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Identifier: identifier, OTP: otp}, "", &resp)
	if err != nil {
		return models.AuthenticatedUser{}, err
	}
	return resp.User, nil
}

func (c *HTTPClient) GenerateAlias(ctx context.Context, accessToken string) (string, error) {
	var resp aliasResponse
	err := c.doJSON(ctx, http.MethodPost, "/addresses", nil, accessToken, &resp)
	if err != nil {
		return "", err
	}
	return resp.Address, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/ping", nil, "", nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// doJSON sends one request and decodes the JSON response into out (when
// out is non-nil). Non-2xx statuses become *StatusError; failures without
// a status are wrapped transport errors.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, accessToken string, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return &StatusError{Code: resp.StatusCode, Text: statusText(resp)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// statusText extracts the reason phrase from resp.Status ("500 Internal
// Server Error" -> "Internal Server Error"), falling back to the standard
// text for the code.
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
