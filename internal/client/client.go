package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"notes/internal/config"
	"notes/internal/logging"
	"notes/internal/types"
)

const (
	defaultBaseURL = "http://127.0.0.1:8080"
	defaultTimeout = 10 * time.Second

	pathMe     = "/api/auth/me"
	pathLogin  = "/api/auth/login"
	pathLogout = "/api/auth/logout"
	pathNotes  = "/api/notes"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  logging.Logger
}

type Option func(*Client)

func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// New builds a client from the loaded configuration. Session cookies set by
// the backend are kept in memory for the lifetime of the client.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	token, err := cfg.Token()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: cfg.BaseURL(),
		token:   token,
		http: &http.Client{
			Timeout: cfg.Timeout(),
			Jar:     jar,
		},
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func NewWithBaseURL(baseURL, token string, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: base,
		token:   token,
		http: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Me returns the signed-in user. A non-2xx response comes back as *APIError,
// which callers treat as "signed out". A 2xx reply without a user id is
// reported the same way.
func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var user *types.User
	if err := c.doJSON(ctx, http.MethodGet, pathMe, nil, &user); err != nil {
		return nil, err
	}
	if user == nil || strings.TrimSpace(user.ID) == "" {
		return nil, &APIError{StatusCode: http.StatusUnauthorized, Message: "no signed-in user"}
	}
	return user, nil
}

// LoginURL is the browser entry point of the backend's login flow.
func (c *Client) LoginURL() string {
	return c.baseURL + pathLogin
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, pathLogout, nil, nil)
}

func (c *Client) ListNotes(ctx context.Context) ([]*types.Note, error) {
	var notes []*types.Note
	if err := c.doJSON(ctx, http.MethodGet, pathNotes, nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*types.Note{}
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, input types.NoteInput) (*types.Note, error) {
	var note types.Note
	if err := c.doJSON(ctx, http.MethodPost, pathNotes, normalizeInput(input), &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, input types.NoteInput) (*types.Note, error) {
	path, err := notePath(id)
	if err != nil {
		return nil, err
	}
	var note types.Note
	if err := c.doJSON(ctx, http.MethodPut, path, normalizeInput(input), &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	path, err := notePath(id)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func notePath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("note id is required")
	}
	return pathNotes + "/" + url.PathEscape(id), nil
}

func normalizeInput(input types.NoteInput) types.NoteInput {
	if input.Tags == nil {
		input.Tags = []string{}
	}
	return input
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	requestID := logging.NewRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(c.token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := c.logger.With(
		logging.F("method", method),
		logging.F("path", path),
		logging.F("request_id", requestID),
	)
	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", logging.F("err", err), logging.F("elapsed", time.Since(start)))
		return err
	}
	defer resp.Body.Close()
	logger.Debug("request done", logging.F("status", resp.StatusCode), logging.F("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	switch {
	case payload.Error != "":
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	case payload.Message != "":
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func (e *APIError) IsUnauthorized() bool {
	return e != nil && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// AsAPIError extracts an *APIError from err's chain.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
