package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type Config struct {
	URL        string
	AnonKey    string
	StorageKey string
	Timeout    time.Duration
}

// Client talks to the hosted backend. The auth and data halves share the
// current session so data requests carry the signed-in user's token.
type Client struct {
	baseURL    string
	anonKey    string
	storageKey string
	httpClient *http.Client
	storage    ports.SessionStorage
	logger     *zap.Logger
	now        func() time.Time

	mu        sync.RWMutex
	session   *domain.Session
	listeners map[int]ports.AuthListener
	nextID    int
}

func NewClient(cfg Config, storage ports.SessionStorage, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		storageKey: cfg.StorageKey,
		httpClient: &http.Client{Timeout: timeout},
		storage:    storage,
		logger:     logger,
		now:        time.Now,
		listeners:  make(map[int]ports.AuthListener),
	}
}

// APIError is an error response from either the auth or the data API.
type APIError struct {
	Status    int    `json:"-"`
	Code      string `json:"code"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Msg       string `json:"msg"`
	ErrorName string `json:"error"`
	ErrorDesc string `json:"error_description"`
	Details   string `json:"details"`
	Hint      string `json:"hint"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Text())
}

// Text returns the most specific message the backend supplied.
func (e *APIError) Text() string {
	for _, candidate := range []string{e.Message, e.Msg, e.ErrorDesc, e.ErrorName, e.ErrorCode} {
		if candidate != "" {
			return candidate
		}
	}
	return http.StatusText(e.Status)
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	header http.Header
	// token overrides the bearer; empty uses the session token or the anon key.
	token string
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return err
	}
	for key, values := range req.header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set("apikey", c.anonKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.bearer(req.token))
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if len(data) > 0 {
			_ = json.Unmarshal(data, apiErr)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) bearer(token string) string {
	if token != "" {
		return token
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session != nil && c.session.AccessToken != "" {
		return c.session.AccessToken
	}
	return c.anonKey
}

// Ping checks that the auth API answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodGet, path: "/auth/v1/health", token: c.anonKey}, nil)
}
