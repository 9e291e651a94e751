// Package client is a typed HTTP client for a running string-analyzer server.
package client

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

	"github.com/divah21/stage-one-backend/internal/errors"
	"github.com/divah21/stage-one-backend/internal/filter"
	"github.com/divah21/stage-one-backend/internal/model"
)

// Health is the body of GET /health.
type Health struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
	Stats     model.Stats `json:"stats"`
}

// APIError is a non-2xx response. It unwraps to the sentinel matching its
// code so callers can use errors.Is(err, errors.ErrDuplicateKey).
type APIError struct {
	StatusCode int    `json:"-"`
	Status     string `json:"status"`
	Message    string `json:"error"`
	Code       string `json:"code"`
	Hint       string `json:"hint,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("server returned %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Hint != "" {
		msg += " (hint: " + e.Hint + ")"
	}
	return msg
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case errors.KindDuplicateKey:
		return errors.ErrDuplicateKey
	case errors.KindNotFound:
		return errors.ErrNotFound
	case errors.KindUnparseableQuery:
		return errors.ErrUnparseableQuery
	case errors.KindConflictingFilters:
		return errors.ErrConflictingFilters
	case errors.KindInvalidType:
		return errors.ErrInvalidType
	case errors.KindInvalidInput:
		return errors.ErrInvalidInput
	default:
		return nil
	}
}

// The empty string has no path form: /strings/ is routed to the list endpoint.
var errEmptyPathValue = errors.Invalidf("value must not be empty for path lookups")

// Client talks to one server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL. A zero timeout means no timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Create submits value for analysis.
func (c *Client) Create(ctx context.Context, value string) (*model.AnalysisRecord, error) {
	var rec model.AnalysisRecord
	body := map[string]string{"value": value}
	if err := c.do(ctx, http.MethodPost, "/strings", nil, body, http.StatusCreated, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get fetches the stored analysis of value.
func (c *Client) Get(ctx context.Context, value string) (*model.AnalysisRecord, error) {
	if value == "" {
		return nil, errEmptyPathValue
	}
	var rec model.AnalysisRecord
	if err := c.do(ctx, http.MethodGet, "/strings/"+url.PathEscape(value), nil, nil, http.StatusOK, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List fetches the analyses matching f.
func (c *Client) List(ctx context.Context, f model.FilterSet) (*model.ListResult, error) {
	var res model.ListResult
	if err := c.do(ctx, http.MethodGet, "/strings", filter.ToQuery(f), nil, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Search runs a natural language filter query.
func (c *Client) Search(ctx context.Context, phrase string) (*model.NaturalLanguageResult, error) {
	var res model.NaturalLanguageResult
	q := url.Values{"query": {phrase}}
	if err := c.do(ctx, http.MethodGet, "/strings/filter-by-natural-language", q, nil, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes the stored analysis of value.
func (c *Client) Delete(ctx context.Context, value string) error {
	if value == "" {
		return errEmptyPathValue
	}
	return c.do(ctx, http.MethodDelete, "/strings/"+url.PathEscape(value), nil, nil, http.StatusNoContent, nil)
}

// Health returns server liveness and store statistics.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, http.StatusOK, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any, want int, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(b, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(b))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}
