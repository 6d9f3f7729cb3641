package showcaseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmanzanog/showcase/internal/application"
	"github.com/jmanzanog/showcase/internal/domain"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	apiPrefix      = "/api/v1"
	portfoliosPath = apiPrefix + "/portfolios"
)

// Client talks to a running showcase server. Each method mirrors one
// ShowcaseService operation.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

// APIError is a non-success envelope returned by the server.
type APIError struct {
	Code    int
	Message string
	Kind    string
	kind    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned code %d: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

// newAPIError maps the envelope kind back to its domain sentinel. Servers
// that omit the kind fall back to the status code.
func newAPIError(code int, kind, message string) *APIError {
	apiErr := &APIError{Code: code, Message: message, Kind: kind}
	switch kind {
	case "invalid_enum_value":
		apiErr.kind = domain.ErrInvalidEnumValue
	case "validation", "bad_request":
		apiErr.kind = domain.ErrValidation
	case "not_found":
		apiErr.kind = domain.ErrNotFound
	case "":
		switch code {
		case http.StatusNotFound:
			apiErr.kind = domain.ErrNotFound
		case http.StatusBadRequest:
			apiErr.kind = domain.ErrValidation
		}
	}
	return apiErr
}

// do sends body as JSON and decodes the envelope data into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr, "url", reqURL)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", domain.ErrTransport, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Anything that is not an envelope, such as a proxy error page.
		return fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, truncate(string(raw), 200))
	}

	if resp.StatusCode != http.StatusOK || env.Code != http.StatusOK {
		code := env.Code
		if code == 0 {
			code = resp.StatusCode
		}
		return newAPIError(code, env.Kind, env.Message)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (c *Client) ListPortfolios(ctx context.Context, query domain.ListQuery) (*application.ListResult, error) {
	params := url.Values{}
	if query.Page != 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize != 0 {
		params.Set("pageSize", strconv.Itoa(query.PageSize))
	}
	for key, value := range map[string]string{
		"type":    query.ProjectType,
		"status":  query.Status,
		"keyword": query.Keyword,
		"mode":    query.Mode,
	} {
		if value != "" {
			params.Set(key, value)
		}
	}

	var result application.ListResult
	if err := c.do(ctx, http.MethodGet, portfoliosPath, params, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetPortfolioByID(ctx context.Context, id string) (*domain.Entry, error) {
	var entry domain.Entry
	if err := c.do(ctx, http.MethodGet, portfoliosPath+"/"+url.PathEscape(id), nil, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) GetStats(ctx context.Context) (*domain.StatsSummary, error) {
	var stats domain.StatsSummary
	if err := c.do(ctx, http.MethodGet, portfoliosPath+"/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) CreatePortfolio(ctx context.Context, patch domain.EntryPatch) (*domain.Entry, error) {
	var entry domain.Entry
	if err := c.do(ctx, http.MethodPost, portfoliosPath, nil, patch, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) UpdatePortfolio(ctx context.Context, id string, patch domain.EntryPatch) (*domain.Entry, error) {
	var entry domain.Entry
	if err := c.do(ctx, http.MethodPut, portfoliosPath+"/"+url.PathEscape(id), nil, patch, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) DeletePortfolio(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, portfoliosPath+"/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) BatchDeletePortfolios(ctx context.Context, ids []string) (*application.BatchDeleteResult, error) {
	if ids == nil {
		ids = []string{}
	}
	var result application.BatchDeleteResult
	body := map[string][]string{"ids": ids}
	if err := c.do(ctx, http.MethodPost, portfoliosPath+"/batch-delete", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateSortOrder(ctx context.Context, updates []application.SortOrderUpdate) (*application.SortOrderResult, error) {
	if updates == nil {
		updates = []application.SortOrderUpdate{}
	}
	var result application.SortOrderResult
	if err := c.do(ctx, http.MethodPost, portfoliosPath+"/sort", nil, updates, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ToggleFeatured(ctx context.Context, id string, featured bool) (*domain.Entry, error) {
	var entry domain.Entry
	body := map[string]bool{"featured": featured}
	if err := c.do(ctx, http.MethodPut, portfoliosPath+"/"+url.PathEscape(id)+"/featured", nil, body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Health reports whether the server answers its health probe.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: health check: %v", domain.ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned status %d", domain.ErrTransport, resp.StatusCode)
	}
	return nil
}
