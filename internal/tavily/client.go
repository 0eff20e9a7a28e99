// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tavily is a minimal client for the Tavily web-search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/menuprobe/internal/httputil"
	"github.com/pdiddy/menuprobe/pkg/types"
)

// apiBase is the Tavily search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://api.tavily.com/search"

// maxErrorBody bounds how much of a failed response is kept in APIError.
const maxErrorBody = 512

// Client queries the Tavily search API.
type Client struct {
	HTTP   *http.Client
	APIKey string
	Config types.HTTPConfig

	// Endpoint overrides the search URL, e.g. for a proxy. Empty uses the
	// public API.
	Endpoint string
}

// NewClient returns a Client that uses an http.Client with cfg's timeout.
func NewClient(apiKey string, cfg types.HTTPConfig) *Client {
	return &Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		APIKey: apiKey,
		Config: cfg,
	}
}

// APIError is returned when Tavily answers with a non-200 status.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("Tavily API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("Tavily API returned HTTP %d: %s", e.StatusCode, e.Detail)
}

// Search runs one query and returns the decoded response.
func (c *Client) Search(ctx context.Context, query string, depth types.SearchDepth, maxResults int) (*types.Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Tavily query")
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("missing Tavily API key")
	}
	if _, err := types.ParseSearchDepth(string(depth)); err != nil {
		return nil, err
	}

	body, err := json.Marshal(searchRequest{
		Query:       query,
		SearchDepth: string(depth),
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = apiBase
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.Config.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("Tavily API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Tavily response: %w", err)
	}

	out := &types.Response{
		Query:        sr.Query,
		Answer:       sr.Answer,
		ResponseTime: float64(sr.ResponseTime),
		Results:      make([]types.Result, 0, len(sr.Results)),
	}
	for _, r := range sr.Results {
		out.Results = append(out.Results, types.Result{
			Title:   r.Title,
			URL:     r.URL,
			Score:   r.Score,
			Content: r.Content,
		})
	}
	return out, nil
}

// newAPIError builds an APIError from a failed response, pulling the
// "detail" message out of Tavily's JSON error body when present.
func newAPIError(resp *http.Response) *APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil {
		switch d := eb.Detail.(type) {
		case string:
			apiErr.Detail = d
		case map[string]any:
			if msg, ok := d["error"].(string); ok {
				apiErr.Detail = msg
			}
		}
	}
	if apiErr.Detail == "" {
		apiErr.Detail = strings.TrimSpace(string(data))
	}
	return apiErr
}

// Tavily API JSON structures.
type searchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type searchResponse struct {
	Query        string         `json:"query"`
	Answer       string         `json:"answer"`
	Results      []searchResult `json:"results"`
	ResponseTime flexFloat      `json:"response_time"`
}

type searchResult struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Content string   `json:"content"`
	Score   *float64 `json:"score"`
}

type errorBody struct {
	Detail any `json:"detail"`
}

// flexFloat accepts a JSON number or a numeric string; Tavily has sent
// response_time as both.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return fmt.Errorf("response_time %s: %w", b, err)
	}
	*f = flexFloat(v)
	return nil
}
