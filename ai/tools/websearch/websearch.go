// Package websearch queries the Tavily search API and digests the top
// results into markdown suitable for grounding a model answer.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultEndpoint = "https://api.tavily.com/search"
	maxResults      = 5
)

type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether search is configured. Callers skip the search
// phase entirely when it is not.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// Search returns a markdown digest of the top results for the query.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if !c.Enabled() {
		return "", errors.New("web search is not configured")
	}

	body, err := json.Marshal(searchRequest{Query: query, MaxResults: maxResults})
	if err != nil {
		return "", errors.Wrap(err, "encode search request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build search request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "search request")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("search request failed with status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errors.Wrap(err, "decode search response")
	}
	if len(decoded.Results) == 0 {
		return "No relevant search results found.", nil
	}

	results := decoded.Results
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	sections := make([]string, 0, len(results))
	for _, r := range results {
		title := r.Title
		if title == "" {
			title = "Untitled"
		}
		sections = append(sections, fmt.Sprintf("### %s\n🔗 %s\n\n%s", title, r.URL, r.Content))
	}
	return strings.Join(sections, "\n\n---\n\n"), nil
}
