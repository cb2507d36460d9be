// Package posts fetches posts from the RapidAPI content endpoint and reduces
// every element to a title and a content field.
package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

const (
	// HeaderAPIKey carries the RapidAPI key.
	HeaderAPIKey = "X-RapidAPI-Key"

	// HeaderAPIHost carries the RapidAPI host.
	HeaderAPIHost = "X-RapidAPI-Host"
)

var (
	// ErrEndpointNotConfigured is returned when no upstream endpoint is set.
	ErrEndpointNotConfigured = errors.New("posts endpoint is not configured")

	// ErrUnexpectedStatus is returned for non 2xx upstream responses.
	ErrUnexpectedStatus = errors.New("unexpected upstream status")

	upstreamRequests = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "posts_upstream_requests_total",
			Help: "Requests to the posts upstream API, by result.",
		},
		[]string{"result"},
	)
)

// Post is one normalized upstream element. Missing fields stay nil and are
// encoded as JSON null.
type Post struct {
	Title   any `json:"title"`
	Content any `json:"content"`
}

// Config holds the upstream endpoint and its static credentials.
type Config struct {
	Endpoint string
	APIKey   string
	APIHost  string
}

// Client requests the upstream endpoint once per call. No retries, no paging, no caching.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a Client. A nil httpClient uses a non shared cleanhttp client.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = cleanhttp.DefaultClient()
	}

	return &Client{cfg: cfg, httpClient: httpClient}
}

// GetPosts returns the normalized posts. Any upstream failure is logged and
// results in an empty, non nil slice.
func (c *Client) GetPosts(ctx context.Context) []Post {
	posts, err := c.Fetch(ctx)
	if err != nil {
		upstreamRequests.WithLabelValues("failure").Inc()
		log.Error().Err(err).Str("endpoint", c.cfg.Endpoint).Msg("failed to fetch posts")

		return []Post{}
	}

	upstreamRequests.WithLabelValues("success").Inc()

	return posts
}

// Fetch performs the upstream request and reports failures to the caller.
func (c *Client) Fetch(ctx context.Context) ([]Post, error) {
	if c.cfg.Endpoint == "" {
		return nil, ErrEndpointNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build posts request: %w", err)
	}

	req.Header.Set(HeaderAPIKey, c.cfg.APIKey)
	req.Header.Set(HeaderAPIHost, c.cfg.APIHost)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var items []json.RawMessage
	if err = json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode posts response: %w", err)
	}

	return Normalize(items), nil
}

// Normalize maps every element to a Post in the same order. Elements that are
// not JSON objects become a Post with both fields nil.
func Normalize(items []json.RawMessage) []Post {
	posts := make([]Post, 0, len(items))

	for _, item := range items {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil {
			log.Debug().Err(err).Msg("posts element is not an object")
		}

		posts = append(posts, Post{
			Title:   fields["title"],
			Content: fields["content"],
		})
	}

	return posts
}
