package bgg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openmeeple/meeplevault-backend/pkg/config"
	pkgerrors "github.com/openmeeple/meeplevault-backend/pkg/errors"
	"github.com/openmeeple/meeplevault-backend/pkg/metrics"
)

const (
	operationSearch = "search"
	operationThing  = "thing"

	upstreamItemType = "boardgame"
)

// Client is the long-lived upstream HTTP client. It is safe for concurrent
// use: every call is a single stateless request bounded by the configured
// timeout, and failures are reported once, never retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.UpstreamMetrics
}

// NewClient constructs the shared upstream client.
func NewClient(cfg config.BGGConfig, m *metrics.UpstreamMetrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		metrics:    m,
	}
}

// Search fetches the raw XML payload for a name search.
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", upstreamItemType)
	return c.get(ctx, operationSearch, "/search", params)
}

// Thing fetches the raw XML detail payload (with statistics) for one game.
func (c *Client) Thing(ctx context.Context, bggID string) ([]byte, error) {
	params := url.Values{}
	params.Set("id", bggID)
	params.Set("stats", "1")
	return c.get(ctx, operationThing, "/thing", params)
}

func (c *Client) get(ctx context.Context, operation, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upstream request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(operation, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(operation)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upstream catalog unreachable").
			WithDetails(map[string]any{"operation": operation})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncFailure(operation)
		return nil, pkgerrors.Wrap(
			pkgerrors.CodeDependency,
			fmt.Errorf("upstream status %d", resp.StatusCode),
			"upstream catalog error response",
		).WithDetails(map[string]any{"operation": operation, "status": resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncFailure(operation)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read upstream response")
	}

	c.metrics.IncSuccess(operation)
	return body, nil
}
