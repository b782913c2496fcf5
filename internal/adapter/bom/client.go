package bom

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stormpetrel/bomwatch/internal/domain"
)

// Client fetches BOM warning feeds over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a feed client. baseURL normally points at the real BOM
// host; tests pass an httptest server URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// FetchWarningFeed retrieves the raw warning feed text for a region.
// Non-2xx responses are errors; the body is returned untouched for the
// tolerant parser.
func (c *Client) FetchWarningFeed(ctx context.Context, region domain.Region) (string, error) {
	path, err := FeedPath(region)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("User-Agent", "bomwatch/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s warning feed: %w", region, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s warning feed: status %d", region, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s warning feed: %w", region, err)
	}

	c.logger.Debug("feed fetched", "region", region, "bytes", len(body))
	return string(body), nil
}

// WarningsPage returns the human-facing warnings page for a region, used as
// the link fallback for warnings without one of their own.
func (c *Client) WarningsPage(region domain.Region) string {
	return WarningsPageURL(region)
}
