package navigation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/config"
)

// endpoints maps each resolvable action type to its collection path
var endpoints = map[ActionType]string{
	ActionProduct:  "/products",
	ActionCategory: "/categories",
	ActionBrand:    "/brands",
	ActionShop:     "/shops",
}

// Client fetches candidate lists from the content-catalog collection endpoints
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new content-catalog client
func NewClient(cfg config.ContentConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Fetch returns the raw collection payload for an action type. The payload
// shape varies per endpoint; Normalize deals with that.
func (c *Client) Fetch(ctx context.Context, action ActionType) ([]byte, error) {
	path, ok := endpoints[action]
	if !ok {
		return nil, fmt.Errorf("no collection endpoint for action %q", action)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
