package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/config"
)

// Client talks to the external delivery-charge and geo-data service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new rate/geo service client
func NewClient(cfg config.RatesConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type rateResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Charge float64 `json:"charge"`
	} `json:"data"`
	Message string `json:"message"`
}

// Rate fetches the delivery charge for a (district, upazila) pair
func (c *Client) Rate(ctx context.Context, district, upazila string) (float64, error) {
	endpoint := fmt.Sprintf("%s/rates?district=%s&upazila=%s",
		c.baseURL, url.QueryEscape(district), url.QueryEscape(upazila))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return 0, err
	}

	var resp rateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to unmarshal rate response: %w", err)
	}
	if !resp.Success {
		return 0, fmt.Errorf("rate service error: %s", resp.Message)
	}

	return resp.Data.Charge, nil
}

type geoResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
	Message string   `json:"message"`
}

// Districts fetches the district enumeration for the delivery form
func (c *Client) Districts(ctx context.Context) ([]string, error) {
	return c.geoList(ctx, c.baseURL+"/districts")
}

// Upazilas fetches the upazila enumeration for one district
func (c *Client) Upazilas(ctx context.Context, district string) ([]string, error) {
	return c.geoList(ctx, fmt.Sprintf("%s/districts/%s/upazilas", c.baseURL, url.PathEscape(district)))
}

func (c *Client) geoList(ctx context.Context, endpoint string) ([]string, error) {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp geoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geo response: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("geo service error: %s", resp.Message)
	}

	return resp.Data, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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
		return nil, fmt.Errorf("rate service error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
