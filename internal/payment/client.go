package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/config"
)

// Client initiates online payment sessions with the external gateway
type Client struct {
	baseURL       string
	storeID       string
	storePassword string
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewClient creates a new payment gateway client
func NewClient(cfg config.PaymentConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL:       baseURL,
		storeID:       cfg.StoreID,
		storePassword: cfg.StorePassword,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type initiateRequest struct {
	OrderID       string  `json:"order_id"`
	Amount        float64 `json:"amount"`
	StoreID       string  `json:"store_id"`
	StorePassword string  `json:"store_password"`
}

type initiateResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Message string `json:"message"`
}

// PaymentURL requests a gateway redirect URL for an already-created order
func (c *Client) PaymentURL(ctx context.Context, orderID string, amount float64) (string, error) {
	reqBody := initiateRequest{
		OrderID:       orderID,
		Amount:        amount,
		StoreID:       c.storeID,
		StorePassword: c.storePassword,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments/initiate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var initiateResp initiateResponse
	if err := json.Unmarshal(body, &initiateResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !initiateResp.Success || initiateResp.Data.URL == "" {
		return "", fmt.Errorf("gateway refused payment initiation: %s", initiateResp.Message)
	}

	return initiateResp.Data.URL, nil
}
