package courier

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
	"github.com/hatbazar/marketplace-api/internal/domain"
)

// Parcel holds the identifiers returned by a successful registration
type Parcel struct {
	ConsignmentID string
	TrackingCode  string
	TrackingURL   string
}

// Client registers cash-on-delivery parcels with the external courier
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new courier client
func NewClient(cfg config.CourierConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type registerRequest struct {
	Invoice          string  `json:"invoice"`
	RecipientName    string  `json:"recipient_name"`
	RecipientPhone   string  `json:"recipient_phone"`
	RecipientAddress string  `json:"recipient_address"`
	CODAmount        float64 `json:"cod_amount"`
}

type registerResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ConsignmentID string `json:"consignmentId"`
		TrackingCode  string `json:"trackingCode"`
	} `json:"data"`
	Message string `json:"message"`
}

// Register creates a parcel for the given order and returns its tracking
// identifiers. The order must already be persisted; the courier keys the
// parcel by our order number.
func (c *Client) Register(ctx context.Context, order *domain.Order) (*Parcel, error) {
	address := fmt.Sprintf("%s, %s, %s, %s",
		order.Delivery.Address, order.Delivery.Upazila, order.Delivery.District, order.Delivery.PostalCode)

	reqBody := registerRequest{
		Invoice:          order.OrderNumber,
		RecipientName:    order.Delivery.Name,
		RecipientPhone:   order.Delivery.Phone,
		RecipientAddress: address,
		CODAmount:        order.TotalAmount,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parcels", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

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
		return nil, fmt.Errorf("courier API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var registerResp registerResponse
	if err := json.Unmarshal(body, &registerResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !registerResp.Success {
		return nil, fmt.Errorf("courier registration failed: %s", registerResp.Message)
	}

	return &Parcel{
		ConsignmentID: registerResp.Data.ConsignmentID,
		TrackingCode:  registerResp.Data.TrackingCode,
		TrackingURL:   c.TrackingURL(registerResp.Data.TrackingCode),
	}, nil
}

// TrackingURL derives the public tracking page for a tracking code
func (c *Client) TrackingURL(trackingCode string) string {
	return fmt.Sprintf("%s/tracking/%s", c.baseURL, trackingCode)
}
