// Package factory submits orders to the pizza factory that bakes them.
package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Nivlac17/jwt-pizza-service/internal/config"
	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
)

// ErrFulfillment is returned when the factory rejects or fails an order.
var ErrFulfillment = errors.New("failed to fulfill order at factory")

// FulfillmentError carries the report link the factory returns with a failure.
type FulfillmentError struct {
	StatusCode int
	ReportURL  string
}

func (e *FulfillmentError) Error() string {
	return fmt.Sprintf("factory responded with status %d", e.StatusCode)
}

func (e *FulfillmentError) Unwrap() error {
	return ErrFulfillment
}

// Receipt is the factory's acknowledgement of a baked order.
type Receipt struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

// Diner identifies who placed the order.
type Diner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderRequest struct {
	Diner Diner         `json:"diner"`
	Order *domain.Order `json:"order"`
}

// Client calls the factory's order endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

const defaultTimeout = 10 * time.Second

// NewClient creates a client for the factory described by cfg.
func NewClient(cfg config.FactoryConfig, logger *slog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "factory_client")),
	}
}

// Fulfill posts the order to the factory. Non-2xx answers become a
// *FulfillmentError wrapping ErrFulfillment.
func (c *Client) Fulfill(ctx context.Context, diner Diner, order *domain.Order) (*Receipt, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	body, err := json.Marshal(orderRequest{Diner: diner, Order: order})
	if err != nil {
		return nil, fmt.Errorf("failed to encode factory request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build factory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("factory request failed",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return nil, fmt.Errorf("%w: %v", ErrFulfillment, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var receipt Receipt
	// Error answers may also carry a reportUrl, so the body is decoded either way.
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&receipt); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("failed to decode factory response", slog.String("error", err.Error()))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("factory rejected order",
			slog.Int("status", resp.StatusCode),
			slog.String("order_id", order.ID.String()))
		return nil, &FulfillmentError{StatusCode: resp.StatusCode, ReportURL: receipt.ReportURL}
	}

	log.Info("order fulfilled by factory", slog.String("order_id", order.ID.String()))
	return &receipt, nil
}
