package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/metrics"

	"go.uber.org/zap"
)

const DefaultRazorpayBaseURL = "https://api.razorpay.com"

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

type razorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewRazorpayGateway(cfg RazorpayConfig) Gateway {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		logger.L().Warn("Razorpay credentials are empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultRazorpayBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &razorpayGateway{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (g *razorpayGateway) KeyID() string {
	return g.keyID
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*RemoteOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", "CreateOrder"),
		zap.String("receipt", req.Receipt),
		zap.Int64("amount", req.Amount),
	)

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrGatewayRejected)
	}
	if req.Currency == "" {
		req.Currency = CurrencyINR
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var order RemoteOrder
	if err := g.do(ctx, http.MethodPost, "/v1/orders", body, &order); err != nil {
		log.Error("Razorpay create order failed", zap.Error(err))
		return nil, err
	}

	log.Info("Razorpay order created", zap.String("gateway_order_id", order.ID))
	return &order, nil
}

func (g *razorpayGateway) FetchOrder(ctx context.Context, gatewayOrderID string) (*RemoteOrder, error) {
	if gatewayOrderID == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrGatewayRejected)
	}

	var order RemoteOrder
	if err := g.do(ctx, http.MethodGet, "/v1/orders/"+url.PathEscape(gatewayOrderID), nil, &order); err != nil {
		logger.FromCtx(ctx).Error("Razorpay fetch order failed",
			zap.String("gateway_order_id", gatewayOrderID), zap.Error(err))
		return nil, err
	}

	return &order, nil
}

func (g *razorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) error {
	return VerifySignature(g.keySecret, gatewayOrderID, paymentID, signature)
}

func (g *razorpayGateway) do(ctx context.Context, method, path string, body []byte, out any) error {
	if g.keyID == "" || g.keySecret == "" {
		return ErrGatewayNotConfigured
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	timer := metrics.StartTimer()
	metrics.Payments.GatewayCalls.Inc()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		metrics.Payments.GatewayErrors.Inc()
		if isTimeout(err) {
			return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
		}
		return fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.FromCtx(ctx).Debug("razorpay call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", timer.Duration()),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.Payments.GatewayErrors.Inc()
		var apiErr razorpayError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Description != "" {
			return fmt.Errorf("%w: %s", ErrGatewayRejected, apiErr.Error.Description)
		}
		return fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode razorpay response: %w", err)
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
