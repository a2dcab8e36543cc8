package payment

import "errors"

var (
	ErrSignatureMismatch    = errors.New("Payment verification failed")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrGatewayRejected      = errors.New("payment gateway rejected request")
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
)
