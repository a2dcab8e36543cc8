package payment

import (
	"context"
)

// Gateway is the remote payment provider. Amounts are in minor units (paise).
type Gateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*RemoteOrder, error)
	FetchOrder(ctx context.Context, gatewayOrderID string) (*RemoteOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) error
	// KeyID is the public key handed to the checkout client.
	KeyID() string
}
