package order

import (
	"time"

	"agrimart-be/internal/address"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentCOD    PaymentType = "COD"
	PaymentOnline PaymentType = "Online"
)

func (p PaymentType) Valid() bool {
	return p == PaymentCOD || p == PaymentOnline
}

// TaxPercent is applied to the subtotal and floored to whole rupees.
const TaxPercent = 5

func Tax(subtotal int64) int64 {
	return subtotal * TaxPercent / 100
}

type Order struct {
	ID     uuid.UUID `json:"id"`
	UserID uint      `json:"userId"`
	Items  []*Item   `json:"items"`

	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Amount   int64 `json:"amount"`

	AddressID uuid.UUID        `json:"addressId"`
	Address   *address.Address `json:"address,omitempty"`

	PaymentType    PaymentType  `json:"paymentType"`
	IsPaid         bool         `json:"isPaid"`
	Status         Status       `json:"status"`
	TransactionID  string       `json:"transactionId"`
	GatewayOrderID *string      `json:"gatewayOrderId,omitempty"`
	Payment        *PaymentInfo `json:"payment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Item struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Images    []string  `json:"images,omitempty"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unitPrice"`
}

func (i *Item) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// PaymentInfo is written once, by payment verification.
type PaymentInfo struct {
	GatewayOrderID string    `json:"gatewayOrderId"`
	PaymentID      string    `json:"paymentId"`
	Signature      string    `json:"-"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	VerifiedAt     time.Time `json:"verifiedAt"`
}

type LineInput struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type PlaceOrderInput struct {
	AddressID uuid.UUID   `json:"addressId"`
	Items     []LineInput `json:"items"`
}

type VerifyPaymentInput struct {
	GatewayOrderID string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	Signature      string `json:"razorpay_signature"`
}

// OnlineCheckout is what the client needs to open the gateway checkout.
type OnlineCheckout struct {
	ID       string    `json:"id"`
	Amount   int64     `json:"amount"`
	Currency string    `json:"currency"`
	OrderID  uuid.UUID `json:"orderId"`
	Key      string    `json:"key"`
}

type ListFilter struct {
	Status      Status
	PaymentType PaymentType
	Page        int
	Limit       int
}

type CreateOptions struct {
	DecrementStock bool
	ClearCart      bool
}

type PaymentConfirmation struct {
	OrderID        uuid.UUID
	GatewayOrderID string
	PaymentID      string
	Signature      string
	Amount         int64
	Currency       string
	VerifiedAt     time.Time
}
