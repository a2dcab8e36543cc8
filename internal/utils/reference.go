package utils

import (
	"strings"

	"github.com/google/uuid"
)

const (
	PendingTxnPrefix = "pending_"
	CODTxnPrefix     = "cod_"
)

// PendingTransactionID is the placeholder stored on an online order until the
// gateway payment id replaces it.
func PendingTransactionID() string {
	return PendingTxnPrefix + compactUUID()
}

func CODTransactionID() string {
	return CODTxnPrefix + compactUUID()
}

func IsPendingTransactionID(id string) bool {
	return strings.HasPrefix(id, PendingTxnPrefix)
}

// Receipt builds the gateway receipt for an order. Razorpay caps receipts at 40 chars.
func Receipt(orderID uuid.UUID) string {
	return "rcpt_" + strings.ReplaceAll(orderID.String(), "-", "")[:24]
}

func compactUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
