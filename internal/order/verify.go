package order

import (
	"context"
	"strings"

	"agrimart-be/internal/audit"
	"agrimart-be/internal/events"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/metrics"
	"agrimart-be/internal/payment"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// VerifyPayment confirms a checkout callback and settles the order. Repeating a
// successful verification returns the paid order without touching stock again.
func (s *service) VerifyPayment(ctx context.Context, userID uint, input VerifyPaymentInput) (*Order, error) {
	input.GatewayOrderID = strings.TrimSpace(input.GatewayOrderID)
	input.PaymentID = strings.TrimSpace(input.PaymentID)
	input.Signature = strings.TrimSpace(input.Signature)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "VerifyPayment"),
		zap.Uint("user_id", userID),
		zap.String("gateway_order_id", input.GatewayOrderID),
		zap.String("payment_id", input.PaymentID),
	)

	if input.GatewayOrderID == "" || input.PaymentID == "" || input.Signature == "" {
		return nil, ErrMissingPaymentFields
	}

	// 1. Signature
	if err := s.gateway.VerifySignature(input.GatewayOrderID, input.PaymentID, input.Signature); err != nil {
		log.Warn("payment signature rejected")
		metrics.Payments.Rejected.Inc()
		s.record(ctx, audit.Entry{
			Action:         audit.ActionPaymentRejected,
			UserID:         userID,
			GatewayOrderID: input.GatewayOrderID,
			PaymentID:      input.PaymentID,
			Data:           bson.M{"reason": "signature mismatch"},
		})
		return nil, payment.ErrSignatureMismatch
	}

	// 2. Resolve internal order
	remote, err := s.gateway.FetchOrder(ctx, input.GatewayOrderID)
	if err != nil {
		log.Error("failed to fetch gateway order", zap.Error(err))
		return nil, err
	}

	orderID, err := s.resolveOrderID(ctx, remote, input.GatewayOrderID)
	if err != nil {
		return nil, err
	}

	// 3. Settle
	o, alreadyPaid, err := s.repo.MarkPaid(ctx, PaymentConfirmation{
		OrderID:        orderID,
		GatewayOrderID: input.GatewayOrderID,
		PaymentID:      input.PaymentID,
		Signature:      input.Signature,
		Amount:         remote.Amount,
		Currency:       remote.Currency,
		VerifiedAt:     s.now().UTC(),
	})
	if err != nil {
		log.Error("failed to settle order", zap.String("order_id", orderID.String()), zap.Error(err))
		metrics.Payments.Failed.Inc()
		s.record(ctx, audit.Entry{
			Action:         audit.ActionPaymentFailed,
			OrderID:        orderID.String(),
			UserID:         userID,
			GatewayOrderID: input.GatewayOrderID,
			PaymentID:      input.PaymentID,
			Data:           bson.M{"error": err.Error()},
		})
		return nil, err
	}

	if alreadyPaid {
		log.Info("payment already verified", zap.String("order_id", orderID.String()))
		metrics.Payments.Duplicate.Inc()
		return o, nil
	}

	s.catalog.Invalidate(ctx, productIDs(o)...)

	// 4. Side channels
	log.Info("payment verified", zap.String("order_id", orderID.String()))
	metrics.Payments.Verified.Inc()
	s.publish(ctx, events.TypeOrderPaid, o, StatusPaymentPending)
	s.record(ctx, audit.Entry{
		Action:         audit.ActionPaymentVerified,
		OrderID:        orderID.String(),
		UserID:         o.UserID,
		GatewayOrderID: input.GatewayOrderID,
		PaymentID:      input.PaymentID,
		Data:           bson.M{"amount": remote.Amount, "currency": remote.Currency},
	})

	return o, nil
}

func (s *service) resolveOrderID(ctx context.Context, remote *payment.RemoteOrder, gatewayOrderID string) (uuid.UUID, error) {
	if raw := remote.OrderID(); raw != "" {
		id, err := uuid.Parse(raw)
		if err == nil {
			return id, nil
		}
		logger.FromCtx(ctx).Warn("gateway notes carry malformed order id", zap.String("order_id", raw))
	}

	return s.repo.FindIDByGatewayOrderID(ctx, gatewayOrderID)
}
