package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"agrimart-be/internal/address"
	"agrimart-be/internal/audit"
	"agrimart-be/internal/events"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/payment"
	"agrimart-be/internal/product"
	"agrimart-be/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type AddressLookup interface {
	Owned(ctx context.Context, userID uint, addressID uuid.UUID) (*address.Address, error)
}

type Catalog interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*product.Product, error)
	Invalidate(ctx context.Context, ids ...uuid.UUID)
}

type Service interface {
	PlaceCOD(ctx context.Context, userID uint, input PlaceOrderInput) (*Order, error)
	CreateOnline(ctx context.Context, userID uint, input PlaceOrderInput) (*Order, *OnlineCheckout, error)
	VerifyPayment(ctx context.Context, userID uint, input VerifyPaymentInput) (*Order, error)
	ListUserOrders(ctx context.Context, userID uint) ([]*Order, error)
	ListAllOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	GetOrder(ctx context.Context, userID uint, orderID uuid.UUID, isSeller bool) (*Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status Status) (*Order, error)
}

type service struct {
	repo      Repository
	addresses AddressLookup
	catalog   Catalog
	gateway   payment.Gateway
	publisher events.Publisher
	auditor   audit.Recorder
	now       func() time.Time
}

func NewService(
	repo Repository,
	addresses AddressLookup,
	catalog Catalog,
	gateway payment.Gateway,
	publisher events.Publisher,
	auditor audit.Recorder,
) Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if auditor == nil {
		auditor = audit.Noop{}
	}
	return &service{
		repo:      repo,
		addresses: addresses,
		catalog:   catalog,
		gateway:   gateway,
		publisher: publisher,
		auditor:   auditor,
		now:       time.Now,
	}
}

func (s *service) PlaceCOD(ctx context.Context, userID uint, input PlaceOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceCOD"),
		zap.Uint("user_id", userID),
	)

	o, err := s.buildOrder(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	o.PaymentType = PaymentCOD
	o.Status = StatusOrderPlaced
	o.TransactionID = utils.CODTransactionID()

	if err := s.repo.Create(ctx, o, CreateOptions{DecrementStock: true, ClearCart: true}); err != nil {
		log.Error("failed to create COD order", zap.Error(err))
		return nil, err
	}
	s.catalog.Invalidate(ctx, productIDs(o)...)

	log.Info("COD order placed",
		zap.String("order_id", o.ID.String()),
		zap.Int64("amount", o.Amount),
	)
	s.publish(ctx, events.TypeOrderPlaced, o, "")

	return o, nil
}

func (s *service) CreateOnline(ctx context.Context, userID uint, input PlaceOrderInput) (*Order, *OnlineCheckout, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOnline"),
		zap.Uint("user_id", userID),
	)

	o, err := s.buildOrder(ctx, userID, input)
	if err != nil {
		return nil, nil, err
	}
	o.PaymentType = PaymentOnline
	o.Status = StatusPaymentPending
	o.TransactionID = utils.PendingTransactionID()

	if err := s.repo.Create(ctx, o, CreateOptions{}); err != nil {
		log.Error("failed to create online order", zap.Error(err))
		return nil, nil, err
	}

	remote, err := s.gateway.CreateOrder(ctx, payment.CreateOrderRequest{
		Amount:   o.Amount * 100,
		Currency: payment.CurrencyINR,
		Receipt:  utils.Receipt(o.ID),
		Notes: map[string]string{
			"order_id": o.ID.String(),
			"user_id":  strconv.FormatUint(uint64(userID), 10),
		},
	})
	if err != nil {
		log.Error("gateway order creation failed",
			zap.String("order_id", o.ID.String()), zap.Error(err))
		return nil, nil, err
	}

	if err := s.repo.SetGatewayOrderID(ctx, o.ID, remote.ID); err != nil {
		log.Error("failed to store gateway order id", zap.Error(err))
		return nil, nil, err
	}
	o.GatewayOrderID = &remote.ID

	log.Info("online order created",
		zap.String("order_id", o.ID.String()),
		zap.String("gateway_order_id", remote.ID),
	)
	s.publish(ctx, events.TypeOrderPlaced, o, "")

	return o, &OnlineCheckout{
		ID:       remote.ID,
		Amount:   remote.Amount,
		Currency: remote.Currency,
		OrderID:  o.ID,
		Key:      s.gateway.KeyID(),
	}, nil
}

// buildOrder validates the request and prices it from current catalog data.
func (s *service) buildOrder(ctx context.Context, userID uint, input PlaceOrderInput) (*Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if input.AddressID == uuid.Nil {
		return nil, ErrAddressRequired
	}

	lines := make([]LineInput, 0, len(input.Items))
	index := make(map[uuid.UUID]int, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if i, seen := index[in.ProductID]; seen {
			lines[i].Quantity += in.Quantity
			continue
		}
		index[in.ProductID] = len(lines)
		lines = append(lines, in)
	}

	if _, err := s.addresses.Owned(ctx, userID, input.AddressID); err != nil {
		if errors.Is(err, address.ErrAddressNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:        uuid.New(),
		UserID:    userID,
		AddressID: input.AddressID,
		Items:     make([]*Item, 0, len(lines)),
	}

	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, l.ProductID)
		}
		if l.Quantity > p.Stock {
			return nil, &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   l.Quantity,
				Available:   p.Stock,
			}
		}

		item := &Item{
			ProductID: p.ID,
			Name:      p.Name,
			Images:    p.Images,
			Quantity:  l.Quantity,
			UnitPrice: p.UnitPrice(),
		}
		o.Items = append(o.Items, item)
		o.Subtotal += item.LineTotal()
	}

	o.Tax = Tax(o.Subtotal)
	o.Amount = o.Subtotal + o.Tax

	return o, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAllOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if filter.PaymentType != "" && !filter.PaymentType.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidPayment, filter.PaymentType)
	}
	return s.repo.List(ctx, filter)
}

func (s *service) GetOrder(ctx context.Context, userID uint, orderID uuid.UUID, isSeller bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isSeller && o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", orderID.String()),
		zap.String("target", string(status)),
	)

	if !status.Settable() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status == status {
		return o, nil
	}
	if !o.Status.CanTransitionTo(status) {
		log.Warn("rejected status transition", zap.String("current", string(o.Status)))
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, o.Status, status); err != nil {
		return nil, err
	}

	previous := o.Status
	o.Status = status
	o.UpdatedAt = s.now()

	log.Info("order status updated", zap.String("previous", string(previous)))
	s.publish(ctx, events.TypeOrderStatusChanged, o, previous)
	s.record(ctx, audit.Entry{
		Action:  audit.ActionStatusChanged,
		OrderID: o.ID.String(),
		UserID:  o.UserID,
		Data:    bson.M{"from": string(previous), "to": string(status)},
	})

	return o, nil
}

func (s *service) publish(ctx context.Context, eventType string, o *Order, previous Status) {
	event := events.OrderEvent{
		Type:           eventType,
		OrderID:        o.ID.String(),
		UserID:         o.UserID,
		Status:         string(o.Status),
		PreviousStatus: string(previous),
		PaymentType:    string(o.PaymentType),
		Amount:         o.Amount,
		OccurredAt:     s.now().UTC(),
	}
	if o.Payment != nil {
		event.PaymentID = o.Payment.PaymentID
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.FromCtx(ctx).Warn("order event not published",
			zap.String("type", eventType), zap.Error(err))
	}
}

func (s *service) record(ctx context.Context, entry audit.Entry) {
	entry.CreatedAt = s.now().UTC()
	if err := s.auditor.Record(ctx, entry); err != nil {
		logger.FromCtx(ctx).Warn("audit entry not recorded",
			zap.String("action", entry.Action), zap.Error(err))
	}
}

func productIDs(o *Order) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}
