package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agrimart-be/internal/address"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order, opts CreateOptions) error
	SetGatewayOrderID(ctx context.Context, orderID uuid.UUID, gatewayOrderID string) error
	// MarkPaid reports alreadyPaid when the order had been paid before this call.
	MarkPaid(ctx context.Context, p PaymentConfirmation) (o *Order, alreadyPaid bool, err error)
	FindIDByGatewayOrderID(ctx context.Context, gatewayOrderID string) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const orderSelect = `
	SELECT
		o.id, o.user_id, o.address_id,
		o.subtotal, o.tax, o.amount,
		o.payment_type, o.is_paid, o.status, o.transaction_id,
		o.gateway_order_id, o.payment_id, o.payment_signature,
		o.paid_amount, o.paid_currency, o.paid_at,
		o.created_at, o.updated_at,
		a.name, a.phone, a.street, a.city, a.state, a.zipcode, a.country
	FROM orders o
	LEFT JOIN addresses a ON a.id = o.address_id
`

func scanOrder(scan func(dest ...any) error) (*Order, error) {
	var (
		o                                              Order
		gatewayOrderID, paymentID, signature, currency sql.NullString
		paidAmount                                     sql.NullInt64
		paidAt                                         sql.NullTime
		name, phone, street, city, state, zip, country sql.NullString
	)

	err := scan(
		&o.ID, &o.UserID, &o.AddressID,
		&o.Subtotal, &o.Tax, &o.Amount,
		&o.PaymentType, &o.IsPaid, &o.Status, &o.TransactionID,
		&gatewayOrderID, &paymentID, &signature,
		&paidAmount, &currency, &paidAt,
		&o.CreatedAt, &o.UpdatedAt,
		&name, &phone, &street, &city, &state, &zip, &country,
	)
	if err != nil {
		return nil, err
	}

	if gatewayOrderID.Valid {
		o.GatewayOrderID = &gatewayOrderID.String
	}
	if paymentID.Valid && paidAt.Valid {
		o.Payment = &PaymentInfo{
			GatewayOrderID: gatewayOrderID.String,
			PaymentID:      paymentID.String,
			Signature:      signature.String,
			Amount:         paidAmount.Int64,
			Currency:       currency.String,
			VerifiedAt:     paidAt.Time,
		}
	}
	if name.Valid {
		o.Address = &address.Address{
			ID:      o.AddressID,
			UserID:  o.UserID,
			Name:    name.String,
			Phone:   phone.String,
			Street:  street.String,
			City:    city.String,
			State:   state.String,
			Zipcode: zip.String,
			Country: country.String,
		}
	}
	o.Items = []*Item{}

	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order, opts CreateOptions) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID.String()),
		zap.String("payment_type", string(o.PaymentType)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, user_id, address_id,
			subtotal, tax, amount,
			payment_type, is_paid, status, transaction_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at
	`,
		o.ID, o.UserID, o.AddressID,
		o.Subtotal, o.Tax, o.Amount,
		o.PaymentType, o.IsPaid, o.Status, o.TransactionID,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	// 2. Insert items
	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1,$2,$3,$4)
		`, o.ID, item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			log.Error("failed to insert order item",
				zap.String("product_id", item.ProductID.String()), zap.Error(err))
			return err
		}
	}

	// 3. Deduct stock
	if opts.DecrementStock {
		if err := decrementStock(ctx, tx, o.Items); err != nil {
			log.Warn("stock deduction failed", zap.Error(err))
			return err
		}
	}

	// 4. Clear cart
	if opts.ClearCart {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
			log.Error("failed to clear cart", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

// decrementStock never lets stock go negative; a lost race is reported as insufficient stock.
func decrementStock(ctx context.Context, tx *sql.Tx, items []*Item) error {
	for _, item := range items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = NOW()
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 1 {
			continue
		}

		stockErr := &InsufficientStockError{ProductID: item.ProductID, ProductName: item.Name, Requested: item.Quantity}
		err = tx.QueryRowContext(ctx,
			`SELECT name, stock FROM products WHERE id = $1`, item.ProductID,
		).Scan(&stockErr.ProductName, &stockErr.Available)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if err != nil {
			return err
		}
		return stockErr
	}
	return nil
}

func (r *repository) SetGatewayOrderID(ctx context.Context, orderID uuid.UUID, gatewayOrderID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET gateway_order_id = $1, updated_at = NOW()
		WHERE id = $2
	`, gatewayOrderID, orderID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) MarkPaid(ctx context.Context, p PaymentConfirmation) (*Order, bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MarkPaid"),
		zap.String("order_id", p.OrderID.String()),
		zap.String("payment_id", p.PaymentID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	var (
		userID         uint
		status         Status
		isPaid         bool
		paymentType    PaymentType
		gatewayOrderID sql.NullString
	)
	err = tx.QueryRowContext(ctx, `
		SELECT user_id, status, is_paid, payment_type, gateway_order_id
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, p.OrderID).Scan(&userID, &status, &isPaid, &paymentType, &gatewayOrderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to lock order", zap.Error(err))
		return nil, false, err
	}

	if isPaid {
		log.Info("order already paid, skipping")
		if err := tx.Commit(); err != nil {
			return nil, false, err
		}
		o, err := r.GetByID(ctx, p.OrderID)
		return o, true, err
	}
	if status == StatusCancelled || paymentType != PaymentOnline {
		log.Warn("order not payable online",
			zap.String("status", string(status)), zap.String("payment_type", string(paymentType)))
		return nil, false, ErrOrderNotPayable
	}
	if gatewayOrderID.Valid && gatewayOrderID.String != p.GatewayOrderID {
		log.Warn("gateway order mismatch", zap.String("stored", gatewayOrderID.String))
		return nil, false, ErrGatewayOrderMismatch
	}

	items, err := loadItems(ctx, tx, []uuid.UUID{p.OrderID})
	if err != nil {
		return nil, false, err
	}

	if err := decrementStock(ctx, tx, items[p.OrderID]); err != nil {
		log.Warn("stock deduction failed", zap.Error(err))
		return nil, false, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET is_paid = true,
		    status = $2,
		    transaction_id = $3,
		    gateway_order_id = $4,
		    payment_id = $3,
		    payment_signature = $5,
		    paid_amount = $6,
		    paid_currency = $7,
		    paid_at = $8,
		    updated_at = NOW()
		WHERE id = $1
	`, p.OrderID, StatusOrderPlaced, p.PaymentID, p.GatewayOrderID,
		p.Signature, p.Amount, p.Currency, p.VerifiedAt)
	if err != nil {
		log.Error("failed to mark order paid", zap.Error(err))
		return nil, false, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	o, err := r.GetByID(ctx, p.OrderID)
	return o, false, err
}

func (r *repository) FindIDByGatewayOrderID(ctx context.Context, gatewayOrderID string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM orders WHERE gateway_order_id = $1`, gatewayOrderID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrOrderNotFound
	}
	return id, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("order_id", id.String()), zap.Error(err))
		return nil, err
	}

	items, err := loadItems(ctx, r.db, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	if list, ok := items[o.ID]; ok {
		o.Items = list
	}

	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	return r.list(ctx, orderSelect+`
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`, userID)
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	limit, offset := utils.NormalizePage(filter.Page, filter.Limit)

	query := orderSelect + ` WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND o.status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.PaymentType != "" {
		query += fmt.Sprintf(" AND o.payment_type = $%d", argIndex)
		args = append(args, filter.PaymentType)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	return r.list(ctx, query, args...)
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	ids := []uuid.UUID{}
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := loadItems(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if list, ok := items[o.ID]; ok {
			o.Items = list
		}
	}

	return orders, nil
}

func loadItems(ctx context.Context, q queryer, orderIDs []uuid.UUID) (map[uuid.UUID][]*Item, error) {
	raw := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		raw = append(raw, id.String())
	}

	rows, err := q.QueryContext(ctx, `
		SELECT
			oi.order_id, oi.product_id, oi.quantity, oi.unit_price,
			COALESCE(p.name, ''), p.images
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.id
	`, pq.Array(raw))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]*Item, len(orderIDs))
	for rows.Next() {
		var (
			orderID uuid.UUID
			item    Item
			images  pq.StringArray
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Name, &images); err != nil {
			return nil, err
		}
		item.Images = []string(images)
		out[orderID] = append(out[orderID], &item)
	}

	return out, rows.Err()
}

// UpdateStatus only succeeds while the stored status still equals from.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order status",
			zap.String("order_id", id.String()), zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStatusChanged
	}
	return nil
}
