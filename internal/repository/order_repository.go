package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lumoshop/storefront/internal/loyalty"
	"github.com/lumoshop/storefront/internal/model"
	"github.com/lumoshop/storefront/internal/utils"
)

// OrderRepo persists orders and their line items. Checkout and
// receipt confirmation both run inside transactions: an order must
// never exist without its items, and points must never be
// credited without the status flip that justifies them.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// Create inserts the order with its items, snapshots the shipping
// phone/address onto the user row, and clears the user's cart,
// all in one transaction. The returned order carries the
// generated ID.
func (r *OrderRepo) Create(ctx context.Context, o model.Order, items []model.OrderItem, carts *CartRepo) (model.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	o.ID = utils.NewSUID()
	o.Status = model.OrderStatusPending
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total_amount, discount_amount, final_amount,
		                    points_earned, status, shipping_name, shipping_phone, shipping_address, note)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.UserID, o.TotalAmount, o.DiscountAmount, o.FinalAmount,
		o.PointsEarned, o.Status, o.ShippingName, o.ShippingPhone, o.ShippingAddress, o.Note)
	if err != nil {
		return model.Order{}, err
	}

	for _, it := range items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (id, order_id, product_id, quantity, price) VALUES (?,?,?,?,?)",
			utils.NewSUID(), o.ID, it.ProductID, it.Quantity, it.Price)
		if err != nil {
			return model.Order{}, err
		}
	}

	// Latest shipping details become the user's defaults.
	_, err = tx.ExecContext(ctx,
		"UPDATE users SET phone=?, address=? WHERE id=?",
		o.ShippingPhone, o.ShippingAddress, o.UserID)
	if err != nil {
		return model.Order{}, err
	}

	if err := carts.Clear(ctx, tx, o.UserID); err != nil {
		return model.Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, err
	}
	o.CreatedAt = time.Now().UTC()
	return o, nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	return r.list(ctx,
		"SELECT id, user_id, total_amount, discount_amount, final_amount, points_earned, status, shipping_name, created_at FROM orders WHERE user_id=? ORDER BY created_at DESC",
		userID)
}

// ListAll returns every order, newest first. Admin use only.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx,
		"SELECT id, user_id, total_amount, discount_amount, final_amount, points_earned, status, shipping_name, created_at FROM orders ORDER BY created_at DESC")
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var created sql.NullTime
		err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.DiscountAmount,
			&o.FinalAmount, &o.PointsEarned, &o.Status, &o.ShippingName, &created)
		if err != nil {
			return nil, err
		}
		o.CreatedAt = created.Time
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateStatus sets an order's status directly. Admin use only;
// customers go through ConfirmReceipt.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status=? WHERE id=?", status, orderID)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// ConfirmReceipt flips a shipping order to completed, credits its
// points to the owning user and recomputes the user's loyalty
// level, all atomically. Returns the completed order.
//
// ErrNotFound: no such order for this user. ErrConflict: the
// order is not in the shipping status.
func (r *OrderRepo) ConfirmReceipt(ctx context.Context, orderID string, userID uint64) (model.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var o model.Order
	var created sql.NullTime
	err = tx.QueryRowContext(ctx,
		"SELECT id, user_id, total_amount, discount_amount, final_amount, points_earned, status, shipping_name, created_at FROM orders WHERE id=? AND user_id=? FOR UPDATE",
		orderID, userID).Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.DiscountAmount,
		&o.FinalAmount, &o.PointsEarned, &o.Status, &o.ShippingName, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	o.CreatedAt = created.Time

	if o.Status != model.OrderStatusShipping {
		return model.Order{}, ErrConflict
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE orders SET status=? WHERE id=?", model.OrderStatusCompleted, o.ID); err != nil {
		return model.Order{}, err
	}

	var points int64
	if err := tx.QueryRowContext(ctx,
		"SELECT points FROM users WHERE id=? FOR UPDATE", userID).Scan(&points); err != nil {
		return model.Order{}, err
	}
	points += o.PointsEarned
	level := loyalty.TierFor(points, loyalty.DefaultTable).Level
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET points=?, level=? WHERE id=?", points, level, userID); err != nil {
		return model.Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, err
	}
	o.Status = model.OrderStatusCompleted
	return o, nil
}
