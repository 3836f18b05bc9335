package repository

import (
	"context"
	"database/sql"

	"github.com/lumoshop/storefront/internal/model"
)

// CartRepo persists per-user carts in the `cart_items` table.
// Rows hold only (user_id, product_id, quantity); display fields
// are joined from products on read so the server never stores a
// stale snapshot.
type CartRepo struct{ DB *sql.DB }

func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{DB: db} }

// Get returns the user's cart with product details joined in.
// Image extraction picks the first element of the JSON images
// column, matching what the client showed when the line was added.
func (r *CartRepo) Get(ctx context.Context, userID uint64) ([]model.CartItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.name, p.price,
		       COALESCE(JSON_UNQUOTE(JSON_EXTRACT(p.images, '$[0]')), '') AS image,
		       c.quantity
		FROM cart_items c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = ?
		ORDER BY c.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Price, &it.Image, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Upsert sets the absolute quantity for a product line, inserting
// the row on first write. Quantities below 1 must be handled by
// the caller as a Delete; this method rejects nothing.
func (r *CartRepo) Upsert(ctx context.Context, userID uint64, productID string, quantity int) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?,?,?)
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity)`,
		userID, productID, quantity)
	return err
}

// Delete removes one product line. Deleting an absent line is a
// no-op, mirroring the reducer's removal semantics.
func (r *CartRepo) Delete(ctx context.Context, userID uint64, productID string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id=? AND product_id=?", userID, productID)
	return err
}

// Clear drops the user's whole cart. Called inside the checkout
// transaction so an order and a cleared cart commit atomically.
func (r *CartRepo) Clear(ctx context.Context, tx *sql.Tx, userID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id=?", userID)
	return err
}
