package repository

import (
	"context"
	"database/sql"

	"github.com/lumoshop/storefront/internal/model"
	"github.com/lumoshop/storefront/internal/utils"
)

// ReviewRepo persists product reviews.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// ListByProduct returns a product's reviews, newest first, with
// the reviewer's display name joined in.
func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, u.name, r.rating, r.content, r.created_at
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.product_id = ?
		ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		var content sql.NullString
		if err := rows.Scan(&rv.ID, &rv.UserName, &rv.Rating, &content, &rv.CreatedAt); err != nil {
			return nil, err
		}
		rv.Content = content.String
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// Create inserts a review and returns its generated ID. The
// product's rating aggregate is updated separately by
// ProductRepo.ApplyReview.
func (r *ReviewRepo) Create(ctx context.Context, productID string, userID uint64, rating int, content string) (string, error) {
	id := utils.NewSUID()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (id, product_id, user_id, rating, content) VALUES (?,?,?,?,?)",
		id, productID, userID, rating, content)
	return id, err
}

// ContactRepo persists contact form submissions.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

// Create stores a message with status "new" for back-office triage.
func (r *ContactRepo) Create(ctx context.Context, m model.ContactMessage) (string, error) {
	id := utils.NewSUID()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO contacts (id, name, email, subject, body, status) VALUES (?,?,?,?,?,'new')",
		id, m.Name, m.Email, m.Subject, m.Body)
	return id, err
}
