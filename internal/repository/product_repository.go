package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lumoshop/storefront/internal/model"
)

// ProductRepo reads and writes the `products` table. Images and
// specs live in JSON columns and are (de)serialized here so the
// rest of the code only ever sees Go values.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productColumns = "id,category_id,name,price,stock,images,description,specs,rating,review_count,created_at"

// Filter narrows List results. Zero values mean "no filter".
type Filter struct {
	CategoryID string // exact category match; "all" is treated as unset
	Search     string // substring match against the product name
}

// List returns non-deleted products matching the filter.
func (r *ProductRepo) List(ctx context.Context, f Filter) ([]model.Product, error) {
	sqlStr := "SELECT " + productColumns + " FROM products WHERE is_deleted = FALSE"
	var args []any
	if f.CategoryID != "" && f.CategoryID != "all" {
		sqlStr += " AND category_id = ?"
		args = append(args, f.CategoryID)
	}
	if f.Search != "" {
		sqlStr += " AND name LIKE ?"
		args = append(args, "%"+f.Search+"%")
	}
	sqlStr += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByID fetches one product, deleted or not (the cart and order
// paths still need snapshots of soft-deleted products).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (model.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// Create inserts a product. The caller supplies the ID.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) error {
	images, specs, err := encodeJSONColumns(p)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO products (id, category_id, name, price, stock, images, description, specs) VALUES (?,?,?,?,?,?,?,?)",
		p.ID, p.CategoryID, p.Name, p.Price, p.Stock, images, p.Description, specs)
	return err
}

// Update overwrites a product's editable fields.
func (r *ProductRepo) Update(ctx context.Context, p model.Product) error {
	images, specs, err := encodeJSONColumns(p)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE products SET category_id=?, name=?, price=?, stock=?, images=?, description=?, specs=? WHERE id=?",
		p.CategoryID, p.Name, p.Price, p.Stock, images, p.Description, specs, p.ID)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// SoftDelete hides a product from the catalog without breaking
// order history rows that reference it.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE products SET is_deleted = TRUE WHERE id=?", id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// ApplyReview folds a new rating into the aggregate.
func (r *ProductRepo) ApplyReview(ctx context.Context, id string, rating int) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET rating = (rating*review_count + ?)/(review_count+1), review_count = review_count+1 WHERE id=?",
		rating, id)
	return err
}

func encodeJSONColumns(p model.Product) (images, specs []byte, err error) {
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, err
	}
	if p.Specs == nil {
		p.Specs = map[string]string{}
	}
	specs, err = json.Marshal(p.Specs)
	return images, specs, err
}

func scanProduct(s scanner) (model.Product, error) {
	var (
		p             model.Product
		images, specs []byte
		descr         sql.NullString
		rating        sql.NullFloat64
		reviews       sql.NullInt64
		createdAt     sql.NullTime
	)
	err := s.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.Stock,
		&images, &descr, &specs, &rating, &reviews, &createdAt)
	if err != nil {
		return model.Product{}, err
	}
	p.Description = descr.String
	p.Rating = rating.Float64
	p.ReviewCount = int(reviews.Int64)
	p.CreatedAt = createdAt.Time
	if len(images) > 0 {
		_ = json.Unmarshal(images, &p.Images)
	}
	if len(specs) > 0 {
		_ = json.Unmarshal(specs, &p.Specs)
	}
	return p, nil
}

// mustAffect converts a zero-row update into ErrNotFound.
func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CategoryRepo reads the `categories` table.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// List returns every category.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
