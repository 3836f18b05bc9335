package model

import "time"

// Product is a catalog entry as stored in the `products` table.
// Prices are whole currency units (the shop's currency has no
// sub-unit), so int64 is exact and no decimal type is needed.
//
// Fields:
//  ID          – primary key identifier (string SUID).
//  CategoryID  – owning category.
//  Name        – display name.
//  Price       – unit price in whole currency units.
//  Stock       – units in stock (never negative).
//  Images      – image URLs; the first one is the thumbnail.
//  Description – free-form description text.
//  Specs       – specification key/value pairs (e.g. "CPU" -> "M3").
//  Rating      – aggregate review rating, 0 when unreviewed.
//  ReviewCount – number of reviews behind Rating.
//  IsDeleted   – soft-delete flag; hidden from the public catalog.
//  CreatedAt   – timestamp of creation.
type Product struct {
	ID          string            `json:"id"`           // products.id
	CategoryID  string            `json:"category_id"`  // products.category_id
	Name        string            `json:"name"`         // products.name
	Price       int64             `json:"price"`        // products.price
	Stock       int               `json:"stock"`        // products.stock
	Images      []string          `json:"images"`       // products.images (JSON column)
	Description string            `json:"description"`  // products.description
	Specs       map[string]string `json:"specs"`        // products.specs (JSON column)
	Rating      float64           `json:"rating"`       // products.rating
	ReviewCount int               `json:"review_count"` // products.review_count
	IsDeleted   bool              `json:"-"`            // products.is_deleted
	CreatedAt   time.Time         `json:"-"`            // products.created_at
}

// Image returns the product thumbnail, or empty when the product
// has no images.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Category is a row in the `categories` table. Categories form a
// flat, unordered set used for catalog filtering.
type Category struct {
	ID   string `json:"id"`   // categories.id
	Name string `json:"name"` // categories.name
}
