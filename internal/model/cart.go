package model

// CartItem is one line of a cart: a product snapshot plus a
// quantity. Name, Price and Image are copied from the product at
// the moment it is added and are not re-synced from the catalog
// afterwards, so a later price change does not silently reprice
// an existing cart line.
//
// The product identifier is the merge key: a cart never holds two
// lines for the same product, and Quantity is always >= 1 (a line
// that would reach zero is removed instead).
//
// Fields:
//  ProductID – product identifier, unique within the cart.
//  Name      – product name snapshot.
//  Price     – unit price snapshot, whole currency units.
//  Image     – thumbnail URL snapshot.
//  Quantity  – units of this product, >= 1.
type CartItem struct {
	ProductID string `json:"id"`       // cart_items.product_id
	Name      string `json:"name"`     // snapshot of products.name
	Price     int64  `json:"price"`    // snapshot of products.price
	Image     string `json:"image"`    // snapshot thumbnail
	Quantity  int    `json:"quantity"` // cart_items.quantity
}

// LineItemFromProduct builds a cart line from a product with the
// given quantity, snapshotting the display fields.
func LineItemFromProduct(p Product, qty int) CartItem {
	return CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image(),
		Quantity:  qty,
	}
}
