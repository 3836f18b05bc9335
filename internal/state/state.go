package state

import "github.com/lumoshop/storefront/internal/model"

// State is the full client-side state snapshot. Values handed out
// by the store are copies; mutating one never affects the store.
//
// Fields:
//  UserInfo   – the authenticated user, nil in guest mode.
//  IsLogin    – whether a session exists; kept consistent with
//               UserInfo by the reducer.
//  Cart       – cart lines in insertion order.
//  Products   – cached catalog snapshot.
//  Categories – cached category set.
type State struct {
	UserInfo   *model.User
	IsLogin    bool
	Cart       []model.CartItem
	Products   []model.Product
	Categories []model.Category
}

// CartQuantity returns the quantity of the given product in the
// cart, 0 when absent.
func (s State) CartQuantity(productID string) int {
	for _, it := range s.Cart {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}

// cloneCart copies the cart slice so reducer outputs never alias
// the input state's backing array.
func cloneCart(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}
