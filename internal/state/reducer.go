package state

import "github.com/lumoshop/storefront/internal/model"

// Reduce computes the next state from the current state and an
// action. It is pure: no I/O, no mutation of the input. Untouched
// fields are shared structurally; the cart slice is copied before
// any write.
//
// An action outside the catalog yields ErrUnknownAction and the
// input state unchanged.
func Reduce(s State, a Action) (State, error) {
	switch act := a.(type) {
	case SetLoginFlag:
		s.IsLogin = act.Value
		return s, nil

	case SetUserInfo:
		s.UserInfo = act.User
		s.IsLogin = act.User != nil
		return s, nil

	case SetProducts:
		s.Products = act.Products
		return s, nil

	case SetCategories:
		s.Categories = act.Categories
		return s, nil

	case SetCart:
		// Full replace: server state wins over whatever was local.
		s.Cart = cloneCart(act.Items)
		return s, nil

	case AddToCart:
		qty := act.Quantity
		if qty <= 0 {
			qty = 1
		}
		cart := cloneCart(s.Cart)
		merged := false
		for i := range cart {
			if cart[i].ProductID == act.Product.ID {
				cart[i].Quantity += qty
				merged = true
				break
			}
		}
		if !merged {
			cart = append(cart, model.LineItemFromProduct(act.Product, qty))
		}
		s.Cart = cart
		return s, nil

	case RemoveFromCart:
		cart := make([]model.CartItem, 0, len(s.Cart))
		for _, it := range s.Cart {
			if it.ProductID != act.ProductID {
				cart = append(cart, it)
			}
		}
		s.Cart = cart
		return s, nil

	case UpdateCartQuantity:
		cart := cloneCart(s.Cart)
		for i := range cart {
			if cart[i].ProductID != act.ProductID {
				continue
			}
			newQty := cart[i].Quantity + act.Delta
			if newQty < 1 {
				// Quantity never drops below 1 through this action;
				// removal is a distinct, explicit decision.
				break
			}
			cart[i].Quantity = newQty
			break
		}
		s.Cart = cart
		return s, nil

	case ClearCart:
		s.Cart = []model.CartItem{}
		return s, nil
	}

	return s, ErrUnknownAction
}
