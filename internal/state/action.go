// Package state holds the storefront's client-side state container:
// a closed catalog of actions, a pure reducer and an injectable
// store. All mutation of the shared state flows through
// Store.Dispatch; nothing else may touch it.
package state

import (
	"errors"

	"github.com/lumoshop/storefront/internal/model"
)

// ErrUnknownAction is returned when an action outside the catalog
// is dispatched. Dispatching one is a programming error, never a
// recoverable condition, so callers must not swallow it.
var ErrUnknownAction = errors.New("state: unknown action")

// Action is the sealed set of mutations the store accepts. Each
// variant carries its own typed payload; the marker method keeps
// the set closed to this package.
type Action interface {
	isAction()
}

// SetLoginFlag toggles the session flag without touching user info.
type SetLoginFlag struct {
	Value bool
}

// SetUserInfo replaces the current user. A nil User signifies
// logout and also resets the login flag.
type SetUserInfo struct {
	User *model.User
}

// SetProducts replaces the cached catalog snapshot.
type SetProducts struct {
	Products []model.Product
}

// SetCategories replaces the cached category set.
type SetCategories struct {
	Categories []model.Category
}

// SetCart unconditionally replaces the cart. Used when hydrating
// from the server after login; never merged with local lines.
type SetCart struct {
	Items []model.CartItem
}

// AddToCart inserts a product into the cart, merging into an
// existing line by product ID. Quantity 0 means the default of 1.
type AddToCart struct {
	Product  model.Product
	Quantity int
}

// RemoveFromCart deletes the line with the given product ID.
// A no-op when the product is not in the cart.
type RemoveFromCart struct {
	ProductID string
}

// UpdateCartQuantity adjusts a line's quantity by a signed delta.
// An update that would drop the quantity below 1 is rejected and
// leaves the line unchanged; removal is its own explicit action.
type UpdateCartQuantity struct {
	ProductID string
	Delta     int
}

// ClearCart empties the cart.
type ClearCart struct{}

func (SetLoginFlag) isAction()       {}
func (SetUserInfo) isAction()        {}
func (SetProducts) isAction()        {}
func (SetCategories) isAction()      {}
func (SetCart) isAction()            {}
func (AddToCart) isAction()          {}
func (RemoveFromCart) isAction()     {}
func (UpdateCartQuantity) isAction() {}
func (ClearCart) isAction()          {}
