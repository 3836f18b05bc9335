// Package sync keeps the remote cart store consistent with
// locally-applied cart mutations. Local state always updates
// first and unconditionally (optimistic); the matching remote
// write is queued behind a per-product writer so that writes for
// one product can never arrive out of order, and an undelivered
// older write is collapsed into the newest one (last-write-wins).
//
// Remote failures are logged and surfaced through per-line sync
// status, never rolled back into local state.
package sync

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/lumoshop/storefront/internal/model"
	"github.com/lumoshop/storefront/internal/state"
)

// CartAPI is the slice of the remote API the reconciler needs.
// *client.Client satisfies it.
type CartAPI interface {
	FetchCart(ctx context.Context) ([]model.CartItem, error)
	UpsertCartItem(ctx context.Context, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, productID string) error
}

// ErrWouldRemove is returned by ChangeQuantity when the delta
// would drop the quantity below 1. The caller must decide on
// removal explicitly and call Remove; quantity changes never
// remove a line. This is the one place that policy lives.
var ErrWouldRemove = errors.New("sync: quantity change would remove item")

// ErrNotInCart is returned when a quantity change targets a
// product the cart does not hold.
var ErrNotInCart = errors.New("sync: product not in cart")

// Status of a cart line's remote reconciliation.
type Status int

const (
	StatusIdle    Status = iota // no remote write attempted
	StatusPending               // a write is queued or in flight
	StatusSynced                // last write acknowledged
	StatusFailed                // last write failed; local state kept
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSynced:
		return "synced"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// remoteOp is one queued write for a product. A nil quantity
// pointer would be ambiguous, so remove is its own flag.
type remoteOp struct {
	remove   bool
	quantity int
}

// Reconciler mediates every cart intent: it applies the mutation
// to the store and, when a session exists, schedules the matching
// remote write.
type Reconciler struct {
	store   *state.Store
	api     CartAPI
	timeout time.Duration

	mu      sync.Mutex
	cond    *sync.Cond
	pending map[string]*remoteOp // queued, not yet taken by the writer
	busy    map[string]bool      // writer goroutine running for product
	status  map[string]Status
}

// New builds a reconciler over the given store and remote API.
func New(store *state.Store, api CartAPI) *Reconciler {
	r := &Reconciler{
		store:   store,
		api:     api,
		timeout: 10 * time.Second,
		pending: make(map[string]*remoteOp),
		busy:    make(map[string]bool),
		status:  make(map[string]Status),
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Add puts a product into the cart (merging by product ID) and
// upserts the resulting quantity remotely when authenticated.
func (r *Reconciler) Add(p model.Product, qty int) error {
	if err := r.store.Dispatch(state.AddToCart{Product: p, Quantity: qty}); err != nil {
		return err
	}
	r.scheduleUpsert(p.ID)
	return nil
}

// ChangeQuantity adjusts a line by a signed delta. A result below
// 1 is rejected with ErrWouldRemove before any state change.
func (r *Reconciler) ChangeQuantity(productID string, delta int) error {
	cur := r.store.State().CartQuantity(productID)
	if cur == 0 {
		return ErrNotInCart
	}
	if cur+delta < 1 {
		return ErrWouldRemove
	}
	if err := r.store.Dispatch(state.UpdateCartQuantity{ProductID: productID, Delta: delta}); err != nil {
		return err
	}
	r.scheduleUpsert(productID)
	return nil
}

// Remove deletes a line locally and remotely. Callers are
// expected to have confirmed the removal with the user.
func (r *Reconciler) Remove(productID string) error {
	if err := r.store.Dispatch(state.RemoveFromCart{ProductID: productID}); err != nil {
		return err
	}
	if r.store.State().IsLogin {
		r.schedule(productID, remoteOp{remove: true})
	}
	return nil
}

// Clear empties the local cart. The server clears its copy as a
// side effect of order creation, so no remote write is issued.
func (r *Reconciler) Clear() error {
	return r.store.Dispatch(state.ClearCart{})
}

// HandleLogin installs the user and replaces the local cart with
// the server's copy. Guest lines are discarded, not merged; an
// empty remote cart therefore empties the local one. On fetch
// failure the local cart is left as it was.
func (r *Reconciler) HandleLogin(ctx context.Context, u *model.User) error {
	if err := r.store.Dispatch(state.SetUserInfo{User: u}); err != nil {
		return err
	}
	items, err := r.api.FetchCart(ctx)
	if err != nil {
		log.Printf("reconciler: fetch cart failed: %v", err)
		return err
	}
	return r.store.Dispatch(state.SetCart{Items: items})
}

// HandleLogout drops the session and the cart.
func (r *Reconciler) HandleLogout() error {
	if err := r.store.Dispatch(state.SetUserInfo{User: nil}); err != nil {
		return err
	}
	return r.store.Dispatch(state.ClearCart{})
}

// Status reports the reconciliation state of one cart line.
func (r *Reconciler) Status(productID string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status[productID]
}

// Flush blocks until every queued remote write has completed.
// Intended for shutdown and tests.
func (r *Reconciler) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.inFlight() {
		r.cond.Wait()
	}
}

func (r *Reconciler) inFlight() bool {
	if len(r.pending) > 0 {
		return true
	}
	for _, b := range r.busy {
		if b {
			return true
		}
	}
	return false
}

// scheduleUpsert queues an upsert of the product's current local
// quantity, if a session exists and the line is still present.
func (r *Reconciler) scheduleUpsert(productID string) {
	s := r.store.State()
	if !s.IsLogin {
		return
	}
	qty := s.CartQuantity(productID)
	if qty < 1 {
		return
	}
	r.schedule(productID, remoteOp{quantity: qty})
}

// schedule queues op for the product, replacing any undelivered
// older op, and starts the product's writer if idle.
func (r *Reconciler) schedule(productID string, op remoteOp) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[productID] = &op
	r.status[productID] = StatusPending
	if !r.busy[productID] {
		r.busy[productID] = true
		go r.drain(productID)
	}
}

// drain executes ops for one product until none are pending. Only
// one drain goroutine runs per product, which serializes writes
// and keeps a stale quantity from overwriting a newer one.
func (r *Reconciler) drain(productID string) {
	for {
		r.mu.Lock()
		op := r.pending[productID]
		if op == nil {
			r.busy[productID] = false
			r.cond.Broadcast()
			r.mu.Unlock()
			return
		}
		delete(r.pending, productID)
		r.mu.Unlock()

		err := r.execute(productID, *op)

		r.mu.Lock()
		// Only record terminal status when nothing newer is queued.
		if r.pending[productID] == nil {
			if err != nil {
				r.status[productID] = StatusFailed
			} else {
				r.status[productID] = StatusSynced
			}
		}
		r.mu.Unlock()
	}
}

func (r *Reconciler) execute(productID string, op remoteOp) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var err error
	if op.remove {
		err = r.api.RemoveCartItem(ctx, productID)
	} else {
		err = r.api.UpsertCartItem(ctx, productID, op.quantity)
	}
	if err != nil {
		log.Printf("reconciler: sync %s failed: %v", productID, err)
	}
	return err
}
