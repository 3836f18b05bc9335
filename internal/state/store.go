package state

import "sync"

// Store is an injectable state container. It owns a single State
// value, applies actions through Reduce under a mutex, and
// notifies subscribers after every successful dispatch. There is
// deliberately no package-level instance; callers construct one
// and pass it where it is needed.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  []func(State)
}

// New returns a store seeded with the given initial state.
func New(initial State) *Store {
	return &Store{state: initial}
}

// Dispatch applies an action. On success subscribers are invoked
// synchronously, in registration order, with the new state. An
// unknown action returns ErrUnknownAction and changes nothing.
func (st *Store) Dispatch(a Action) error {
	st.mu.Lock()
	next, err := Reduce(st.state, a)
	if err != nil {
		st.mu.Unlock()
		return err
	}
	st.state = next
	subs := st.subs
	st.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// State returns a snapshot of the current state. The cart slice is
// copied so callers can never mutate the store through it.
func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s := st.state
	s.Cart = cloneCart(s.Cart)
	return s
}

// Subscribe registers a listener called after each dispatch.
// Listeners must not dispatch from within the callback.
func (st *Store) Subscribe(fn func(State)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.subs = append(st.subs, fn)
}
