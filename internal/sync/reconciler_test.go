package sync

import (
	"context"
	"errors"
	stdsync "sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumoshop/storefront/internal/model"
	"github.com/lumoshop/storefront/internal/state"
)

type upsertCall struct {
	productID string
	quantity  int
}

// fakeAPI records calls and can fail or stall on demand.
type fakeAPI struct {
	mu       stdsync.Mutex
	upserts  []upsertCall
	removes  []string
	cart     []model.CartItem
	fetchErr error
	writeErr error
	gate     chan struct{} // when set, UpsertCartItem blocks until closed
}

func (f *fakeAPI) FetchCart(ctx context.Context) ([]model.CartItem, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.cart, nil
}

func (f *fakeAPI) UpsertCartItem(ctx context.Context, productID string, qty int) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.upserts = append(f.upserts, upsertCall{productID, qty})
	return nil
}

func (f *fakeAPI) RemoveCartItem(ctx context.Context, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.removes = append(f.removes, productID)
	return nil
}

func (f *fakeAPI) snapshot() ([]upsertCall, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]upsertCall(nil), f.upserts...), append([]string(nil), f.removes...)
}

func product(id string, price int64) model.Product {
	return model.Product{ID: id, Name: "P" + id, Price: price, Stock: 50}
}

func loggedInStore(t *testing.T) *state.Store {
	t.Helper()
	st := state.New(state.State{})
	require.NoError(t, st.Dispatch(state.SetUserInfo{User: &model.User{ID: 1, Level: "GOLD"}}))
	return st
}

func TestAddSyncsResultingQuantity(t *testing.T) {
	api := &fakeAPI{}
	st := loggedInStore(t)
	r := New(st, api)

	require.NoError(t, r.Add(product("p1", 1000), 2))
	require.NoError(t, r.Add(product("p1", 1000), 3))
	r.Flush()

	upserts, _ := api.snapshot()
	require.NotEmpty(t, upserts)
	// the final write carries the merged local quantity
	assert.Equal(t, upsertCall{"p1", 5}, upserts[len(upserts)-1])
	assert.Equal(t, StatusSynced, r.Status("p1"))
}

func TestGuestMutationsStayLocal(t *testing.T) {
	api := &fakeAPI{}
	st := state.New(state.State{})
	r := New(st, api)

	require.NoError(t, r.Add(product("p1", 1000), 1))
	require.NoError(t, r.ChangeQuantity("p1", 2))
	r.Flush()

	upserts, removes := api.snapshot()
	assert.Empty(t, upserts)
	assert.Empty(t, removes)
	assert.Equal(t, 3, st.State().CartQuantity("p1"))
	assert.Equal(t, StatusIdle, r.Status("p1"))
}

func TestChangeQuantityBelowOneIsRejected(t *testing.T) {
	api := &fakeAPI{}
	st := loggedInStore(t)
	r := New(st, api)

	require.NoError(t, r.Add(product("p1", 1000), 1))
	r.Flush()

	err := r.ChangeQuantity("p1", -1)
	assert.ErrorIs(t, err, ErrWouldRemove)
	assert.Equal(t, 1, st.State().CartQuantity("p1"))

	assert.ErrorIs(t, r.ChangeQuantity("ghost", -1), ErrNotInCart)
}

func TestRemoveIssuesRemoteDelete(t *testing.T) {
	api := &fakeAPI{}
	st := loggedInStore(t)
	r := New(st, api)

	require.NoError(t, r.Add(product("p1", 1000), 1))
	require.NoError(t, r.Remove("p1"))
	r.Flush()

	_, removes := api.snapshot()
	assert.Equal(t, []string{"p1"}, removes)
	assert.Zero(t, st.State().CartQuantity("p1"))
}

func TestOptimisticUpdateSurvivesRemoteFailure(t *testing.T) {
	api := &fakeAPI{writeErr: errors.New("boom")}
	st := loggedInStore(t)
	r := New(st, api)

	require.NoError(t, r.Add(product("p1", 1000), 2))
	r.Flush()

	// local state keeps the optimistic value; status records the failure
	assert.Equal(t, 2, st.State().CartQuantity("p1"))
	assert.Equal(t, StatusFailed, r.Status("p1"))
}

func TestPendingWritesCollapseToNewest(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{gate: gate}
	st := loggedInStore(t)
	r := New(st, api)

	// first write stalls in flight; the next three collapse behind it
	require.NoError(t, r.Add(product("p1", 1000), 1))
	require.NoError(t, r.ChangeQuantity("p1", 1))
	require.NoError(t, r.ChangeQuantity("p1", 1))
	require.NoError(t, r.ChangeQuantity("p1", 1))
	assert.Equal(t, StatusPending, r.Status("p1"))

	close(gate)
	r.Flush()

	upserts, _ := api.snapshot()
	// at most the in-flight write plus one collapsed follow-up
	assert.LessOrEqual(t, len(upserts), 2)
	assert.Equal(t, upsertCall{"p1", 4}, upserts[len(upserts)-1])
	assert.Equal(t, StatusSynced, r.Status("p1"))
}

func TestHandleLoginHydratesFromServer(t *testing.T) {
	api := &fakeAPI{} // empty remote cart
	st := state.New(state.State{})
	r := New(st, api)

	// guest accumulates two lines before logging in
	require.NoError(t, r.Add(product("g1", 100), 1))
	require.NoError(t, r.Add(product("g2", 200), 1))

	require.NoError(t, r.HandleLogin(context.Background(), &model.User{ID: 1}))

	// server state wins: guest lines are discarded, not merged
	s := st.State()
	assert.True(t, s.IsLogin)
	assert.Empty(t, s.Cart)
}

func TestHandleLoginFetchFailureKeepsLocalCart(t *testing.T) {
	api := &fakeAPI{fetchErr: errors.New("down")}
	st := state.New(state.State{})
	r := New(st, api)

	require.NoError(t, r.Add(product("g1", 100), 1))
	err := r.HandleLogin(context.Background(), &model.User{ID: 1})
	require.Error(t, err)

	assert.Equal(t, 1, st.State().CartQuantity("g1"))
}

func TestHandleLogoutClearsSessionAndCart(t *testing.T) {
	api := &fakeAPI{cart: []model.CartItem{{ProductID: "r1", Quantity: 2, Price: 100}}}
	st := state.New(state.State{})
	r := New(st, api)

	require.NoError(t, r.HandleLogin(context.Background(), &model.User{ID: 1}))
	require.Equal(t, 2, st.State().CartQuantity("r1"))

	require.NoError(t, r.HandleLogout())
	s := st.State()
	assert.False(t, s.IsLogin)
	assert.Nil(t, s.UserInfo)
	assert.Empty(t, s.Cart)
}
