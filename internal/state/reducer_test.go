package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumoshop/storefront/internal/model"
)

func product(id string, price int64) model.Product {
	return model.Product{
		ID:     id,
		Name:   "Product " + id,
		Price:  price,
		Stock:  100,
		Images: []string{"https://img.example/" + id + ".png"},
	}
}

// unregistered action used to exercise the fail-fast path.
type bogusAction struct{}

func (bogusAction) isAction() {}

func TestReduceSetUserInfo(t *testing.T) {
	u := &model.User{ID: 7, Email: "a@b.c", Level: "GOLD"}

	s, err := Reduce(State{}, SetUserInfo{User: u})
	require.NoError(t, err)
	assert.True(t, s.IsLogin)
	assert.Equal(t, u, s.UserInfo)

	// nil user is logout and resets the login flag too
	s, err = Reduce(s, SetUserInfo{User: nil})
	require.NoError(t, err)
	assert.False(t, s.IsLogin)
	assert.Nil(t, s.UserInfo)
}

func TestReduceAddToCartMerges(t *testing.T) {
	p := product("p1", 1000)

	s, err := Reduce(State{}, AddToCart{Product: p})
	require.NoError(t, err)
	s, err = Reduce(s, AddToCart{Product: p})
	require.NoError(t, err)

	// two adds of the same product produce exactly one line, qty 2
	require.Len(t, s.Cart, 1)
	assert.Equal(t, "p1", s.Cart[0].ProductID)
	assert.Equal(t, 2, s.Cart[0].Quantity)
}

func TestReduceAddToCartDefaultQuantity(t *testing.T) {
	s, err := Reduce(State{}, AddToCart{Product: product("p1", 500)})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cart[0].Quantity)

	s, err = Reduce(State{}, AddToCart{Product: product("p2", 500), Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, s.Cart[0].Quantity)
}

func TestReduceAddToCartSnapshotsProduct(t *testing.T) {
	p := product("p1", 1000)
	s, err := Reduce(State{}, AddToCart{Product: p})
	require.NoError(t, err)

	line := s.Cart[0]
	assert.Equal(t, p.Name, line.Name)
	assert.Equal(t, p.Price, line.Price)
	assert.Equal(t, p.Images[0], line.Image)
}

func TestReduceRemoveFromCart(t *testing.T) {
	var s State
	var err error
	for _, id := range []string{"a", "b", "c"} {
		s, err = Reduce(s, AddToCart{Product: product(id, 100)})
		require.NoError(t, err)
	}

	s, err = Reduce(s, RemoveFromCart{ProductID: "b"})
	require.NoError(t, err)
	require.Len(t, s.Cart, 2)
	assert.Equal(t, "a", s.Cart[0].ProductID)
	assert.Equal(t, "c", s.Cart[1].ProductID)

	// removing an absent product is a no-op
	s, err = Reduce(s, RemoveFromCart{ProductID: "zz"})
	require.NoError(t, err)
	assert.Len(t, s.Cart, 2)
}

func TestReduceUpdateQuantityFloor(t *testing.T) {
	s, err := Reduce(State{}, AddToCart{Product: product("p1", 100), Quantity: 2})
	require.NoError(t, err)

	cases := []struct {
		delta, want int
	}{
		{+1, 3},
		{-1, 2},
		{-2, 2},   // would hit 0: rejected, unchanged
		{-100, 2}, // arbitrary negative delta: rejected
		{+3, 5},
	}
	for _, tc := range cases {
		s, err = Reduce(s, UpdateCartQuantity{ProductID: "p1", Delta: tc.delta})
		require.NoError(t, err)
		assert.Equal(t, tc.want, s.Cart[0].Quantity, "delta %d", tc.delta)
	}
}

func TestReduceUpdateQuantityUnknownProduct(t *testing.T) {
	s, err := Reduce(State{}, AddToCart{Product: product("p1", 100)})
	require.NoError(t, err)
	s, err = Reduce(s, UpdateCartQuantity{ProductID: "nope", Delta: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cart[0].Quantity)
}

func TestReduceSetCartReplaces(t *testing.T) {
	var s State
	var err error
	s, err = Reduce(s, AddToCart{Product: product("local1", 100)})
	require.NoError(t, err)
	s, err = Reduce(s, AddToCart{Product: product("local2", 200)})
	require.NoError(t, err)

	remote := []model.CartItem{{ProductID: "remote", Name: "R", Price: 300, Quantity: 4}}
	s, err = Reduce(s, SetCart{Items: remote})
	require.NoError(t, err)
	assert.Equal(t, remote, s.Cart)

	// an empty remote cart discards guest lines entirely
	s, err = Reduce(s, SetCart{Items: nil})
	require.NoError(t, err)
	assert.Empty(t, s.Cart)
}

func TestReduceClearCart(t *testing.T) {
	s, err := Reduce(State{}, AddToCart{Product: product("p1", 100)})
	require.NoError(t, err)
	s, err = Reduce(s, ClearCart{})
	require.NoError(t, err)
	assert.Empty(t, s.Cart)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	orig, err := Reduce(State{}, AddToCart{Product: product("p1", 100), Quantity: 2})
	require.NoError(t, err)

	_, err = Reduce(orig, UpdateCartQuantity{ProductID: "p1", Delta: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, orig.Cart[0].Quantity)

	_, err = Reduce(orig, RemoveFromCart{ProductID: "p1"})
	require.NoError(t, err)
	assert.Len(t, orig.Cart, 1)
}

func TestReduceUnknownActionFailsFast(t *testing.T) {
	_, err := Reduce(State{}, bogusAction{})
	assert.ErrorIs(t, err, ErrUnknownAction)
}
