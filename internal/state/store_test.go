package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDispatchNotifiesSubscribers(t *testing.T) {
	st := New(State{})

	var seen []int
	st.Subscribe(func(s State) { seen = append(seen, len(s.Cart)) })

	require.NoError(t, st.Dispatch(AddToCart{Product: product("p1", 100)}))
	require.NoError(t, st.Dispatch(AddToCart{Product: product("p2", 100)}))
	require.NoError(t, st.Dispatch(ClearCart{}))

	assert.Equal(t, []int{1, 2, 0}, seen)
}

func TestStoreDispatchUnknownActionLeavesStateAlone(t *testing.T) {
	st := New(State{})
	require.NoError(t, st.Dispatch(AddToCart{Product: product("p1", 100)}))

	notified := 0
	st.Subscribe(func(State) { notified++ })

	err := st.Dispatch(bogusAction{})
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Zero(t, notified)
	assert.Len(t, st.State().Cart, 1)
}

func TestStoreStateSnapshotIsIsolated(t *testing.T) {
	st := New(State{})
	require.NoError(t, st.Dispatch(AddToCart{Product: product("p1", 100)}))

	snap := st.State()
	snap.Cart[0].Quantity = 99

	assert.Equal(t, 1, st.State().Cart[0].Quantity)
}
