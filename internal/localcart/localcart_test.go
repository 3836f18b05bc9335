package localcart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumoshop/storefront/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	items := []model.CartItem{
		{ProductID: "p1", Name: "Widget", Price: 1000, Quantity: 2},
		{ProductID: "p2", Name: "Gadget", Price: 2000, Quantity: 1},
	}
	require.NoError(t, s.Save(items))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestLoadMissingFileIsEmptyCart(t *testing.T) {
	got, err := New(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadCorruptFileDiscarded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("{not json"), 0o644))

	got, err := New(dir).Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save([]model.CartItem{{ProductID: "p1", Quantity: 1}}))
	require.NoError(t, s.Clear())

	got, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, got)

	// clearing twice is fine
	require.NoError(t, s.Clear())
}
