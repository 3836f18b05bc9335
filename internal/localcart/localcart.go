// Package localcart persists a guest's cart between sessions.
// The cart is stored as JSON under a fixed key (file name) in the
// user's config directory; server state supersedes it the moment
// the user logs in, and guest carts are never written to the
// server.
package localcart

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lumoshop/storefront/internal/model"
)

// fileName is the fixed storage key for the guest cart.
const fileName = "guest_cart.json"

// Store reads and writes the guest cart under dir.
type Store struct {
	dir string
}

// New returns a store rooted at dir. When dir is empty the user
// config directory is used (falling back to the working directory
// when that cannot be resolved).
func New(dir string) *Store {
	if dir == "" {
		if cfg, err := os.UserConfigDir(); err == nil {
			dir = filepath.Join(cfg, "storefront")
		} else {
			dir = "."
		}
	}
	return &Store{dir: dir}
}

// Load returns the persisted guest cart. A missing file is an
// empty cart, not an error.
func (s *Store) Load() ([]model.CartItem, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var items []model.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// A corrupt cache is discarded rather than wedging startup.
		return nil, nil
	}
	return items, nil
}

// Save writes the guest cart, creating the directory on first use.
func (s *Store) Save(items []model.CartItem) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, fileName), raw, 0o644)
}

// Clear removes the persisted cart. Clearing an absent cart is a
// no-op.
func (s *Store) Clear() error {
	err := os.Remove(filepath.Join(s.dir, fileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
