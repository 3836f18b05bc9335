package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewSUID returns a short, sortable unique identifier used as the
// primary key for orders, order items, reviews and contacts: a
// millisecond timestamp prefix (keeps inserts roughly ordered)
// plus 4 random bytes.
func NewSUID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%x-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
