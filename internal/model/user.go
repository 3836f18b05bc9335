package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. Loyalty points accumulate when orders are confirmed
// received; Level is recomputed from points at that moment and
// the stored value is authoritative for clients.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Name         – display name shown in the storefront.
//  Picture      – profile picture URL (empty if none).
//  Role         – CUSTOMER or ADMIN.
//  Points       – accumulated loyalty points (never negative).
//  Level        – loyalty level name (BRONZE/SILVER/GOLD/DIAMOND).
//  Phone        – last shipping phone, snapshotted at checkout.
//  Address      – last shipping address, snapshotted at checkout.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`      // users.id
	Email        string    `json:"email"`   // users.email
	PasswordHash string    `json:"-"`       // users.password_hash
	Name         string    `json:"name"`    // users.name
	Picture      string    `json:"picture"` // users.picture
	Role         string    `json:"role"`    // users.role
	Points       int64     `json:"points"`  // users.points
	Level        string    `json:"level"`   // users.level
	Phone        string    `json:"phone"`   // users.phone
	Address      string    `json:"address"` // users.address
	IsActive     bool      `json:"-"`       // users.is_active
	CreatedAt    time.Time `json:"-"`       // users.created_at
	UpdatedAt    time.Time `json:"-"`       // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
