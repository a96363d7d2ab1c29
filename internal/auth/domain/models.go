// Package domain contains core types for bearer-token auth.
package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	userdomain "github.com/ascendly/ascendly/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrTokenExpired = errors.New("auth: token expired")
)

// AccessToken is a persisted API bearer token. Only the SHA-256 hash of
// the token value is stored.
type AccessToken struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	UserID     uuid.UUID    `gorm:"column:user_id;not null;index"`
	TokenHash  string       `gorm:"column:token_hash;type:text;not null;uniqueIndex"`
	ExpiresAt  *time.Time   `gorm:"column:expires_at"`
	CreatedAt  time.Time    `gorm:"column:created_at;not null"`
	LastUsedAt *time.Time   `gorm:"column:last_used_at"`
}

func (AccessToken) TableName() string { return "access_tokens" }

// HashToken derives the stored lookup hash for a plaintext token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type Repository interface {
	FindByHash(ctx context.Context, db *gorm.DB, hash string) (*AccessToken, error)
	Insert(ctx context.Context, db *gorm.DB, token *AccessToken) error
	Touch(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) error
}

type Service interface {
	// Authenticate resolves a plaintext bearer token to its user, or
	// ErrInvalidToken / ErrTokenExpired.
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)

	// Issue mints a new token for the user and returns the plaintext
	// value once. Only the hash is persisted.
	Issue(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error)
}
