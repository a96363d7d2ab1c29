package repository

import (
	"context"
	"time"

	"github.com/ascendly/ascendly/internal/auth/domain"
	"github.com/ascendly/ascendly/pkg/db"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository { return &repo{} }

func (r *repo) FindByHash(ctx context.Context, tx *gorm.DB, hash string) (*domain.AccessToken, error) {
	var token domain.AccessToken
	err := tx.WithContext(ctx).
		Where("token_hash = ?", hash).
		First(&token).Error
	if err != nil {
		if db.IsNotFoundErr(err) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *repo) Insert(ctx context.Context, tx *gorm.DB, token *domain.AccessToken) error {
	return tx.WithContext(ctx).Exec(`
		INSERT INTO access_tokens (id, user_id, token_hash, expires_at, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
		token.LastUsedAt,
	).Error
}

func (r *repo) Touch(ctx context.Context, tx *gorm.DB, id snowflake.ID, at time.Time) error {
	return tx.WithContext(ctx).
		Model(&domain.AccessToken{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
}
