package repository

import (
	"context"
	"time"

	"github.com/ascendly/ascendly/internal/membership/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.Membership, error) {
	var memberships []domain.Membership
	err := db.WithContext(ctx).
		Model(&domain.Membership{}).
		Order("created_at asc, id asc").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]domain.Membership, error) {
	var memberships []domain.Membership
	err := db.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("is_active = ?", true).
		Order("created_at asc, id asc").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, membership *domain.Membership) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO memberships (id, user_id, membership_id, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		membership.ID,
		membership.UserID,
		membership.MembershipID,
		membership.IsActive,
		membership.CreatedAt,
		membership.UpdatedAt,
	).Error
}

func (r *repo) Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		}).Error
}
