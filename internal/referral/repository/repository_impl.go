package repository

import (
	"context"

	"github.com/ascendly/ascendly/internal/referral/domain"
	"github.com/ascendly/ascendly/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository { return &repo{} }

func (r *repo) ListAll(ctx context.Context, tx *gorm.DB) ([]domain.Referral, error) {
	var referrals []domain.Referral
	if err := tx.WithContext(ctx).
		Model(&domain.Referral{}).
		Order("created_at ASC").
		Find(&referrals).Error; err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *repo) FindByCode(ctx context.Context, tx *gorm.DB, code string) (*domain.Referral, error) {
	var referral domain.Referral
	err := tx.WithContext(ctx).
		Where("code = ?", code).
		First(&referral).Error
	if err != nil {
		if db.IsNotFoundErr(err) {
			return nil, nil
		}
		return nil, err
	}
	return &referral, nil
}

func (r *repo) Insert(ctx context.Context, tx *gorm.DB, referral *domain.Referral) error {
	return tx.WithContext(ctx).Exec(`
		INSERT INTO referrals (id, code, referrer_id, referred_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		referral.ID,
		referral.Code,
		referral.ReferrerID,
		referral.ReferredID,
		referral.Status,
		referral.CreatedAt,
		referral.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, tx *gorm.DB, referral *domain.Referral) error {
	return tx.WithContext(ctx).Save(referral).Error
}
