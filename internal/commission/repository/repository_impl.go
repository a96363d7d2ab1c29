package repository

import (
	"context"

	"github.com/ascendly/ascendly/internal/commission/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository { return &repo{} }

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.Commission, error) {
	var commissions []domain.Commission
	if err := db.WithContext(ctx).
		Model(&domain.Commission{}).
		Order("created_at ASC").
		Find(&commissions).Error; err != nil {
		return nil, err
	}
	return commissions, nil
}

func (r *repo) ListByAffiliate(ctx context.Context, db *gorm.DB, affiliateID uuid.UUID) ([]domain.Commission, error) {
	var commissions []domain.Commission
	if err := db.WithContext(ctx).
		Model(&domain.Commission{}).
		Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").
		Find(&commissions).Error; err != nil {
		return nil, err
	}
	return commissions, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, commission *domain.Commission) error {
	return db.WithContext(ctx).Exec(`
		INSERT INTO commissions (id, affiliate_id, payment_id, commission_amount, commission_currency, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		commission.ID,
		commission.AffiliateID,
		commission.PaymentID,
		commission.CommissionAmount,
		commission.CommissionCurrency,
		commission.Status,
		commission.CreatedAt,
		commission.UpdatedAt,
	).Error
}
