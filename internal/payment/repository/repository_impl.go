package repository

import (
	"context"

	"github.com/ascendly/ascendly/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListCompleted(ctx context.Context, db *gorm.DB) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("status = ?", domain.StatusCompleted).
		Order("created_at asc, id asc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payments (id, user_id, amount, currency, base_amount, base_currency, payment_type, status, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.UserID,
		payment.Amount,
		payment.Currency,
		payment.BaseAmount,
		payment.BaseCurrency,
		payment.PaymentType,
		payment.Status,
		payment.Metadata,
		payment.CreatedAt,
	).Error
}
