package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPaid     = "paid"
)

// Commission is an affiliate payout earned from an attributed payment.
// CommissionAmount is stored in CommissionCurrency and normalized to USD
// at read time by the analytics engine.
type Commission struct {
	ID                 snowflake.ID `json:"id" gorm:"primaryKey"`
	AffiliateID        uuid.UUID    `json:"affiliate_id"`
	PaymentID          snowflake.ID `json:"payment_id"`
	CommissionAmount   float64      `json:"commission_amount"`
	CommissionCurrency string       `json:"commission_currency"`
	Status             string       `json:"status"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func (Commission) TableName() string { return "commissions" }

func (c Commission) IsPending() bool { return c.Status == StatusPending }

type Repository interface {
	ListAll(ctx context.Context, db *gorm.DB) ([]Commission, error)
	ListByAffiliate(ctx context.Context, db *gorm.DB, affiliateID uuid.UUID) ([]Commission, error)
	Insert(ctx context.Context, db *gorm.DB, commission *Commission) error
}
