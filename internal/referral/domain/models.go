package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusConverted = "converted"
)

var ErrNotFound = errors.New("referral: not found")

// Referral links a referred signup back to the affiliate whose code was
// used. A referral counts as successful once the referred user completes
// signup or converts to a paid membership.
type Referral struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	Code       string       `json:"code" gorm:"uniqueIndex"`
	ReferrerID uuid.UUID    `json:"referrer_id"`
	ReferredID *uuid.UUID   `json:"referred_id"`
	Status     string       `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (Referral) TableName() string { return "referrals" }

func (r Referral) IsSuccessful() bool {
	return r.Status == StatusCompleted || r.Status == StatusConverted
}

type Repository interface {
	ListAll(ctx context.Context, db *gorm.DB) ([]Referral, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Referral, error)
	Insert(ctx context.Context, db *gorm.DB, referral *Referral) error
	Update(ctx context.Context, db *gorm.DB, referral *Referral) error
}

type Service interface {
	CreateCode(ctx context.Context, referrerID uuid.UUID) (*Referral, error)
	Complete(ctx context.Context, code string, referredID uuid.UUID) (*Referral, error)
}
