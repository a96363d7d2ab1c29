package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership links a user to a billing plan. Only active rows count
// toward membership aggregates; deactivated rows are kept for history.
type Membership struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	MembershipID string       `gorm:"index" json:"membership_id"`
	IsActive     bool         `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time    `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}

func (Membership) TableName() string { return "memberships" }

type Repository interface {
	ListAll(ctx context.Context, db *gorm.DB) ([]Membership, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]Membership, error)
	Insert(ctx context.Context, db *gorm.DB, membership *Membership) error
	Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
