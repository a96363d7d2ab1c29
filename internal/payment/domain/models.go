package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"

	TypeReferralMembership = "referral_membership"
	TypeMembership         = "membership"
	TypeCourse             = "course"

	metadataReferralSignup = "is_referral_signup"
	metadataReferralCode   = "referral_code"
)

// Payment is a settled transaction recorded by the payment gateway
// webhook. Amount/Currency hold the charged figures; BaseAmount and
// BaseCurrency carry the gateway's own conversion when it provided one.
type Payment struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount       float64           `gorm:"not null" json:"amount"`
	Currency     string            `gorm:"not null" json:"currency"`
	BaseAmount   *float64          `json:"base_amount,omitempty"`
	BaseCurrency string            `json:"base_currency,omitempty"`
	PaymentType  string            `gorm:"index" json:"payment_type"`
	Status       string            `gorm:"not null;index" json:"status"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

// IsAffiliateAttributed reports whether the payment resulted from a
// referral signup: either the type says so, or the gateway metadata
// carries the referral markers.
func (p Payment) IsAffiliateAttributed() bool {
	if strings.EqualFold(strings.TrimSpace(p.PaymentType), TypeReferralMembership) {
		return true
	}
	if truthy(p.Metadata[metadataReferralSignup]) {
		return true
	}
	if code, ok := p.Metadata[metadataReferralCode].(string); ok && strings.TrimSpace(code) != "" {
		return true
	}
	return false
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "1" || s == "yes"
	case float64:
		return v != 0
	default:
		return false
	}
}
