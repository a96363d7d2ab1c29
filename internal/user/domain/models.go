package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleAffiliate = "affiliate"
	RoleLearner   = "learner"
	RoleAdmin     = "admin"

	StatusActive = "active"
)

// User mirrors the profile record owned by the identity provider. The
// platform reads these rows; it never creates them.
type User struct {
	ID                           uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	Email                        string                     `gorm:"not null;uniqueIndex" json:"email"`
	Country                      string                     `json:"country,omitempty"`
	Status                       string                     `gorm:"index" json:"status"`
	Role                         string                     `json:"role,omitempty"`
	ActiveRole                   string                     `json:"active_role,omitempty"`
	AvailableRoles               datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"available_roles,omitempty"`
	AffiliateOnboardingCompleted bool                       `json:"affiliate_onboarding_completed"`
	CreatedAt                    time.Time                  `gorm:"not null;index" json:"created_at"`
	UpdatedAt                    time.Time                  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// HasRole reports whether any of the three role fields carries the given
// role. Profiles written by older versions of the identity sync populate
// different fields, so all three are authoritative.
func (u User) HasRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(u.Role), role) {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(u.ActiveRole), role) {
		return true
	}
	for _, candidate := range u.AvailableRoles {
		if strings.EqualFold(strings.TrimSpace(candidate), role) {
			return true
		}
	}
	return false
}

// IsAffiliate is the single affiliate-classification predicate used by
// every aggregate.
func (u User) IsAffiliate() bool {
	return u.HasRole(RoleAffiliate)
}

// IsActive reports whether the profile status is active.
func (u User) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(u.Status), StatusActive)
}
