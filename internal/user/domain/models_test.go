package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestHasRole(t *testing.T) {
	tests := []struct {
		name string
		user User
		role string
		want bool
	}{
		{"role field", User{Role: "affiliate"}, RoleAffiliate, true},
		{"active_role field", User{ActiveRole: "affiliate"}, RoleAffiliate, true},
		{"available_roles entry", User{AvailableRoles: datatypes.JSONSlice[string]{"learner", "affiliate"}}, RoleAffiliate, true},
		{"case insensitive", User{Role: "Affiliate"}, RoleAffiliate, true},
		{"padded value", User{ActiveRole: "  affiliate "}, RoleAffiliate, true},
		{"no match", User{Role: "learner", ActiveRole: "learner"}, RoleAffiliate, false},
		{"empty role argument", User{Role: "affiliate"}, "", false},
		{"empty user", User{}, RoleAffiliate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.HasRole(tt.role))
		})
	}
}

func TestIsAffiliateMatchesAnyField(t *testing.T) {
	assert.True(t, User{Role: "affiliate"}.IsAffiliate())
	assert.True(t, User{ActiveRole: "affiliate"}.IsAffiliate())
	assert.True(t, User{AvailableRoles: datatypes.JSONSlice[string]{"affiliate"}}.IsAffiliate())
	assert.False(t, User{Role: "admin"}.IsAffiliate())
}

func TestIsActive(t *testing.T) {
	assert.True(t, User{Status: "active"}.IsActive())
	assert.True(t, User{Status: "Active"}.IsActive())
	assert.False(t, User{Status: "suspended"}.IsActive())
	assert.False(t, User{}.IsActive())
}
