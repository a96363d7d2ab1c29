package service

import (
	"context"
	"testing"
	"time"

	authdomain "github.com/ascendly/ascendly/internal/auth/domain"
	authrepository "github.com/ascendly/ascendly/internal/auth/repository"
	"github.com/ascendly/ascendly/internal/clock"
	userdomain "github.com/ascendly/ascendly/internal/user/domain"
	userrepository "github.com/ascendly/ascendly/internal/user/repository"
	"github.com/ascendly/ascendly/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&userdomain.User{}, &authdomain.AccessToken{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    conn,
		Log:   zaptest.NewLogger(t),
		Clock: fake,
		GenID: node,
		Repo:  authrepository.Provide(),
		Users: userrepository.Provide(),
	})
	return svc.(*Service), conn, fake
}

func seedUser(t *testing.T, conn *gorm.DB, status string) userdomain.User {
	t.Helper()

	seeded := userdomain.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		Status:    status,
		Role:      userdomain.RoleAdmin,
		CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, conn.Create(&seeded).Error)
	return seeded
}

func TestAuthenticateIssuedToken(t *testing.T) {
	svc, conn, _ := newAuthService(t)
	seeded := seedUser(t, conn, userdomain.StatusActive)

	token, err := svc.Issue(context.Background(), seeded.ID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	authed, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, authed.ID)
	assert.True(t, authed.HasRole(userdomain.RoleAdmin))
}

func TestAuthenticateUnknownToken(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Authenticate(context.Background(), "ak_live_deadbeef")
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
}

func TestAuthenticateEmptyToken(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Authenticate(context.Background(), "   ")
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	svc, conn, fake := newAuthService(t)
	seeded := seedUser(t, conn, userdomain.StatusActive)

	token, err := svc.Issue(context.Background(), seeded.ID, time.Hour)
	require.NoError(t, err)

	fake.Advance(2 * time.Hour)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, authdomain.ErrTokenExpired)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	svc, conn, _ := newAuthService(t)
	seeded := seedUser(t, conn, "suspended")

	token, err := svc.Issue(context.Background(), seeded.ID, 0)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
}
