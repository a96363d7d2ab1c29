package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ascendly/ascendly/internal/clock"
	commissiondomain "github.com/ascendly/ascendly/internal/commission/domain"
	"github.com/ascendly/ascendly/internal/config"
	coursedomain "github.com/ascendly/ascendly/internal/course/domain"
	"github.com/ascendly/ascendly/internal/currency"
	membershipdomain "github.com/ascendly/ascendly/internal/membership/domain"
	paymentdomain "github.com/ascendly/ascendly/internal/payment/domain"
	referraldomain "github.com/ascendly/ascendly/internal/referral/domain"
	userdomain "github.com/ascendly/ascendly/internal/user/domain"
	"github.com/ascendly/ascendly/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var errDown = errors.New("connection refused")

type stubUsers struct {
	users []userdomain.User
	err   error
}

func (s stubUsers) ListAll(ctx context.Context, db *gorm.DB) ([]userdomain.User, error) {
	return s.users, s.err
}

func (s stubUsers) ListPage(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]userdomain.User, pagination.PageInfo, error) {
	return s.users, pagination.PageInfo{}, s.err
}

func (s stubUsers) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*userdomain.User, error) {
	return nil, nil
}

type stubPayments struct {
	payments []paymentdomain.Payment
	err      error
}

func (s stubPayments) ListCompleted(ctx context.Context, db *gorm.DB) ([]paymentdomain.Payment, error) {
	return s.payments, s.err
}

func (s stubPayments) Insert(ctx context.Context, db *gorm.DB, p *paymentdomain.Payment) error {
	return nil
}

type stubMemberships struct{ err error }

func (s stubMemberships) ListAll(ctx context.Context, db *gorm.DB) ([]membershipdomain.Membership, error) {
	return nil, s.err
}

func (s stubMemberships) ListActive(ctx context.Context, db *gorm.DB) ([]membershipdomain.Membership, error) {
	return nil, s.err
}

func (s stubMemberships) Insert(ctx context.Context, db *gorm.DB, m *membershipdomain.Membership) error {
	return nil
}

func (s stubMemberships) Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return nil
}

type stubCommissions struct{ err error }

func (s stubCommissions) ListAll(ctx context.Context, db *gorm.DB) ([]commissiondomain.Commission, error) {
	return nil, s.err
}

func (s stubCommissions) ListByAffiliate(ctx context.Context, db *gorm.DB, id uuid.UUID) ([]commissiondomain.Commission, error) {
	return nil, nil
}

func (s stubCommissions) Insert(ctx context.Context, db *gorm.DB, c *commissiondomain.Commission) error {
	return nil
}

type stubCourses struct{ err error }

func (s stubCourses) List(ctx context.Context, db *gorm.DB, publishedOnly bool) ([]coursedomain.Course, error) {
	return nil, s.err
}

func (s stubCourses) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*coursedomain.Course, error) {
	return nil, nil
}

func (s stubCourses) Insert(ctx context.Context, db *gorm.DB, c *coursedomain.Course) error {
	return nil
}

func (s stubCourses) Update(ctx context.Context, db *gorm.DB, c *coursedomain.Course) error {
	return nil
}

type stubReferrals struct{ err error }

func (s stubReferrals) ListAll(ctx context.Context, db *gorm.DB) ([]referraldomain.Referral, error) {
	return nil, s.err
}

func (s stubReferrals) FindByCode(ctx context.Context, db *gorm.DB, code string) (*referraldomain.Referral, error) {
	return nil, nil
}

func (s stubReferrals) Insert(ctx context.Context, db *gorm.DB, r *referraldomain.Referral) error {
	return nil
}

func (s stubReferrals) Update(ctx context.Context, db *gorm.DB, r *referraldomain.Referral) error {
	return nil
}

func newTestService(t *testing.T, policy string, users userdomain.Repository, payments paymentdomain.Repository) *Service {
	t.Helper()

	svc, err := New(Params{
		Log:   zaptest.NewLogger(t),
		Clock: clock.NewFakeClock(time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)),
		Config: config.Config{
			Analytics: config.AnalyticsConfig{
				PartialDataPolicy: policy,
				Timezone:          "UTC",
			},
		},
		Rates:       currency.NewStaticHolder(nil),
		Users:       users,
		Payments:    payments,
		Memberships: stubMemberships{},
		Commissions: stubCommissions{},
		Courses:     stubCourses{},
		Referrals:   stubReferrals{},
	})
	require.NoError(t, err)
	return svc.(*Service)
}

func TestDashboardAggregates(t *testing.T) {
	users := stubUsers{users: []userdomain.User{
		{ID: uuid.New(), Status: userdomain.StatusActive, Role: userdomain.RoleAffiliate, CreatedAt: time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Status: userdomain.StatusActive, Role: userdomain.RoleLearner, CreatedAt: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)},
	}}
	payments := stubPayments{payments: []paymentdomain.Payment{
		{UserID: users.users[0].ID, Amount: 140, Currency: "GHS", Status: paymentdomain.StatusCompleted, CreatedAt: time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)},
	}}

	svc := newTestService(t, config.PartialDataFailFast, users, payments)
	report, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Overview.TotalUsers)
	assert.Equal(t, 1, report.Overview.Affiliates)
	assert.InDelta(t, 10.0, report.Overview.TotalRevenue, 0.005)
	assert.Len(t, report.UserGrowth, 12)
}

func TestDashboardFailFast(t *testing.T) {
	svc := newTestService(t, config.PartialDataFailFast, stubUsers{err: errDown}, stubPayments{})

	report, err := svc.Dashboard(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), "users")
}

func TestDashboardSilentZero(t *testing.T) {
	payments := stubPayments{payments: []paymentdomain.Payment{
		{UserID: uuid.New(), Amount: 50, Currency: "USD", Status: paymentdomain.StatusCompleted, CreatedAt: time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)},
	}}
	svc := newTestService(t, config.PartialDataSilentZero, stubUsers{err: errDown}, payments)

	report, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Overview.TotalUsers)
	assert.InDelta(t, 50.0, report.Overview.TotalRevenue, 0.005)
}
