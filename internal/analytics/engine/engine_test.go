package engine

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/ascendly/ascendly/internal/analytics/domain"
	"github.com/ascendly/ascendly/internal/currency"
	membershipdomain "github.com/ascendly/ascendly/internal/membership/domain"
	paymentdomain "github.com/ascendly/ascendly/internal/payment/domain"
	userdomain "github.com/ascendly/ascendly/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func newUser(created time.Time, country, role string) userdomain.User {
	return userdomain.User{
		ID:        uuid.New(),
		Email:     fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Country:   country,
		Status:    userdomain.StatusActive,
		Role:      role,
		CreatedAt: created,
	}
}

func newPayment(amount float64, cur string, created time.Time) paymentdomain.Payment {
	return paymentdomain.Payment{
		ID:        snowflake.ID(created.UnixNano()),
		UserID:    uuid.New(),
		Amount:    amount,
		Currency:  cur,
		Status:    paymentdomain.StatusCompleted,
		CreatedAt: created,
	}
}

func TestComputeEmptySnapshot(t *testing.T) {
	report := Compute(domain.Snapshot{}, fixedNow, Options{})

	assert.Equal(t, 0, report.Overview.TotalUsers)
	assert.Equal(t, float64(0), report.Overview.TotalRevenue)
	assert.Equal(t, float64(0), report.Overview.UserGrowthPct)
	assert.Equal(t, float64(0), report.Overview.RevenueGrowthPct)

	require.Len(t, report.UserGrowth, 12)
	require.Len(t, report.RevenueTrend, 12)
	require.Len(t, report.PaymentTrend, 12)
	for i := range report.UserGrowth {
		assert.Zero(t, report.UserGrowth[i].Total)
		assert.Zero(t, report.RevenueTrend[i].Total)
		assert.Zero(t, report.PaymentTrend[i].Count)
	}

	assert.Empty(t, report.CountryData)

	require.Len(t, report.Heatmap, 7)
	for _, row := range report.Heatmap {
		require.Len(t, row.Hours, 24)
		for _, cell := range row.Hours {
			assert.Zero(t, cell)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	snap := domain.Snapshot{
		Users: []userdomain.User{
			newUser(fixedNow.AddDate(0, -1, 0), "Ghana", userdomain.RoleAffiliate),
			newUser(fixedNow.AddDate(0, -3, -2), "Nigeria", userdomain.RoleLearner),
		},
		Payments: []paymentdomain.Payment{
			newPayment(100, "GHS", fixedNow.AddDate(0, -1, 0)),
			newPayment(25, "USD", fixedNow.AddDate(0, -2, 0)),
		},
	}

	first, err := json.Marshal(Compute(snap, fixedNow, Options{}))
	require.NoError(t, err)
	second, err := json.Marshal(Compute(snap, fixedNow, Options{}))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRevenuePartitionCompleteness(t *testing.T) {
	referral := newPayment(340, "NGN", fixedNow.AddDate(0, -2, 0))
	referral.PaymentType = paymentdomain.TypeReferralMembership

	flagged := newPayment(75, "USD", fixedNow.AddDate(0, -4, 0))
	flagged.Metadata = datatypes.JSONMap{"is_referral_signup": true}

	snap := domain.Snapshot{
		Payments: []paymentdomain.Payment{
			referral,
			flagged,
			newPayment(19.99, "EUR", fixedNow.AddDate(0, -1, 0)),
			newPayment(120, "GHS", fixedNow.AddDate(0, -6, 0)),
		},
	}

	o := Compute(snap, fixedNow, Options{}).Overview
	assert.InDelta(t, o.TotalRevenue, o.AffiliateRevenue+o.DirectRevenue, 0.011)
	assert.Greater(t, o.AffiliateRevenue, float64(0))
	assert.Greater(t, o.DirectRevenue, float64(0))
}

func TestTrendWindowScenario(t *testing.T) {
	snap := domain.Snapshot{
		Payments: []paymentdomain.Payment{
			newPayment(100, "GHS", fixedNow.AddDate(0, 0, -1)),   // this month
			newPayment(50, "USD", fixedNow.AddDate(0, -1, 0)),    // last month
			newPayment(1600, "NGN", fixedNow.AddDate(0, -13, 0)), // outside the trailing window
		},
	}

	report := Compute(snap, fixedNow, Options{})

	// 100/14 + 50 + 1600/1600
	assert.InDelta(t, 58.14, report.Overview.TotalRevenue, 0.005)

	var trendCount int
	var trendTotal float64
	for _, p := range report.PaymentTrend {
		trendCount += p.Count
		trendTotal += p.Amount
	}
	assert.Equal(t, 2, trendCount, "13-month-old payment must fall outside every bucket")
	assert.InDelta(t, 57.14, trendTotal, 0.011)

	assert.InDelta(t, 7.14, report.Overview.ThisMonthRevenue, 0.005)
	assert.InDelta(t, 50.0, report.Overview.LastMonthRevenue, 0.005)
}

func TestTrendBucketsChronological(t *testing.T) {
	report := Compute(domain.Snapshot{}, fixedNow, Options{})

	assert.Equal(t, "Apr 25", report.UserGrowth[0].Month)
	assert.Equal(t, "Mar 26", report.UserGrowth[11].Month)
	for i := range report.UserGrowth {
		assert.Equal(t, report.UserGrowth[i].Month, report.RevenueTrend[i].Month)
		assert.Equal(t, report.UserGrowth[i].Month, report.PaymentTrend[i].Month)
	}
}

func TestGrowthFromZeroConvention(t *testing.T) {
	snap := domain.Snapshot{}
	for i := 0; i < 5; i++ {
		snap.Users = append(snap.Users, newUser(fixedNow.AddDate(0, 0, -1), "Ghana", userdomain.RoleLearner))
	}

	o := Compute(snap, fixedNow, Options{}).Overview
	assert.Equal(t, 5, o.ThisMonthUsers)
	assert.Equal(t, 0, o.LastMonthUsers)
	assert.Equal(t, float64(100), o.UserGrowthPct)
}

func TestGrowthPctRegularCase(t *testing.T) {
	snap := domain.Snapshot{}
	for i := 0; i < 5; i++ {
		snap.Users = append(snap.Users, newUser(fixedNow.AddDate(0, 0, -1), "Ghana", userdomain.RoleLearner))
	}
	for i := 0; i < 4; i++ {
		snap.Users = append(snap.Users, newUser(fixedNow.AddDate(0, -1, 0), "Ghana", userdomain.RoleLearner))
	}

	o := Compute(snap, fixedNow, Options{}).Overview
	assert.Equal(t, float64(25), o.UserGrowthPct)
}

func TestCountryBreakdownTopTen(t *testing.T) {
	snap := domain.Snapshot{}
	countries := []string{
		"Ghana", "Nigeria", "Kenya", "Togo", "Benin", "Senegal",
		"Cameroon", "Uganda", "Rwanda", "Zambia", "Malawi", "Liberia",
	}
	for i, country := range countries {
		// country[0] gets the most users, descending from there
		for n := 0; n <= len(countries)-i; n++ {
			snap.Users = append(snap.Users, newUser(fixedNow.AddDate(0, -1, 0), country, userdomain.RoleLearner))
		}
	}
	snap.Users = append(snap.Users, newUser(fixedNow.AddDate(0, -1, 0), "", userdomain.RoleLearner))

	stats := Compute(snap, fixedNow, Options{}).CountryData
	require.Len(t, stats, 10)
	assert.Equal(t, "Ghana", stats[0].Country)
	for i := 1; i < len(stats); i++ {
		assert.GreaterOrEqual(t, stats[i-1].Users, stats[i].Users)
	}
}

func TestCountryBreakdownUnknownAndRevenue(t *testing.T) {
	payer := newUser(fixedNow.AddDate(0, -1, 0), "", userdomain.RoleLearner)
	payment := newPayment(140, "GHS", fixedNow.AddDate(0, 0, -2))
	payment.UserID = payer.ID
	orphan := newPayment(999, "USD", fixedNow.AddDate(0, 0, -2))

	snap := domain.Snapshot{
		Users:    []userdomain.User{payer},
		Payments: []paymentdomain.Payment{payment, orphan},
	}

	stats := Compute(snap, fixedNow, Options{}).CountryData
	require.Len(t, stats, 1)
	assert.Equal(t, "Unknown", stats[0].Country)
	assert.InDelta(t, 10.0, stats[0].Revenue, 0.005)
}

func TestHeatmapPlacement(t *testing.T) {
	// 2026-03-09 is a Monday, 2026-03-15 a Sunday.
	monday := time.Date(2026, time.March, 9, 9, 30, 0, 0, time.UTC)
	sunday := time.Date(2026, time.March, 15, 23, 0, 0, 0, time.UTC)

	snap := domain.Snapshot{Users: []userdomain.User{
		newUser(monday, "Ghana", userdomain.RoleLearner),
		newUser(sunday, "Ghana", userdomain.RoleLearner),
	}}

	rows := Compute(snap, fixedNow, Options{}).Heatmap
	require.Len(t, rows, 7)
	assert.Equal(t, "Mon", rows[0].Day)
	assert.Equal(t, "Sun", rows[6].Day)
	assert.Equal(t, 1, rows[0].Hours[9])
	assert.Equal(t, 1, rows[6].Hours[23])
}

func TestMembershipDistribution(t *testing.T) {
	snap := domain.Snapshot{Memberships: []membershipdomain.Membership{
		{UserID: uuid.New(), MembershipID: "pro", IsActive: true},
		{UserID: uuid.New(), MembershipID: "pro", IsActive: true},
		{UserID: uuid.New(), MembershipID: "", IsActive: true},
		{UserID: uuid.New(), MembershipID: "pro", IsActive: false},
	}}

	o := Compute(snap, fixedNow, Options{}).Overview
	assert.Equal(t, 3, o.ActiveMemberships)
	assert.Equal(t, map[string]int{"pro": 2, "unknown": 1}, o.MembershipDistribution)
}

func TestBaseAmountPreferredWhenUSD(t *testing.T) {
	base := 7.5
	p := newPayment(105, "GHS", fixedNow.AddDate(0, 0, -2))
	p.BaseAmount = &base
	p.BaseCurrency = "usd"

	o := Compute(domain.Snapshot{Payments: []paymentdomain.Payment{p}}, fixedNow, Options{}).Overview
	assert.InDelta(t, 7.5, o.TotalRevenue, 0.001)
}

func TestInjectedRates(t *testing.T) {
	conv := currency.NewConverter(currency.Rates{"GHS": 10})
	p := newPayment(100, "GHS", fixedNow.AddDate(0, 0, -2))

	o := Compute(domain.Snapshot{Payments: []paymentdomain.Payment{p}}, fixedNow, Options{Converter: conv}).Overview
	assert.InDelta(t, 10.0, o.TotalRevenue, 0.001)
}
