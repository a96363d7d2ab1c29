package domain

import (
	"context"

	commissiondomain "github.com/ascendly/ascendly/internal/commission/domain"
	coursedomain "github.com/ascendly/ascendly/internal/course/domain"
	membershipdomain "github.com/ascendly/ascendly/internal/membership/domain"
	paymentdomain "github.com/ascendly/ascendly/internal/payment/domain"
	referraldomain "github.com/ascendly/ascendly/internal/referral/domain"
	userdomain "github.com/ascendly/ascendly/internal/user/domain"
)

// Snapshot is the fully materialized read-only input to the dashboard
// computation: the six record sets fetched in one go. Payments are
// expected to be pre-filtered to completed status by the repository
// layer; the computation does not re-check it.
type Snapshot struct {
	Users       []userdomain.User
	Payments    []paymentdomain.Payment
	Memberships []membershipdomain.Membership
	Commissions []commissiondomain.Commission
	Courses     []coursedomain.Course
	Referrals   []referraldomain.Referral
}

// Overview carries the headline totals plus the month-over-month deltas
// and the active-membership plan distribution.
type Overview struct {
	TotalUsers            int     `json:"totalUsers"`
	ActiveUsers           int     `json:"activeUsers"`
	Affiliates            int     `json:"affiliates"`
	AffiliatesOnboarded   int     `json:"affiliatesOnboarded"`
	ActiveMemberships     int     `json:"activeMemberships"`
	TotalCourses          int     `json:"totalCourses"`
	PublishedCourses      int     `json:"publishedCourses"`
	TotalReferrals        int     `json:"totalReferrals"`
	SuccessfulReferrals   int     `json:"successfulReferrals"`
	TotalRevenue          float64 `json:"totalRevenue"`
	AffiliateRevenue      float64 `json:"affiliateRevenue"`
	DirectRevenue         float64 `json:"directRevenue"`
	TotalCommissionAmount float64 `json:"totalCommissionAmount"`
	PendingCommissions    float64 `json:"pendingCommissions"`

	ThisMonthUsers   int     `json:"thisMonthUsers"`
	LastMonthUsers   int     `json:"lastMonthUsers"`
	ThisMonthRevenue float64 `json:"thisMonthRevenue"`
	LastMonthRevenue float64 `json:"lastMonthRevenue"`
	UserGrowthPct    float64 `json:"userGrowthPct"`
	RevenueGrowthPct float64 `json:"revenueGrowthPct"`

	MembershipDistribution map[string]int `json:"membershipDistribution"`
}

type GrowthPoint struct {
	Month      string `json:"month"`
	Total      int    `json:"total"`
	Affiliates int    `json:"affiliates"`
	Learners   int    `json:"learners"`
}

type RevenuePoint struct {
	Month     string  `json:"month"`
	Total     float64 `json:"total"`
	Affiliate float64 `json:"affiliate"`
	Direct    float64 `json:"direct"`
}

type PaymentPoint struct {
	Month  string  `json:"month"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type CountryStat struct {
	Country    string  `json:"country"`
	Users      int     `json:"users"`
	Affiliates int     `json:"affiliates"`
	Revenue    float64 `json:"revenue"`
}

type HeatmapRow struct {
	Day   string `json:"day"`
	Hours []int  `json:"hours"`
}

// Report is the complete dashboard payload returned by the admin
// analytics endpoint.
type Report struct {
	Overview     Overview       `json:"overview"`
	UserGrowth   []GrowthPoint  `json:"userGrowth"`
	RevenueTrend []RevenuePoint `json:"revenueTrend"`
	PaymentTrend []PaymentPoint `json:"paymentTrend"`
	CountryData  []CountryStat  `json:"countryData"`
	Heatmap      []HeatmapRow   `json:"heatmap"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Report, error)
}
