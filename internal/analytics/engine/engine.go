// Package engine computes the admin dashboard views. It is a pure
// function of (snapshot, now): no I/O, no shared state, every call
// recomputes all views from scratch.
package engine

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ascendly/ascendly/internal/analytics/domain"
	"github.com/ascendly/ascendly/internal/currency"
	paymentdomain "github.com/ascendly/ascendly/internal/payment/domain"
)

const trendMonths = 12

// Monday-first, matching the dashboard's week layout.
var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type Options struct {
	// Converter normalizes amounts to USD. Zero value converts with the
	// built-in default rate table.
	Converter currency.Converter

	// Location pins calendar-month boundaries and heatmap hours. Nil
	// defaults to UTC so outputs are reproducible across deployments.
	Location *time.Location
}

// Compute derives every dashboard view from the snapshot. Payments are
// assumed pre-filtered to completed status; the engine does not
// re-check it.
func Compute(snap domain.Snapshot, now time.Time, opts Options) *domain.Report {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	conv := opts.Converter

	report := &domain.Report{
		Overview: overview(snap, conv),
	}
	applyDeltas(&report.Overview, snap, now, loc, conv)
	report.Overview.MembershipDistribution = membershipDistribution(snap)

	report.UserGrowth, report.RevenueTrend, report.PaymentTrend = trends(snap, now, loc, conv)
	report.CountryData = countryBreakdown(snap, conv)
	report.Heatmap = heatmap(snap, loc)
	return report
}

// paymentUSD normalizes a single payment to USD, preferring the
// pre-converted base pair when it is already in USD.
func paymentUSD(p paymentdomain.Payment, conv currency.Converter) float64 {
	if p.BaseAmount != nil && strings.EqualFold(p.BaseCurrency, "USD") {
		return *p.BaseAmount
	}
	return conv.ToUSD(p.Amount, p.Currency)
}

func overview(snap domain.Snapshot, conv currency.Converter) domain.Overview {
	var o domain.Overview

	o.TotalUsers = len(snap.Users)
	for _, u := range snap.Users {
		if u.IsActive() {
			o.ActiveUsers++
		}
		if u.IsAffiliate() {
			o.Affiliates++
			if u.AffiliateOnboardingCompleted {
				o.AffiliatesOnboarded++
			}
		}
	}

	for _, m := range snap.Memberships {
		if m.IsActive {
			o.ActiveMemberships++
		}
	}

	o.TotalCourses = len(snap.Courses)
	for _, c := range snap.Courses {
		if c.IsPublished {
			o.PublishedCourses++
		}
	}

	o.TotalReferrals = len(snap.Referrals)
	for _, r := range snap.Referrals {
		if r.IsSuccessful() {
			o.SuccessfulReferrals++
		}
	}

	var total, affiliate float64
	for _, p := range snap.Payments {
		usd := paymentUSD(p, conv)
		total += usd
		if p.IsAffiliateAttributed() {
			affiliate += usd
		}
	}
	o.TotalRevenue = round2(total)
	o.AffiliateRevenue = round2(affiliate)
	o.DirectRevenue = round2(total - affiliate)

	var commissions, pending float64
	for _, c := range snap.Commissions {
		usd := conv.ToUSD(c.CommissionAmount, c.CommissionCurrency)
		commissions += usd
		if c.IsPending() {
			pending += usd
		}
	}
	o.TotalCommissionAmount = round2(commissions)
	o.PendingCommissions = round2(pending)

	return o
}

func applyDeltas(o *domain.Overview, snap domain.Snapshot, now time.Time, loc *time.Location, conv currency.Converter) {
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	for _, u := range snap.Users {
		created := u.CreatedAt.In(loc)
		switch {
		case !created.Before(thisMonthStart):
			o.ThisMonthUsers++
		case !created.Before(lastMonthStart):
			o.LastMonthUsers++
		}
	}

	var thisRevenue, lastRevenue float64
	for _, p := range snap.Payments {
		created := p.CreatedAt.In(loc)
		switch {
		case !created.Before(thisMonthStart):
			thisRevenue += paymentUSD(p, conv)
		case !created.Before(lastMonthStart):
			lastRevenue += paymentUSD(p, conv)
		}
	}
	o.ThisMonthRevenue = round2(thisRevenue)
	o.LastMonthRevenue = round2(lastRevenue)

	o.UserGrowthPct = growthPct(float64(o.ThisMonthUsers), float64(o.LastMonthUsers))
	o.RevenueGrowthPct = growthPct(thisRevenue, lastRevenue)
}

// growthPct applies the month-over-month convention: growth from a
// zero baseline reports 100, and zero-to-zero reports 0.
func growthPct(this, last float64) float64 {
	switch {
	case last > 0:
		return round1((this - last) / last * 100)
	case this > 0:
		return 100
	default:
		return 0
	}
}

func trends(snap domain.Snapshot, now time.Time, loc *time.Location, conv currency.Converter) ([]domain.GrowthPoint, []domain.RevenuePoint, []domain.PaymentPoint) {
	growth := make([]domain.GrowthPoint, 0, trendMonths)
	revenue := make([]domain.RevenuePoint, 0, trendMonths)
	payments := make([]domain.PaymentPoint, 0, trendMonths)

	for i := trendMonths - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		label := start.Format("Jan 06")

		gp := domain.GrowthPoint{Month: label}
		for _, u := range snap.Users {
			if !inBucket(u.CreatedAt, start, end, loc) {
				continue
			}
			gp.Total++
			if u.IsAffiliate() {
				gp.Affiliates++
			}
		}
		gp.Learners = gp.Total - gp.Affiliates
		growth = append(growth, gp)

		rp := domain.RevenuePoint{Month: label}
		pp := domain.PaymentPoint{Month: label}
		var total, affiliate float64
		for _, p := range snap.Payments {
			if !inBucket(p.CreatedAt, start, end, loc) {
				continue
			}
			usd := paymentUSD(p, conv)
			total += usd
			if p.IsAffiliateAttributed() {
				affiliate += usd
			}
			pp.Count++
		}
		rp.Total = round2(total)
		rp.Affiliate = round2(affiliate)
		rp.Direct = round2(total - affiliate)
		pp.Amount = round2(total)
		revenue = append(revenue, rp)
		payments = append(payments, pp)
	}

	return growth, revenue, payments
}

func inBucket(ts, start, end time.Time, loc *time.Location) bool {
	ts = ts.In(loc)
	return !ts.Before(start) && ts.Before(end)
}

func countryBreakdown(snap domain.Snapshot, conv currency.Converter) []domain.CountryStat {
	byCountry := make(map[string]*domain.CountryStat)
	userCountry := make(map[string]string, len(snap.Users))

	for _, u := range snap.Users {
		country := u.Country
		if country == "" {
			country = "Unknown"
		}
		userCountry[u.ID.String()] = country

		stat, ok := byCountry[country]
		if !ok {
			stat = &domain.CountryStat{Country: country}
			byCountry[country] = stat
		}
		stat.Users++
		if u.IsAffiliate() {
			stat.Affiliates++
		}
	}

	// Payments from users outside the snapshot have no country to land
	// in and are dropped from this view only.
	revenue := make(map[string]float64, len(byCountry))
	for _, p := range snap.Payments {
		country, ok := userCountry[p.UserID.String()]
		if !ok {
			continue
		}
		revenue[country] += paymentUSD(p, conv)
	}

	stats := make([]domain.CountryStat, 0, len(byCountry))
	for country, stat := range byCountry {
		stat.Revenue = round2(revenue[country])
		stats = append(stats, *stat)
	}

	// Users descending, country name ascending on ties.
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Users != stats[j].Users {
			return stats[i].Users > stats[j].Users
		}
		return stats[i].Country < stats[j].Country
	})
	if len(stats) > 10 {
		stats = stats[:10]
	}
	return stats
}

func heatmap(snap domain.Snapshot, loc *time.Location) []domain.HeatmapRow {
	var grid [7][24]int
	for _, u := range snap.Users {
		created := u.CreatedAt.In(loc)
		row := (int(created.Weekday()) + 6) % 7 // Sunday-first to Monday-first
		grid[row][created.Hour()]++
	}

	rows := make([]domain.HeatmapRow, 7)
	for i := range rows {
		hours := make([]int, 24)
		copy(hours, grid[i][:])
		rows[i] = domain.HeatmapRow{Day: weekdayLabels[i], Hours: hours}
	}
	return rows
}

func membershipDistribution(snap domain.Snapshot) map[string]int {
	dist := make(map[string]int)
	for _, m := range snap.Memberships {
		if !m.IsActive {
			continue
		}
		plan := m.MembershipID
		if plan == "" {
			plan = "unknown"
		}
		dist[plan]++
	}
	return dist
}

// round2 rounds half-up at the cent.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
