package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	analyticsdomain "github.com/ascendly/ascendly/internal/analytics/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Provider renders the admin dashboard as a downloadable PDF.
type Provider interface {
	GenerateDashboardReport(ctx context.Context, report *analyticsdomain.Report, generatedAt time.Time) (io.Reader, error)
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateDashboardReport(ctx context.Context, report *analyticsdomain.Report, generatedAt time.Time) (io.Reader, error) {
	if report == nil {
		return nil, fmt.Errorf("nil dashboard report")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Admin Analytics Report", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{Size: 9}),
	)

	o := report.Overview
	m.AddRow(10, text.NewCol(12, "Overview", props.Text{Size: 12, Style: fontstyle.Bold, Top: 3}))
	addMetricRow(m, "Total users", fmt.Sprintf("%d", o.TotalUsers), "Active users", fmt.Sprintf("%d", o.ActiveUsers))
	addMetricRow(m, "Affiliates", fmt.Sprintf("%d", o.Affiliates), "Affiliates onboarded", fmt.Sprintf("%d", o.AffiliatesOnboarded))
	addMetricRow(m, "Active memberships", fmt.Sprintf("%d", o.ActiveMemberships), "Courses (published)", fmt.Sprintf("%d (%d)", o.TotalCourses, o.PublishedCourses))
	addMetricRow(m, "Referrals (successful)", fmt.Sprintf("%d (%d)", o.TotalReferrals, o.SuccessfulReferrals), "Pending commissions", usd(o.PendingCommissions))
	addMetricRow(m, "Total revenue", usd(o.TotalRevenue), "Commission payouts", usd(o.TotalCommissionAmount))
	addMetricRow(m, "Affiliate revenue", usd(o.AffiliateRevenue), "Direct revenue", usd(o.DirectRevenue))
	addMetricRow(m, "User growth MoM", pct(o.UserGrowthPct), "Revenue growth MoM", pct(o.RevenueGrowthPct))

	m.AddRow(10, text.NewCol(12, "Revenue Trend (12 months)", props.Text{Size: 12, Style: fontstyle.Bold, Top: 3}))
	m.AddRow(8,
		text.NewCol(3, "Month", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Affiliate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Direct", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, point := range report.RevenueTrend {
		m.AddRow(7,
			text.NewCol(3, point.Month, props.Text{Size: 9}),
			text.NewCol(3, usd(point.Total), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, usd(point.Affiliate), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, usd(point.Direct), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10, text.NewCol(12, "Top Countries", props.Text{Size: 12, Style: fontstyle.Bold, Top: 3}))
	m.AddRow(8,
		text.NewCol(4, "Country", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Users", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Affiliates", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Revenue", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, stat := range report.CountryData {
		m.AddRow(7,
			text.NewCol(4, stat.Country, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", stat.Users), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, fmt.Sprintf("%d", stat.Affiliates), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, usd(stat.Revenue), props.Text{Size: 9, Align: align.Right}),
		)
	}

	if len(o.MembershipDistribution) > 0 {
		m.AddRow(10, text.NewCol(12, "Active Memberships by Plan", props.Text{Size: 12, Style: fontstyle.Bold, Top: 3}))
		plans := make([]string, 0, len(o.MembershipDistribution))
		for plan := range o.MembershipDistribution {
			plans = append(plans, plan)
		}
		sort.Strings(plans)
		for _, plan := range plans {
			m.AddRow(7,
				text.NewCol(6, plan, props.Text{Size: 9}),
				text.NewCol(6, fmt.Sprintf("%d", o.MembershipDistribution[plan]), props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func addMetricRow(m core.Maroto, leftLabel, leftValue, rightLabel, rightValue string) {
	m.AddRow(8,
		text.NewCol(4, leftLabel, props.Text{Size: 9}),
		text.NewCol(2, leftValue, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(4, rightLabel, props.Text{Size: 9}),
		text.NewCol(2, rightValue, props.Text{Size: 9, Align: align.Right}),
	)
}

func usd(v float64) string { return fmt.Sprintf("$%.2f", v) }

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v) }
