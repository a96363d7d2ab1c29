package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ascendly/ascendly/internal/analytics/domain"
	"github.com/ascendly/ascendly/internal/analytics/engine"
	"github.com/ascendly/ascendly/internal/clock"
	commissiondomain "github.com/ascendly/ascendly/internal/commission/domain"
	"github.com/ascendly/ascendly/internal/config"
	coursedomain "github.com/ascendly/ascendly/internal/course/domain"
	"github.com/ascendly/ascendly/internal/currency"
	membershipdomain "github.com/ascendly/ascendly/internal/membership/domain"
	"github.com/ascendly/ascendly/internal/observability/metrics"
	paymentdomain "github.com/ascendly/ascendly/internal/payment/domain"
	referraldomain "github.com/ascendly/ascendly/internal/referral/domain"
	userdomain "github.com/ascendly/ascendly/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Config      config.Config
	Rates       *currency.RatesHolder
	Metrics     *metrics.Metrics
	Users       userdomain.Repository
	Payments    paymentdomain.Repository
	Memberships membershipdomain.Repository
	Commissions commissiondomain.Repository
	Courses     coursedomain.Repository
	Referrals   referraldomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	policy      string
	location    *time.Location
	rates       *currency.RatesHolder
	metrics     *metrics.Metrics
	users       userdomain.Repository
	payments    paymentdomain.Repository
	memberships membershipdomain.Repository
	commissions commissiondomain.Repository
	courses     coursedomain.Repository
	referrals   referraldomain.Repository
}

func New(p Params) (domain.Service, error) {
	loc, err := time.LoadLocation(p.Config.Analytics.Timezone)
	if err != nil {
		return nil, fmt.Errorf("analytics: load timezone %q: %w", p.Config.Analytics.Timezone, err)
	}

	return &Service{
		db:          p.DB,
		log:         p.Log.Named("analytics.service"),
		clock:       p.Clock,
		policy:      p.Config.Analytics.PartialDataPolicy,
		location:    loc,
		rates:       p.Rates,
		metrics:     p.Metrics,
		users:       p.Users,
		payments:    p.Payments,
		memberships: p.Memberships,
		commissions: p.Commissions,
		courses:     p.Courses,
		referrals:   p.Referrals,
	}, nil
}

// Dashboard fetches the six record sets concurrently and folds them
// into the dashboard report. Under the fail_fast policy any failed
// fetch fails the whole request; under silent_zero a failed record set
// degrades to empty, is logged, and counted in metrics.
func (s *Service) Dashboard(ctx context.Context) (*domain.Report, error) {
	started := time.Now()

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		s.metrics.RecordDashboardBuild(ctx, time.Since(started), "error")
		return nil, err
	}

	report := engine.Compute(snap, s.clock.Now(), engine.Options{
		Converter: s.rates.Converter(),
		Location:  s.location,
	})

	s.metrics.RecordDashboardBuild(ctx, time.Since(started), "ok")
	return report, nil
}

type fetchResult struct {
	recordSet string
	err       error
}

func (s *Service) fetchSnapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot

	fetches := []struct {
		recordSet string
		run       func(context.Context) error
	}{
		{"users", func(ctx context.Context) error {
			rows, err := s.users.ListAll(ctx, s.db)
			snap.Users = rows
			return err
		}},
		{"payments", func(ctx context.Context) error {
			rows, err := s.payments.ListCompleted(ctx, s.db)
			snap.Payments = rows
			return err
		}},
		{"memberships", func(ctx context.Context) error {
			rows, err := s.memberships.ListActive(ctx, s.db)
			snap.Memberships = rows
			return err
		}},
		{"commissions", func(ctx context.Context) error {
			rows, err := s.commissions.ListAll(ctx, s.db)
			snap.Commissions = rows
			return err
		}},
		{"courses", func(ctx context.Context) error {
			rows, err := s.courses.List(ctx, s.db, false)
			snap.Courses = rows
			return err
		}},
		{"referrals", func(ctx context.Context) error {
			rows, err := s.referrals.ListAll(ctx, s.db)
			snap.Referrals = rows
			return err
		}},
	}

	results := make([]fetchResult, len(fetches))
	var wg sync.WaitGroup
	for i, fetch := range fetches {
		wg.Add(1)
		go func(i int, recordSet string, run func(context.Context) error) {
			defer wg.Done()
			results[i] = fetchResult{recordSet: recordSet, err: run(ctx)}
		}(i, fetch.recordSet, fetch.run)
	}
	wg.Wait()

	for _, res := range results {
		if res.err == nil {
			continue
		}
		if s.policy == config.PartialDataFailFast {
			return domain.Snapshot{}, fmt.Errorf("analytics: fetch %s: %w", res.recordSet, res.err)
		}
		// silent_zero: the legacy contract. The record set degrades to
		// empty and the dashboard under-reports without a caller-visible
		// error, so we at least log and count every occurrence.
		s.log.Warn("snapshot fetch failed, degrading to empty record set",
			zap.String("record_set", res.recordSet),
			zap.Error(res.err),
		)
		s.metrics.RecordSnapshotFetchFailure(ctx, res.recordSet)
	}

	return snap, nil
}
