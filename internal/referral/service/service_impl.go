package service

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/ascendly/ascendly/internal/clock"
	"github.com/ascendly/ascendly/internal/referral/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("referral.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateCode(ctx context.Context, referrerID uuid.UUID) (*domain.Referral, error) {
	now := s.clock.Now()
	code, err := newCode(now)
	if err != nil {
		return nil, err
	}

	referral := &domain.Referral{
		ID:         s.genID.Generate(),
		Code:       code,
		ReferrerID: referrerID,
		Status:     domain.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, referral); err != nil {
		return nil, err
	}

	s.log.Info("referral code created", zap.String("code", referral.Code))
	return referral, nil
}

func (s *Service) Complete(ctx context.Context, code string, referredID uuid.UUID) (*domain.Referral, error) {
	var result *domain.Referral
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		referral, err := s.repo.FindByCode(ctx, tx, strings.TrimSpace(code))
		if err != nil {
			return err
		}
		if referral == nil {
			return domain.ErrNotFound
		}
		if referral.IsSuccessful() {
			result = referral
			return nil
		}

		referral.ReferredID = &referredID
		referral.Status = domain.StatusCompleted
		referral.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, referral); err != nil {
			return err
		}

		result = referral
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// newCode produces a sortable, URL-safe referral code.
func newCode(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
