package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ascendly/ascendly/internal/auth/domain"
	"github.com/ascendly/ascendly/internal/clock"
	userdomain "github.com/ascendly/ascendly/internal/user/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	tokenPrefix      = "ak_live_"
	tokenSecretBytes = 32
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  domain.Repository
	Users userdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  domain.Repository
	users userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("auth.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
		users: p.Users,
	}
}

func (s *Service) Authenticate(ctx context.Context, token string) (*userdomain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	record, err := s.repo.FindByHash(ctx, s.db, domain.HashToken(token))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrInvalidToken
	}

	now := s.clock.Now()
	if record.ExpiresAt != nil && now.After(*record.ExpiresAt) {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.users.FindByID(ctx, s.db, record.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, domain.ErrInvalidToken
	}

	if err := s.repo.Touch(ctx, s.db, record.ID, now); err != nil {
		// Auth already succeeded; a stale last_used_at is not worth a 401.
		s.log.Warn("failed to update token last_used_at", zap.Error(err))
	}

	return user, nil
}

func (s *Service) Issue(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	secret := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	plain := tokenPrefix + hex.EncodeToString(secret)

	now := s.clock.Now()
	record := &domain.AccessToken{
		ID:        s.genID.Generate(),
		UserID:    userID,
		TokenHash: domain.HashToken(plain),
		CreatedAt: now,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		record.ExpiresAt = &expires
	}

	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return "", err
	}
	return plain, nil
}
