package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ascendly/ascendly/internal/clock"
	"github.com/ascendly/ascendly/internal/course/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
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
		log:   p.Log.Named("course.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, publishedOnly bool) ([]domain.Course, error) {
	return s.repo.List(ctx, s.db, publishedOnly)
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Course, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}

	now := s.clock.Now()
	id := s.genID.Generate()

	courseSlug, err := s.uniqueSlug(ctx, title, id)
	if err != nil {
		return nil, err
	}

	course := &domain.Course{
		ID:          id,
		AuthorID:    req.AuthorID,
		Title:       title,
		Slug:        courseSlug,
		Description: strings.TrimSpace(req.Description),
		IsPublished: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, course); err != nil {
		return nil, err
	}

	s.log.Info("course created", zap.String("slug", course.Slug))
	return course, nil
}

func (s *Service) Publish(ctx context.Context, courseSlug string) (*domain.Course, error) {
	course, err := s.repo.FindBySlug(ctx, s.db, strings.TrimSpace(courseSlug))
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.ErrNotFound
	}
	if course.IsPublished {
		return course, nil
	}

	course.IsPublished = true
	course.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, course); err != nil {
		return nil, err
	}
	return course, nil
}

// uniqueSlug derives a URL slug from the title and disambiguates with the
// course ID when an identically titled course already exists.
func (s *Service) uniqueSlug(ctx context.Context, title string, id snowflake.ID) (string, error) {
	base := slug.Make(title)
	existing, err := s.repo.FindBySlug(ctx, s.db, base)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return base, nil
	}
	return fmt.Sprintf("%s-%s", base, strings.ToLower(id.Base36())), nil
}
