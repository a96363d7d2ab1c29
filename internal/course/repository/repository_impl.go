package repository

import (
	"context"

	"github.com/ascendly/ascendly/internal/course/domain"
	"github.com/ascendly/ascendly/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository { return &repo{} }

func (r *repo) List(ctx context.Context, tx *gorm.DB, publishedOnly bool) ([]domain.Course, error) {
	query := tx.WithContext(ctx).Model(&domain.Course{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var courses []domain.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repo) FindBySlug(ctx context.Context, tx *gorm.DB, slug string) (*domain.Course, error) {
	var course domain.Course
	err := tx.WithContext(ctx).
		Where("slug = ?", slug).
		First(&course).Error
	if err != nil {
		if db.IsNotFoundErr(err) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *repo) Insert(ctx context.Context, tx *gorm.DB, course *domain.Course) error {
	return tx.WithContext(ctx).Exec(`
		INSERT INTO courses (id, author_id, title, slug, description, is_published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		course.ID,
		course.AuthorID,
		course.Title,
		course.Slug,
		course.Description,
		course.IsPublished,
		course.CreatedAt,
		course.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, tx *gorm.DB, course *domain.Course) error {
	return tx.WithContext(ctx).Save(course).Error
}
