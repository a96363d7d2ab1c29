package repository

import (
	"context"
	"time"

	"github.com/ascendly/ascendly/internal/user/domain"
	"github.com/ascendly/ascendly/pkg/db"
	"github.com/ascendly/ascendly/pkg/db/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListAll(ctx context.Context, tx *gorm.DB) ([]domain.User, error) {
	var users []domain.User
	err := tx.WithContext(ctx).
		Model(&domain.User{}).
		Order("created_at asc, id asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) ListPage(ctx context.Context, tx *gorm.DB, page pagination.Pagination) ([]domain.User, pagination.PageInfo, error) {
	query := tx.WithContext(ctx).
		Model(&domain.User{}).
		Order("created_at asc, id asc")

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, pagination.PageInfo{}, err
		}
		after, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, pagination.PageInfo{}, err
		}
		query = query.Where("created_at > ? OR (created_at = ? AND id > ?)", after, after, cursor.ID)
	}

	var users []domain.User
	if err := query.Scopes(pagination.Apply(page)).Find(&users).Error; err != nil {
		return nil, pagination.PageInfo{}, err
	}

	size := page.PageSize
	if size <= 0 {
		size = 50
	}
	if size > 250 {
		size = 250
	}

	info := pagination.PageInfo{}
	if len(users) > size {
		users = users[:size]
		last := users[len(users)-1]
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        last.ID.String(),
			CreatedAt: last.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return nil, pagination.PageInfo{}, err
		}
		info.NextPageToken = token
		info.HasMore = true
	}

	return users, info, nil
}

func (r *repo) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := tx.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if db.IsNotFoundErr(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
