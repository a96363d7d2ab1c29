package domain

import (
	"context"

	"github.com/ascendly/ascendly/pkg/db/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ListAll(ctx context.Context, db *gorm.DB) ([]User, error)
	ListPage(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]User, pagination.PageInfo, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*User, error)
}
