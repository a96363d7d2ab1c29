package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidTitle = errors.New("course: invalid title")
	ErrNotFound     = errors.New("course: not found")
)

type Course struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	AuthorID    uuid.UUID    `json:"author_id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug" gorm:"uniqueIndex"`
	Description string       `json:"description"`
	IsPublished bool         `json:"is_published"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Course) TableName() string { return "courses" }

type CreateRequest struct {
	AuthorID    uuid.UUID `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

type Repository interface {
	List(ctx context.Context, db *gorm.DB, publishedOnly bool) ([]Course, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Course, error)
	Insert(ctx context.Context, db *gorm.DB, course *Course) error
	Update(ctx context.Context, db *gorm.DB, course *Course) error
}

type Service interface {
	List(ctx context.Context, publishedOnly bool) ([]Course, error)
	Create(ctx context.Context, req CreateRequest) (*Course, error)
	Publish(ctx context.Context, slug string) (*Course, error)
}
