package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// ListCompleted returns every settled payment. This is the upstream
	// status filter the analytics engine depends on; callers must not
	// feed unfiltered rows into the aggregates.
	ListCompleted(ctx context.Context, db *gorm.DB) ([]Payment, error)
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
}
