package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ascendly/ascendly/internal/user/domain"
	"github.com/ascendly/ascendly/pkg/db"
	"github.com/ascendly/ascendly/pkg/db/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserDB(t *testing.T, count int) *gorm.DB {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.User{}))

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		seeded := domain.User{
			ID:        uuid.New(),
			Email:     fmt.Sprintf("user%03d@example.com", i),
			Status:    domain.StatusActive,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, conn.Create(&seeded).Error)
	}
	return conn
}

func TestListAllOrdersByCreation(t *testing.T) {
	conn := newUserDB(t, 5)
	repo := Provide()

	users, err := repo.ListAll(context.Background(), conn)
	require.NoError(t, err)
	require.Len(t, users, 5)
	for i := 1; i < len(users); i++ {
		assert.False(t, users[i].CreatedAt.Before(users[i-1].CreatedAt))
	}
}

func TestListPageWalksAllRows(t *testing.T) {
	conn := newUserDB(t, 7)
	repo := Provide()

	var seen []string
	page := pagination.Pagination{PageSize: 3}
	for {
		users, info, err := repo.ListPage(context.Background(), conn, page)
		require.NoError(t, err)
		for _, u := range users {
			seen = append(seen, u.Email)
		}
		if !info.HasMore {
			break
		}
		page.PageToken = info.NextPageToken
	}

	require.Len(t, seen, 7)
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1], seen[i])
	}
}

func TestListPageBadToken(t *testing.T) {
	conn := newUserDB(t, 1)
	repo := Provide()

	_, _, err := repo.ListPage(context.Background(), conn, pagination.Pagination{PageToken: "not-base64!"})
	assert.Error(t, err)
}

func TestFindByIDMissingReturnsNil(t *testing.T) {
	conn := newUserDB(t, 0)
	repo := Provide()

	found, err := repo.FindByID(context.Background(), conn, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}
