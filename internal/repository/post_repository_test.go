package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"razzrel/internal/model"
)

func TestPostRepository_ListLatest(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostRepository(db)

	author := &model.User{FullName: "Dana Reyes", Email: "dana@x.com", PasswordHash: "h", Role: model.RoleUser}
	require.NoError(t, db.Create(author).Error)

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.Post{
			UserID:    author.ID,
			Content:   "post",
			Images:    "uploads/a.jpg",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	orphan := &model.Post{UserID: author.ID + 1, Content: "no author", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, orphan))

	feed, err := repo.ListLatest(ctx, 2)

	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.True(t, feed[0].CreatedAt.After(feed[1].CreatedAt))
	assert.Equal(t, "Dana Reyes", feed[0].UserName)
	assert.Equal(t, "uploads/a.jpg", feed[0].Images)
	assert.NotEqual(t, orphan.ID, feed[0].ID)
}
