package repository

import (
	"context"

	"gorm.io/gorm"

	"razzrel/internal/model"
)

// PostRepository defines feed persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	ListLatest(ctx context.Context, limit int) ([]model.PostView, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// ListLatest returns the newest posts with their author's name. Posts whose
// author no longer exists are left out.
func (r *postRepository) ListLatest(ctx context.Context, limit int) ([]model.PostView, error) {
	var views []model.PostView
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Select("posts.*, users.full_name AS user_name").
		Joins("JOIN users ON users.id = posts.user_id").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
