package service

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	apperrors "razzrel/internal/errors"
	"razzrel/internal/model"
	"razzrel/internal/repository"
)

const (
	feedLimit         = 20
	maxImagesPerPost  = 5
	maxImageRefLength = 512
)

// PostInput carries the fields of a new post. Images are references to
// already-uploaded files.
type PostInput struct {
	Content string
	Images  []string
}

func (in PostInput) validate() error {
	if strings.TrimSpace(in.Content) == "" {
		return apperrors.NewValidationError("content is required")
	}
	if len(in.Images) > maxImagesPerPost {
		return apperrors.NewValidationError("at most %d images are allowed", maxImagesPerPost)
	}
	for _, ref := range in.Images {
		ref = strings.TrimSpace(ref)
		if ref == "" || strings.Contains(ref, ",") || len(ref) > maxImageRefLength {
			return apperrors.NewValidationError("images contains an invalid reference")
		}
	}
	return nil
}

// PostService manages the community feed.
type PostService interface {
	Create(ctx context.Context, authorID uint, in PostInput) (*model.Post, error)
	Feed(ctx context.Context) ([]model.PostView, error)
}

type postService struct {
	repo repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(repo repository.PostRepository) PostService {
	return &postService{repo: repo}
}

func (s *postService) Create(ctx context.Context, authorID uint, in PostInput) (post *model.Post, err error) {
	ctx, span := startSpan(ctx, "PostService.Create", attribute.Int("user.id", int(authorID)))
	defer func() { endSpan(span, err) }()

	if err := in.validate(); err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(in.Images))
	for _, ref := range in.Images {
		refs = append(refs, strings.TrimSpace(ref))
	}

	post = &model.Post{
		UserID:  authorID,
		Content: strings.TrimSpace(in.Content),
		Images:  strings.Join(refs, ","),
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post for user %d: %w", authorID, err)
	}
	return post, nil
}

// Feed returns the latest posts, newest first.
func (s *postService) Feed(ctx context.Context) ([]model.PostView, error) {
	views, err := s.repo.ListLatest(ctx, feedLimit)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].ImageList = views[i].ImageRefs()
	}
	return views, nil
}
