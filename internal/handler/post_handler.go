package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"razzrel/internal/middleware"
	"razzrel/internal/service"
)

// PostHandler serves the community feed.
type PostHandler struct {
	svc service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// CreatePostRequest is the body of a new post. Images are references to
// already-uploaded files.
type CreatePostRequest struct {
	Content string   `json:"content" validate:"required"`
	Images  []string `json:"images"`
}

// ListPosts godoc
// @Summary Latest posts on the feed
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.svc.Feed(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Posts retrieved", echo.Map{"posts": posts})
}

// CreatePost godoc
// @Summary Publish a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post content and image references"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.svc.Create(c.Request().Context(), p.UserID, service.PostInput{
		Content: req.Content,
		Images:  req.Images,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Post created successfully.", echo.Map{"postId": post.ID})
}
