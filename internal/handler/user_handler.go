package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"razzrel/internal/middleware"
	"razzrel/internal/service"
)

// UserHandler bundles profile and user listing handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FullName       string  `json:"fullName" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	ContactNo      string  `json:"contactNo"`
	ProfilePicture *string `json:"profilePicture"`
}

// ActivityRequest toggles the caller's active flag.
type ActivityRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// GetProfile godoc
// @Summary Caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	user, err := h.svc.Profile(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile retrieved", echo.Map{"user": user})
}

// UpdateProfile godoc
// @Summary Update the caller's profile and reissue the token
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/users/update-profile [put]
// @Router /api/user/update [post]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.svc.UpdateProfile(c.Request().Context(), p.UserID, service.ProfileUpdate{
		FullName:       req.FullName,
		Email:          req.Email,
		ContactNo:      req.ContactNo,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Profile updated successfully",
		Token:   token,
		User:    user,
	})
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Users retrieved", echo.Map{"users": users})
}

// ListUsersPage godoc
// @Summary List users page by page
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} service.UserPage
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/users [get]
func (h *UserHandler) ListUsersPage(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.svc.ListPage(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Users retrieved", echo.Map{
		"users":      result.Users,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
	})
}

// SetActivity godoc
// @Summary Set the caller's active flag
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ActivityRequest true "Activity flag"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/user/activity [post]
func (h *UserHandler) SetActivity(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req ActivityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.SetActivity(c.Request().Context(), p.UserID, *req.IsActive); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Activity updated", echo.Map{"isActive": *req.IsActive})
}
