package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"razzrel/internal/middleware"
	"razzrel/internal/model"
	"razzrel/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new auth handler. tokenTTL is reported to clients
// as expiresIn on login.
func NewAuthHandler(authService service.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FullName      string `json:"fullName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	ContactNo     string `json:"contactNo"`
	TermsAccepted bool   `json:"termsAccepted"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response. ExpiresIn is the token
// lifetime in seconds.
type AuthResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"`
	User      *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		ContactNo:     req.ContactNo,
		TermsAccepted: req.TermsAccepted,
		Role:          model.RoleUser,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "User registered successfully", echo.Map{"user": user})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		ExpiresIn: int64(h.tokenTTL / time.Second),
		User:      user,
	})
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, _ := middleware.Principal(c)
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}
