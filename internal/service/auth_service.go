package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"razzrel/internal/auth"
	apperrors "razzrel/internal/errors"
	"razzrel/internal/model"
	"razzrel/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	FullName      string
	Email         string
	Password      string
	ContactNo     string
	TermsAccepted bool
	Role          model.Role
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		now:        time.Now,
	}
}

// Register creates a new user with a hashed password. Email uniqueness is
// left to the store's unique index.
func (s *authService) Register(ctx context.Context, in RegisterInput) (user *model.User, err error) {
	ctx, span := startSpan(ctx, "AuthService.Register")
	defer func() { endSpan(span, err) }()

	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.FullName) == "" || email == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("fullName, email and password are required")
	}
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user = &model.User{
		FullName:      strings.TrimSpace(in.FullName),
		Email:         email,
		PasswordHash:  string(hashedPassword),
		ContactNo:     strings.TrimSpace(in.ContactNo),
		Role:          role,
		TermsAccepted: in.TermsAccepted,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return user, nil
}

// Login verifies the password and issues a token carrying the user's profile claims.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *model.User, err error) {
	ctx, span := startSpan(ctx, "AuthService.Login")
	defer func() { endSpan(span, err) }()

	user, err = s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidPassword
	}

	token, _, err = s.jwtService.Issue(auth.IdentityOf(user))
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return apperrors.ErrUnauthorized
	}
	remaining := claims.ExpiresAt.Time.Sub(s.now())
	return s.tokenStore.Revoke(ctx, claims.ID, remaining)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
