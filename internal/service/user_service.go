package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"razzrel/internal/auth"
	"razzrel/internal/cache"
	apperrors "razzrel/internal/errors"
	"razzrel/internal/model"
	"razzrel/internal/repository"
)

const (
	userCacheTTL     = 5 * time.Minute
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ProfileUpdate carries user-editable profile fields. A nil ProfilePicture
// keeps the current picture.
type ProfileUpdate struct {
	FullName       string
	Email          string
	ContactNo      string
	ProfilePicture *string
}

// UserPage is one page of the user listing.
type UserPage struct {
	Users      []model.User `json:"users"`
	Total      int64        `json:"total"`
	TotalPages int          `json:"totalPages"`
	Page       int          `json:"page"`
}

// UserService exposes profile and user administration operations.
type UserService interface {
	Profile(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, in ProfileUpdate) (*model.User, string, error)
	List(ctx context.Context) ([]model.User, error)
	ListPage(ctx context.Context, page, limit int) (*UserPage, error)
	SetActivity(ctx context.Context, id uint, active bool) error
	RoleOf(ctx context.Context, id uint) (model.Role, error)
}

type userService struct {
	repo       repository.UserRepository
	cache      *cache.Client
	jwtService *auth.JWTService
	roleTTL    time.Duration
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client, jwtService *auth.JWTService, roleTTL time.Duration) UserService {
	return &userService{repo: repo, cache: cache, jwtService: jwtService, roleTTL: roleTTL}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) roleKey(id uint) string {
	return fmt.Sprintf("user:%d:role", id)
}

func (s *userService) Profile(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapUserErr(err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

// UpdateProfile stores the new profile and returns a token reissued with the
// updated claims. Tokens issued earlier keep their old claims until expiry.
func (s *userService) UpdateProfile(ctx context.Context, id uint, in ProfileUpdate) (*model.User, string, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.FullName) == "" || email == "" {
		return nil, "", apperrors.NewValidationError("fullName and email are required")
	}

	user, err := s.repo.UpdateProfile(ctx, id, repository.ProfileFields{
		FullName:       strings.TrimSpace(in.FullName),
		Email:          email,
		ContactNo:      strings.TrimSpace(in.ContactNo),
		ProfilePicture: in.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrEmailExists
		}
		return nil, "", mapUserErr(err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	token, _, err := s.jwtService.Issue(auth.IdentityOf(user))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) ListPage(ctx context.Context, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	users, total, err := s.repo.ListPage(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return &UserPage{
		Users:      users,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		Page:       page,
	}, nil
}

func (s *userService) SetActivity(ctx context.Context, id uint, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return mapUserErr(err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// RoleOf returns the stored role, cached for the configured role TTL.
func (s *userService) RoleOf(ctx context.Context, id uint) (model.Role, error) {
	if data, _ := s.cache.Get(ctx, s.roleKey(id)); data != nil {
		return model.Role(data), nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", mapUserErr(err)
	}
	if s.roleTTL > 0 {
		_ = s.cache.Set(ctx, s.roleKey(id), []byte(user.Role), s.roleTTL)
	}
	return user.Role, nil
}

func mapUserErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	return err
}
