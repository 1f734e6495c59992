package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "razzrel/internal/errors"
	"razzrel/internal/model"
	"razzrel/internal/repository"
)

const (
	defaultNotificationLimit = 10
	maxNotificationLimit     = 50
)

// EmitInput describes a notification to append.
type EmitInput struct {
	UserID         uint
	Message        string
	Type           model.NotificationType
	RelatedContent *string
	ActionUserID   *uint
}

// Emitter appends notifications. Booking transitions depend only on this.
type Emitter interface {
	Emit(ctx context.Context, in EmitInput) (*model.Notification, error)
}

// NotificationService manages per-user notifications.
type NotificationService interface {
	Emitter
	List(ctx context.Context, userID uint, limit int) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID uint, id *uint) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Emit(ctx context.Context, in EmitInput) (*model.Notification, error) {
	if in.UserID == 0 {
		return nil, apperrors.NewValidationError("userId is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, apperrors.NewValidationError("message is required")
	}
	if in.Type == "" {
		in.Type = model.NotificationInfo
	}

	n := &model.Notification{
		UserID:         in.UserID,
		Message:        in.Message,
		Type:           in.Type,
		RelatedContent: in.RelatedContent,
		ActionUserID:   in.ActionUserID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification for user %d: %w", in.UserID, err)
	}
	return n, nil
}

func (s *notificationService) List(ctx context.Context, userID uint, limit int) ([]model.Notification, error) {
	if limit < 1 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marks one notification when id is set, otherwise every unread
// notification of the user. Only the recipient can mark a notification.
func (s *notificationService) MarkRead(ctx context.Context, userID uint, id *uint) (int64, error) {
	if id == nil {
		return s.repo.MarkAllRead(ctx, userID)
	}
	n, err := s.repo.MarkRead(ctx, userID, *id)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, apperrors.ErrNotificationNotFound
	}
	return n, nil
}
