package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"razzrel/internal/auth"
	"razzrel/internal/model"
	"razzrel/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

// MockBookingService is a mock implementation of service.BookingService.
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, ownerID uint, in service.CreateBookingInput) (*model.Booking, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context, principal auth.Identity) ([]model.BookingView, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BookingView), args.Error(1)
}

func (m *MockBookingService) ListForUser(ctx context.Context, userID uint) ([]model.BookingView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BookingView), args.Error(1)
}

func (m *MockBookingService) Accept(ctx context.Context, id uint) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) Decline(ctx context.Context, id uint) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, ownerID, packageID uint) (*model.Booking, error) {
	args := m.Called(ctx, ownerID, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) Alerts(ctx context.Context) ([]model.BookingAlert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BookingAlert), args.Error(1)
}

func (m *MockBookingService) UnseenCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingService) MarkAllSeen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationService is a mock implementation of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Emit(ctx context.Context, in service.EmitInput) (*model.Notification, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) List(ctx context.Context, userID uint, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID uint, id *uint) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockPostService is a mock implementation of service.PostService.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, authorID uint, in service.PostInput) (*model.Post, error) {
	args := m.Called(ctx, authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Feed(ctx context.Context) ([]model.PostView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PostView), args.Error(1)
}
