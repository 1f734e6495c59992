package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"razzrel/internal/auth"
	apperrors "razzrel/internal/errors"
	"razzrel/internal/events"
	"razzrel/internal/model"
	"razzrel/internal/repository"
)

const (
	eventDateLayout = "2006-01-02"
	alertFeedLimit  = 10
)

// CreateBookingInput carries a booking request as submitted by its owner.
type CreateBookingInput struct {
	FullName        string
	EventDate       string
	ContactNumber   string
	Email           string
	VenueName       string
	VenueAddress    string
	ExpectedGuests  int
	SpecialRequests string
	PackageID       uint
	EventType       string
}

func (in CreateBookingInput) eventDate() (time.Time, error) {
	raw := strings.TrimSpace(in.EventDate)
	if raw == "" {
		return time.Time{}, apperrors.NewValidationError("eventDate is required")
	}
	if d, err := time.Parse(eventDateLayout, raw); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, raw); err == nil {
		return d, nil
	}
	return time.Time{}, apperrors.NewValidationError("eventDate must be YYYY-MM-DD")
}

// BookingService drives the booking lifecycle. Bookings start Pending and
// move once to Accepted, Declined or Cancelled.
type BookingService interface {
	Create(ctx context.Context, ownerID uint, in CreateBookingInput) (*model.Booking, error)
	List(ctx context.Context, principal auth.Identity) ([]model.BookingView, error)
	ListForUser(ctx context.Context, userID uint) ([]model.BookingView, error)
	Accept(ctx context.Context, id uint) (*model.Booking, error)
	Decline(ctx context.Context, id uint) (*model.Booking, error)
	Cancel(ctx context.Context, ownerID, packageID uint) (*model.Booking, error)
	Alerts(ctx context.Context) ([]model.BookingAlert, error)
	UnseenCount(ctx context.Context) (int64, error)
	MarkAllSeen(ctx context.Context) (int64, error)
}

type bookingService struct {
	bookings  repository.BookingRepository
	products  repository.ProductRepository
	notifier  Emitter
	publisher events.Publisher
	now       func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookings repository.BookingRepository,
	products repository.ProductRepository,
	notifier Emitter,
	publisher events.Publisher,
) BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &bookingService{
		bookings:  bookings,
		products:  products,
		notifier:  notifier,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, ownerID uint, in CreateBookingInput) (booking *model.Booking, err error) {
	ctx, span := startSpan(ctx, "BookingService.Create", attribute.Int("user.id", int(ownerID)))
	defer func() { endSpan(span, err) }()

	eventDate, err := in.eventDate()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		return nil, apperrors.NewValidationError("contactNumber is required")
	}
	if in.PackageID == 0 {
		return nil, apperrors.NewValidationError("packageId is required")
	}
	if in.ExpectedGuests < 0 {
		return nil, apperrors.NewValidationError("expectedGuests must not be negative")
	}

	if _, err := s.products.FindByID(ctx, in.PackageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find package %d: %w", in.PackageID, err)
	}

	booking = &model.Booking{
		UserID:          ownerID,
		FullName:        strings.TrimSpace(in.FullName),
		EventDate:       eventDate,
		ContactNumber:   strings.TrimSpace(in.ContactNumber),
		Email:           normalizeEmail(in.Email),
		VenueName:       in.VenueName,
		VenueAddress:    in.VenueAddress,
		ExpectedGuests:  in.ExpectedGuests,
		SpecialRequests: in.SpecialRequests,
		PackageID:       in.PackageID,
		EventType:       in.EventType,
		Status:          model.BookingStatusPending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	span.SetAttributes(attribute.Int("booking.id", int(booking.ID)))
	s.publish(ctx, booking)
	return booking, nil
}

// List returns every booking to admins and only their own to everyone else.
func (s *bookingService) List(ctx context.Context, principal auth.Identity) ([]model.BookingView, error) {
	if principal.IsAdmin() {
		return s.bookings.ListAll(ctx)
	}
	return s.bookings.ListByUser(ctx, principal.UserID)
}

// ListForUser lists one user's bookings. Callers gate it with an
// admin-or-owner policy on the route.
func (s *bookingService) ListForUser(ctx context.Context, userID uint) ([]model.BookingView, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *bookingService) Accept(ctx context.Context, id uint) (*model.Booking, error) {
	return s.transition(ctx, id, model.BookingStatusAccepted)
}

func (s *bookingService) Decline(ctx context.Context, id uint) (*model.Booking, error) {
	return s.transition(ctx, id, model.BookingStatusDeclined)
}

func (s *bookingService) transition(ctx context.Context, id uint, to model.BookingStatus) (booking *model.Booking, err error) {
	ctx, span := startSpan(ctx, "BookingService.Transition",
		attribute.Int("booking.id", int(id)),
		attribute.String("booking.status", string(to)),
	)
	defer func() { endSpan(span, err) }()

	booking, err = s.bookings.Transition(ctx, id, to, s.now())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperrors.ErrBookingNotFound
	case errors.Is(err, repository.ErrNotPending):
		return nil, apperrors.ErrNoPendingBooking
	case err != nil:
		return nil, fmt.Errorf("%s booking %d: %w", strings.ToLower(string(to)), id, err)
	}

	s.announce(ctx, booking)
	return booking, nil
}

// Cancel cancels the oldest Pending booking the owner holds for packageID.
func (s *bookingService) Cancel(ctx context.Context, ownerID, packageID uint) (booking *model.Booking, err error) {
	ctx, span := startSpan(ctx, "BookingService.Cancel",
		attribute.Int("user.id", int(ownerID)),
		attribute.Int("package.id", int(packageID)),
	)
	defer func() { endSpan(span, err) }()

	booking, err = s.bookings.CancelOldestPending(ctx, ownerID, packageID, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoPendingBooking
		}
		return nil, fmt.Errorf("cancel booking for package %d: %w", packageID, err)
	}

	s.announce(ctx, booking)
	return booking, nil
}

func (s *bookingService) Alerts(ctx context.Context) ([]model.BookingAlert, error) {
	return s.bookings.ListPendingAlerts(ctx, alertFeedLimit)
}

func (s *bookingService) UnseenCount(ctx context.Context) (int64, error) {
	return s.bookings.CountUnseenPending(ctx)
}

func (s *bookingService) MarkAllSeen(ctx context.Context) (int64, error) {
	return s.bookings.MarkPendingSeen(ctx)
}

// announce runs after the transition committed. Neither the notification nor
// the event can undo it; failures are only logged.
func (s *bookingService) announce(ctx context.Context, b *model.Booking) {
	ctx = context.WithoutCancel(ctx)

	msgType, verb := notificationFor(b.Status)
	_, err := s.notifier.Emit(ctx, EmitInput{
		UserID:  b.UserID,
		Message: fmt.Sprintf("Your booking for %s on %s has been %s.", b.EventType, b.EventDate.Format(eventDateLayout), verb),
		Type:    msgType,
	})
	if err != nil {
		log.Warnf("booking %d %s: notification not delivered: %v", b.ID, b.Status, err)
	}

	s.publish(ctx, b)
}

func (s *bookingService) publish(ctx context.Context, b *model.Booking) {
	key := events.RoutingKeyFor(b.Status)
	if err := s.publisher.PublishJSON(ctx, key, events.NewBookingEvent(b, s.now())); err != nil {
		log.Warnf("booking %d: publish %s: %v", b.ID, key, err)
	}
}

func notificationFor(status model.BookingStatus) (model.NotificationType, string) {
	switch status {
	case model.BookingStatusAccepted:
		return model.NotificationSuccess, "accepted"
	case model.BookingStatusDeclined:
		return model.NotificationError, "declined"
	default:
		return model.NotificationInfo, "cancelled"
	}
}
