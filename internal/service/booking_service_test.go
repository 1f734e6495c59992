package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"razzrel/internal/auth"
	apperrors "razzrel/internal/errors"
	"razzrel/internal/events"
	"razzrel/internal/model"
	"razzrel/internal/repository"
)

type bookingFixture struct {
	bookings  *MockBookingRepository
	products  *MockProductRepository
	notifier  *MockEmitter
	publisher *MockPublisher
	service   *bookingService
	now       time.Time
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings:  new(MockBookingRepository),
		products:  new(MockProductRepository),
		notifier:  new(MockEmitter),
		publisher: new(MockPublisher),
		now:       time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	f.service = NewBookingService(f.bookings, f.products, f.notifier, f.publisher).(*bookingService)
	f.service.now = func() time.Time { return f.now }
	return f
}

func (f *bookingFixture) assertExpectations(t *testing.T) {
	f.bookings.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func transitioned(id, owner uint, status model.BookingStatus) *model.Booking {
	return &model.Booking{
		ID:        id,
		UserID:    owner,
		PackageID: 2,
		EventType: "Wedding",
		EventDate: time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

func TestBookingService_Create(t *testing.T) {
	valid := CreateBookingInput{
		FullName:      "Ada",
		EventDate:     "2024-12-24",
		ContactNumber: "555-0100",
		PackageID:     2,
		EventType:     "Wedding",
	}

	t.Run("starts pending", func(t *testing.T) {
		f := newBookingFixture()
		f.products.On("FindByID", mock.Anything, uint(2)).Return(&model.Product{ID: 2}, nil)
		f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*model.Booking")).
			Run(func(args mock.Arguments) { args.Get(1).(*model.Booking).ID = 11 }).
			Return(nil)
		f.publisher.On("PublishJSON", mock.Anything, events.BookingCreated, mock.Anything).Return(nil)

		booking, err := f.service.Create(context.Background(), 7, valid)

		require.NoError(t, err)
		assert.Equal(t, model.BookingStatusPending, booking.Status)
		assert.Equal(t, uint(7), booking.UserID)
		assert.Equal(t, "2024-12-24", booking.EventDate.Format("2006-01-02"))
		f.assertExpectations(t)
	})

	t.Run("unknown package", func(t *testing.T) {
		f := newBookingFixture()
		f.products.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)

		_, err := f.service.Create(context.Background(), 7, valid)

		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
		f.assertExpectations(t)
	})

	invalid := []struct {
		name   string
		mutate func(*CreateBookingInput)
	}{
		{"missing event date", func(in *CreateBookingInput) { in.EventDate = "" }},
		{"unparseable event date", func(in *CreateBookingInput) { in.EventDate = "next friday" }},
		{"missing contact", func(in *CreateBookingInput) { in.ContactNumber = " " }},
		{"missing package", func(in *CreateBookingInput) { in.PackageID = 0 }},
		{"negative guests", func(in *CreateBookingInput) { in.ExpectedGuests = -1 }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			in := valid
			tt.mutate(&in)

			_, err := f.service.Create(context.Background(), 7, in)

			var validationErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			f.assertExpectations(t)
		})
	}
}

func TestBookingService_AcceptNotifiesOwnerOnce(t *testing.T) {
	f := newBookingFixture()
	f.bookings.On("Transition", mock.Anything, uint(5), model.BookingStatusAccepted, f.now).
		Return(transitioned(5, 7, model.BookingStatusAccepted), nil).Once()
	f.bookings.On("Transition", mock.Anything, uint(5), model.BookingStatusAccepted, f.now).
		Return(nil, repository.ErrNotPending).Once()
	f.notifier.On("Emit", mock.Anything, EmitInput{
		UserID:  7,
		Message: "Your booking for Wedding on 2024-12-24 has been accepted.",
		Type:    model.NotificationSuccess,
	}).Return(&model.Notification{ID: 1}, nil).Once()
	f.publisher.On("PublishJSON", mock.Anything, events.BookingAccepted, mock.Anything).Return(nil).Once()

	booking, err := f.service.Accept(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusAccepted, booking.Status)

	_, err = f.service.Accept(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrNoPendingBooking)

	f.assertExpectations(t)
	f.notifier.AssertNumberOfCalls(t, "Emit", 1)
}

func TestBookingService_TransitionSurvivesNotificationFailure(t *testing.T) {
	f := newBookingFixture()
	f.bookings.On("Transition", mock.Anything, uint(5), model.BookingStatusDeclined, f.now).
		Return(transitioned(5, 7, model.BookingStatusDeclined), nil)
	f.notifier.On("Emit", mock.Anything, mock.MatchedBy(func(in EmitInput) bool {
		return in.Type == model.NotificationError && in.UserID == 7
	})).Return(nil, errors.New("notifications table locked"))
	f.publisher.On("PublishJSON", mock.Anything, events.BookingDeclined, mock.Anything).
		Return(errors.New("broker down"))

	booking, err := f.service.Decline(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusDeclined, booking.Status)
	f.assertExpectations(t)
}

func TestBookingService_NotificationUsesDetachedContext(t *testing.T) {
	f := newBookingFixture()
	ctx, cancel := context.WithCancel(context.Background())

	f.bookings.On("Transition", mock.Anything, uint(5), model.BookingStatusAccepted, f.now).
		Run(func(mock.Arguments) { cancel() }).
		Return(transitioned(5, 7, model.BookingStatusAccepted), nil)
	f.notifier.On("Emit", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(&model.Notification{ID: 1}, nil)
	f.publisher.On("PublishJSON", mock.Anything, events.BookingAccepted, mock.Anything).Return(nil)

	_, err := f.service.Accept(ctx, 5)

	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestBookingService_TransitionErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"missing booking", gorm.ErrRecordNotFound, apperrors.ErrBookingNotFound},
		{"already terminal", repository.ErrNotPending, apperrors.ErrNoPendingBooking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			f.bookings.On("Transition", mock.Anything, uint(9), model.BookingStatusAccepted, f.now).Return(nil, tt.repoErr)

			_, err := f.service.Accept(context.Background(), 9)

			assert.ErrorIs(t, err, tt.wantErr)
			f.notifier.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		f := newBookingFixture()
		storeErr := errors.New("connection reset")
		f.bookings.On("Transition", mock.Anything, uint(9), model.BookingStatusDeclined, f.now).Return(nil, storeErr)

		_, err := f.service.Decline(context.Background(), 9)

		assert.ErrorIs(t, err, storeErr)
		assert.Equal(t, 500, apperrors.MapErrorToHTTP(err).StatusCode)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("cancels and notifies", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("CancelOldestPending", mock.Anything, uint(7), uint(2), f.now).
			Return(transitioned(3, 7, model.BookingStatusCancelled), nil)
		f.notifier.On("Emit", mock.Anything, EmitInput{
			UserID:  7,
			Message: "Your booking for Wedding on 2024-12-24 has been cancelled.",
			Type:    model.NotificationInfo,
		}).Return(&model.Notification{ID: 2}, nil)
		f.publisher.On("PublishJSON", mock.Anything, events.BookingCancelled, mock.Anything).Return(nil)

		booking, err := f.service.Cancel(context.Background(), 7, 2)

		require.NoError(t, err)
		assert.Equal(t, uint(3), booking.ID)
		f.assertExpectations(t)
	})

	t.Run("nothing pending", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("CancelOldestPending", mock.Anything, uint(7), uint(2), f.now).Return(nil, gorm.ErrRecordNotFound)

		_, err := f.service.Cancel(context.Background(), 7, 2)

		assert.ErrorIs(t, err, apperrors.ErrNoPendingBooking)
		f.assertExpectations(t)
	})
}

func TestBookingService_Listing(t *testing.T) {
	admin := auth.Identity{UserID: 1, Role: model.RoleAdmin}
	user := auth.Identity{UserID: 7, Role: model.RoleUser}
	own := []model.BookingView{{Booking: model.Booking{ID: 3, UserID: 7}}}

	t.Run("admin sees all", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("ListAll", mock.Anything).Return(own, nil)

		views, err := f.service.List(context.Background(), admin)

		require.NoError(t, err)
		assert.Len(t, views, 1)
		f.assertExpectations(t)
	})

	t.Run("user sees own", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("ListByUser", mock.Anything, uint(7)).Return(own, nil)

		views, err := f.service.List(context.Background(), user)

		require.NoError(t, err)
		assert.Equal(t, own, views)
		f.assertExpectations(t)
	})

	t.Run("one user's bookings", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.On("ListByUser", mock.Anything, uint(7)).Return(own, nil)

		views, err := f.service.ListForUser(context.Background(), 7)

		require.NoError(t, err)
		assert.Len(t, views, 1)
	})
}

func TestBookingService_AlertFeed(t *testing.T) {
	f := newBookingFixture()
	f.bookings.On("ListPendingAlerts", mock.Anything, 10).Return([]model.BookingAlert{{ID: 1}}, nil)
	f.bookings.On("CountUnseenPending", mock.Anything).Return(int64(4), nil)
	f.bookings.On("MarkPendingSeen", mock.Anything).Return(int64(4), nil)

	alerts, err := f.service.Alerts(context.Background())
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	count, err := f.service.UnseenCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	marked, err := f.service.MarkAllSeen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), marked)
	f.assertExpectations(t)
}
