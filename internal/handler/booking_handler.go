package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"razzrel/internal/middleware"
	"razzrel/internal/service"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	svc service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// CreateBookingRequest is the body of a new booking.
type CreateBookingRequest struct {
	FullName        string `json:"fullName"`
	EventDate       string `json:"eventDate" validate:"required"`
	ContactNumber   string `json:"contactNumber" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	VenueName       string `json:"venueName"`
	VenueAddress    string `json:"venueAddress"`
	ExpectedGuests  int    `json:"expectedGuests" validate:"gte=0"`
	SpecialRequests string `json:"specialRequests"`
	PackageID       uint   `json:"packageId" validate:"required"`
	EventType       string `json:"eventType"`
}

// CreateBooking godoc
// @Summary Request a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "Booking"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/bookings [post]
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	var req CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.svc.Create(c.Request().Context(), p.UserID, service.CreateBookingInput{
		FullName:        req.FullName,
		EventDate:       req.EventDate,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
		VenueName:       req.VenueName,
		VenueAddress:    req.VenueAddress,
		ExpectedGuests:  req.ExpectedGuests,
		SpecialRequests: req.SpecialRequests,
		PackageID:       req.PackageID,
		EventType:       req.EventType,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Booking created", echo.Map{"booking": booking})
}

// ListBookings godoc
// @Summary List bookings (all for admins, own otherwise)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Router /api/bookings [get]
func (h *BookingHandler) ListBookings(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	bookings, err := h.svc.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Bookings retrieved", echo.Map{"bookings": bookings})
}

// ListUserBookings godoc
// @Summary List one user's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/bookings/user/{userId} [get]
func (h *BookingHandler) ListUserBookings(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	bookings, err := h.svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Bookings retrieved", echo.Map{"bookings": bookings})
}

// AcceptBooking godoc
// @Summary Accept a pending booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/bookings/{id}/accept [put]
func (h *BookingHandler) AcceptBooking(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	booking, err := h.svc.Accept(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Booking accepted", echo.Map{"booking": booking})
}

// DeclineBooking godoc
// @Summary Decline a pending booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/bookings/{id}/decline [put]
func (h *BookingHandler) DeclineBooking(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	booking, err := h.svc.Decline(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Booking declined", echo.Map{"booking": booking})
}

// CancelBooking godoc
// @Summary Cancel the caller's oldest pending booking for a package
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Package ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/bookings/{id}/cancel [put]
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	p, err := middleware.MustPrincipal(c)
	if err != nil {
		return err
	}
	packageID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	booking, err := h.svc.Cancel(c.Request().Context(), p.UserID, packageID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Booking cancelled", echo.Map{"booking": booking})
}

// BookingAlerts godoc
// @Summary Latest pending bookings for staff
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/admin/notifications [get]
func (h *BookingHandler) BookingAlerts(c echo.Context) error {
	alerts, err := h.svc.Alerts(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Pending bookings retrieved", echo.Map{"notifications": alerts})
}

// UnseenBookingCount godoc
// @Summary Count pending bookings not yet seen by staff
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Router /api/admin/notifications/unread [get]
func (h *BookingHandler) UnseenBookingCount(c echo.Context) error {
	count, err := h.svc.UnseenCount(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Unread count retrieved", echo.Map{"count": count})
}

// MarkBookingsSeen godoc
// @Summary Mark every pending booking as seen by staff
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Router /api/admin/notifications/mark-read [put]
func (h *BookingHandler) MarkBookingsSeen(c echo.Context) error {
	updated, err := h.svc.MarkAllSeen(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Notifications marked as read", echo.Map{"updated": updated})
}
