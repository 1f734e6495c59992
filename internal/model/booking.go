package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusAccepted  BookingStatus = "Accepted"
	BookingStatusDeclined  BookingStatus = "Declined"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// IsTerminal reports whether no transition leaves this status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusAccepted || s == BookingStatusDeclined || s == BookingStatusCancelled
}

// CanTransition reports whether a booking in status s may move to next.
// Only Pending has outgoing transitions.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	return s == BookingStatusPending && next.IsTerminal()
}

// TimestampColumn is the column stamped when a booking enters status s.
// Cancellation shares declined_at with staff declines.
func (s BookingStatus) TimestampColumn() string {
	switch s {
	case BookingStatusAccepted:
		return "accepted_at"
	case BookingStatusDeclined, BookingStatusCancelled:
		return "declined_at"
	default:
		return ""
	}
}

// Booking is a customer's request to book a catalog package for an event.
type Booking struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	UserID          uint          `json:"userId" gorm:"not null;index:idx_bookings_owner_package,priority:1"`
	FullName        string        `json:"fullName" gorm:"size:255"`
	EventDate       time.Time     `json:"eventDate" gorm:"type:date;not null;index"`
	ContactNumber   string        `json:"contactNumber" gorm:"size:32;not null"`
	Email           string        `json:"email" gorm:"size:255"`
	VenueName       string        `json:"venueName" gorm:"size:255"`
	VenueAddress    string        `json:"venueAddress" gorm:"size:512"`
	ExpectedGuests  int           `json:"expectedGuests"`
	SpecialRequests string        `json:"specialRequests" gorm:"type:text"`
	PackageID       uint          `json:"packageId" gorm:"not null;index:idx_bookings_owner_package,priority:2"`
	EventType       string        `json:"eventType" gorm:"size:100"`
	Status          BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index:idx_bookings_owner_package,priority:3"`
	SeenByStaff     bool          `json:"isRead" gorm:"column:is_read;default:false"`
	CreatedAt       time.Time     `json:"createdAt" gorm:"index:idx_bookings_owner_package,priority:4"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	AcceptedAt      *time.Time    `json:"acceptedAt,omitempty"`
	DeclinedAt      *time.Time    `json:"declinedAt,omitempty"`
}

// BookingView is a booking joined with its package and owner for listings.
type BookingView struct {
	Booking
	PackageName  string              `json:"packageName"`
	PackagePrice decimal.NullDecimal `json:"packagePrice"`
	UserName     string              `json:"userName"`
}

// BookingAlert is a Pending booking surfaced to staff.
type BookingAlert struct {
	ID          uint      `json:"id"`
	PackageType string    `json:"packageType"`
	Venue       string    `json:"venue"`
	CreatedAt   time.Time `json:"createdAt"`
	UserName    string    `json:"userName"`
}
