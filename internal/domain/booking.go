package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingType string

const (
	BookingTypeDestination BookingType = "destination"
	BookingTypeVehicle     BookingType = "vehicle"
	BookingTypeTrip        BookingType = "trip"
)

type TripType string

const (
	TripTypePrivate TripType = "private"
	TripTypeShared  TripType = "shared"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Booking struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	UserID          uuid.UUID     `db:"user_id" json:"user_id"`
	Type            BookingType   `db:"booking_type" json:"type"`
	TripType        TripType      `db:"trip_type" json:"trip_type"`
	ItemName        string        `db:"item_name" json:"item_name"`
	Destination     *string       `db:"destination" json:"destination,omitempty"`
	StartDate       time.Time     `db:"start_date" json:"start_date"`
	EndDate         time.Time     `db:"end_date" json:"end_date"`
	Guests          int           `db:"guests" json:"guests"`
	TotalPrice      float64       `db:"total_price" json:"total_price"`
	Status          BookingStatus `db:"status" json:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"payment_status"`
	SpecialRequests *string       `db:"special_requests" json:"special_requests,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// BookingWithOwner joins the owner's public identity onto a booking for the
// admin listing.
type BookingWithOwner struct {
	Booking
	OwnerFirstName string  `db:"owner_first_name" json:"owner_first_name"`
	OwnerLastName  *string `db:"owner_last_name" json:"owner_last_name,omitempty"`
	OwnerEmail     string  `db:"owner_email" json:"owner_email"`
}

// BookingPatch is the admin-only partial update. Nil means "leave unchanged".
type BookingPatch struct {
	Status          *BookingStatus `json:"status,omitempty"`
	PaymentStatus   *PaymentStatus `json:"payment_status,omitempty"`
	TotalPrice      *float64       `json:"total_price,omitempty"`
	StartDate       *time.Time     `json:"start_date,omitempty"`
	EndDate         *time.Time     `json:"end_date,omitempty"`
	Guests          *int           `json:"guests,omitempty"`
	SpecialRequests *string        `json:"special_requests,omitempty"`
}

func (t BookingType) Valid() bool {
	switch t {
	case BookingTypeDestination, BookingTypeVehicle, BookingTypeTrip:
		return true
	}
	return false
}

func (t TripType) Valid() bool {
	return t == TripTypePrivate || t == TripTypeShared
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// Active reports whether the booking still occupies its slot. Cancelled and
// completed bookings do not count against the one-active-vehicle rule.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}
