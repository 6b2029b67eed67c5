package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/repository/ports"
)

var (
	ErrBookingValidation    = errors.New("booking validation failed")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrActiveVehicleBooking = errors.New("an active vehicle booking already exists")
)

type BookingInput struct {
	Type            domain.BookingType
	TripType        domain.TripType
	ItemName        string
	Destination     *string
	StartDate       string
	EndDate         string
	Guests          int
	TotalPrice      float64
	SpecialRequests *string
}

type BookingService struct {
	bookings ports.BookingRepository
}

func NewBookingService(bookingRepo ports.BookingRepository) *BookingService {
	return &BookingService{bookings: bookingRepo}
}

// Create validates the payload and persists a pending booking. The total
// price is taken from the client as-is; admins review it before confirming.
func (s *BookingService) Create(ctx context.Context, ownerID uuid.UUID, input BookingInput) (*domain.Booking, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be destination, vehicle or trip", ErrBookingValidation)
	}
	tripType := input.TripType
	if tripType == "" {
		tripType = domain.TripTypePrivate
	}
	if !tripType.Valid() {
		return nil, fmt.Errorf("%w: trip type must be private or shared", ErrBookingValidation)
	}
	itemName := strings.TrimSpace(input.ItemName)
	if itemName == "" {
		return nil, fmt.Errorf("%w: item name required", ErrBookingValidation)
	}
	startDate, err := parseBookingDate(input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrBookingValidation)
	}
	endDate, err := parseBookingDate(input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date", ErrBookingValidation)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrBookingValidation)
	}
	if input.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", ErrBookingValidation)
	}
	if input.TotalPrice < 0 {
		return nil, fmt.Errorf("%w: total price cannot be negative", ErrBookingValidation)
	}

	// One active vehicle booking per user, enforced here rather than trusted
	// to the client.
	if input.Type == domain.BookingTypeVehicle {
		active, err := s.bookings.CountActiveByType(ctx, ownerID, domain.BookingTypeVehicle)
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, ErrActiveVehicleBooking
		}
	}

	booking := &domain.Booking{
		UserID:          ownerID,
		Type:            input.Type,
		TripType:        tripType,
		ItemName:        itemName,
		Destination:     normalizeOptional(input.Destination),
		StartDate:       startDate,
		EndDate:         endDate,
		Guests:          input.Guests,
		TotalPrice:      input.TotalPrice,
		Status:          domain.BookingStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		SpecialRequests: normalizeOptional(input.SpecialRequests),
	}
	return s.bookings.Create(ctx, booking)
}

func (s *BookingService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID)
}

// GetOwned answers not-found for bookings that exist but belong to someone
// else, so ownership is never revealed.
func (s *BookingService) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.FindOwned(ctx, ownerID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// Cancel sets the booking to cancelled. Cancelling an already-cancelled
// booking is an accepted no-op.
func (s *BookingService) Cancel(ctx context.Context, ownerID, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.UpdateStatusOwned(ctx, ownerID, id, domain.BookingStatusCancelled)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.BookingWithOwner, error) {
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) AdminUpdate(ctx context.Context, id uuid.UUID, patch domain.BookingPatch) (*domain.Booking, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBookingValidation, *patch.Status)
	}
	if patch.PaymentStatus != nil && !patch.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrBookingValidation, *patch.PaymentStatus)
	}
	if patch.TotalPrice != nil && *patch.TotalPrice < 0 {
		return nil, fmt.Errorf("%w: total price cannot be negative", ErrBookingValidation)
	}
	if patch.Guests != nil && *patch.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", ErrBookingValidation)
	}

	booking, err := s.bookings.Update(ctx, id, patch)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func parseBookingDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

func (s *BookingService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}
