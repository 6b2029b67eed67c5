package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ininsico/voyago-api/internal/domain"
)

const bookingColumns = "id, user_id, booking_type, trip_type, item_name, destination, start_date, end_date, guests, total_price, status, payment_status, special_requests, created_at, updated_at"

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	const query = `
        INSERT INTO bookings (user_id, booking_type, trip_type, item_name, destination, start_date, end_date, guests, total_price, status, payment_status, special_requests)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING ` + bookingColumns

	row := r.db.QueryRowxContext(ctx, query,
		booking.UserID, booking.Type, booking.TripType, booking.ItemName,
		booking.Destination, booking.StartDate, booking.EndDate, booking.Guests,
		booking.TotalPrice, booking.Status, booking.PaymentStatus, booking.SpecialRequests)
	var stored domain.Booking
	if err := row.StructScan(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	bookings := []domain.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, ownerID); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND user_id = $2`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, id, ownerID); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) UpdateStatusOwned(ctx context.Context, ownerID, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	const query = `
        UPDATE bookings
        SET status = $3, updated_at = NOW()
        WHERE id = $1 AND user_id = $2
        RETURNING ` + bookingColumns

	row := r.db.QueryRowxContext(ctx, query, id, ownerID, status)
	var booking domain.Booking
	if err := row.StructScan(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) CountActiveByType(ctx context.Context, ownerID uuid.UUID, bookingType domain.BookingType) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM bookings
        WHERE user_id = $1 AND booking_type = $2 AND status IN ('pending', 'confirmed')
    `
	var count int64
	if err := r.db.GetContext(ctx, &count, query, ownerID, bookingType); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.BookingWithOwner, error) {
	const query = `
        SELECT b.id, b.user_id, b.booking_type, b.trip_type, b.item_name, b.destination,
               b.start_date, b.end_date, b.guests, b.total_price, b.status, b.payment_status,
               b.special_requests, b.created_at, b.updated_at,
               u.first_name AS owner_first_name, u.last_name AS owner_last_name, u.email AS owner_email
        FROM bookings b
        JOIN users u ON u.id = b.user_id
        ORDER BY b.created_at DESC
    `
	bookings := []domain.BookingWithOwner{}
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, id uuid.UUID, patch domain.BookingPatch) (*domain.Booking, error) {
	const query = `
        UPDATE bookings
        SET status = COALESCE($2, status),
            payment_status = COALESCE($3, payment_status),
            total_price = COALESCE($4, total_price),
            start_date = COALESCE($5, start_date),
            end_date = COALESCE($6, end_date),
            guests = COALESCE($7, guests),
            special_requests = COALESCE($8, special_requests),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + bookingColumns

	row := r.db.QueryRowxContext(ctx, query, id,
		patch.Status, patch.PaymentStatus, patch.TotalPrice,
		patch.StartDate, patch.EndDate, patch.Guests, patch.SpecialRequests)
	var booking domain.Booking
	if err := row.StructScan(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM bookings WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNoRows
	}
	return nil
}
