package repository

import (
	"context"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/infra"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, booking_code, customer_id, service_id, decorator_id, event_date, duration_hours,
	address, district, sub_district, latitude, longitude, special_requirements, total_amount_cents,
	status, payment_status, cancellation_reason, version, created_at, updated_at`

const insertBookingSQL = `INSERT INTO bookings (` + bookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
ON CONFLICT (booking_code) DO NOTHING`

const findBookingSQL = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

const conditionalUpdateBookingSQL = `UPDATE bookings
SET decorator_id = $4,
    status = $5,
    payment_status = $6,
    cancellation_reason = $7,
    updated_at = $8,
    version = version + 1
WHERE id = $1 AND status = $2 AND version = $3`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create reports a DUPLICATE_KEY error on a booking code collision without
// aborting the surrounding transaction.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	loc := b.Location()
	var lat, lng *float64
	if c := loc.Coordinates(); c != nil {
		lat, lng = &c.Lat, &c.Lng
	}

	tag, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.Code().String(),
		b.CustomerID(),
		b.ServiceID(),
		pgconv.UUIDPtrToPgtype(b.DecoratorID()),
		b.EventDate(),
		b.Duration().Hours(),
		loc.Address(),
		loc.District(),
		loc.SubDistrict(),
		pgconv.Float64PtrToPgtype(lat),
		pgconv.Float64PtrToPgtype(lng),
		b.SpecialRequirements().String(),
		b.TotalAmount().Cents(),
		b.Status().String(),
		b.PaymentStatus().String(),
		pgconv.StringPtrToPgtype(b.CancellationReason()),
		b.Version(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking code already exists", nil, infra.KindDuplicateKey)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, findBookingSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func (r *BookingRepository) ConditionalUpdate(ctx context.Context, b *booking.Booking, expectedStatus booking.Status, expectedVersion int) (bool, error) {
	tag, err := r.db.Exec(ctx, conditionalUpdateBookingSQL,
		b.ID(),
		expectedStatus.String(),
		expectedVersion,
		pgconv.UUIDPtrToPgtype(b.DecoratorID()),
		b.Status().String(),
		b.PaymentStatus().String(),
		pgconv.StringPtrToPgtype(b.CancellationReason()),
		b.UpdatedAt(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		in          booking.ReconstructInput
		decoratorID pgtype.UUID
		address     string
		district    string
		subDistrict string
		lat, lng    pgtype.Float8
		reason      pgtype.Text
		status      string
		payment     string
	)
	err := row.Scan(
		&in.ID,
		&in.Code,
		&in.CustomerID,
		&in.ServiceID,
		&decoratorID,
		&in.EventDate,
		&in.DurationHours,
		&address,
		&district,
		&subDistrict,
		&lat,
		&lng,
		&in.SpecialRequirements,
		&in.TotalAmountCents,
		&status,
		&payment,
		&reason,
		&in.Version,
		&in.CreatedAt,
		&in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	var coords *booking.Coordinates
	if lat.Valid && lng.Valid {
		coords = &booking.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}
	loc, err := booking.NewLocation(address, district, subDistrict, coords)
	if err != nil {
		return nil, err
	}

	in.DecoratorID = pgconv.UUIDPtrFromPgtype(decoratorID)
	in.Location = loc
	in.Status = booking.Status(status)
	in.PaymentStatus = booking.PaymentStatus(payment)
	in.CancellationReason = pgconv.StringPtrFromPgtype(reason)
	return booking.ReconstructBooking(in), nil
}
