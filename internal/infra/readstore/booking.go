package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"decor-booking/internal/infra"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/pkg/pgconv"
	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewSelect = `SELECT
    b.id, b.booking_code,
    b.customer_id, c.name, c.email,
    b.service_id, s.name, s.category,
    b.decorator_id, d.name, d.email,
    b.event_date, b.duration_hours,
    b.address, b.district, b.sub_district, b.latitude, b.longitude,
    b.special_requirements, b.total_amount_cents,
    b.status, b.payment_status, b.cancellation_reason, b.version,
    b.created_at, b.updated_at
FROM bookings b
JOIN users c ON c.id = b.customer_id
JOIN services s ON s.id = b.service_id
LEFT JOIN users d ON d.id = b.decorator_id`

const hasBookingInRangeSQL = `SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE decorator_id = $1
      AND event_date >= $2 AND event_date < $3
      AND status = ANY($4)
)`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	v, err := scanBookingView(s.db.QueryRow(ctx, bookingViewSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking view", err)
	}
	return v, nil
}

func (s *BookingReadStore) List(ctx context.Context, criteria queries.BookingListCriteria) ([]*queries.BookingView, int64, error) {
	where, args := bookingListWhere(criteria)

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM bookings b`+where, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	n := len(args)
	listSQL := bookingViewSelect + where +
		fmt.Sprintf(` ORDER BY b.created_at DESC, b.id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := s.db.Query(ctx, listSQL, append(args, criteria.Limit, criteria.Offset)...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingView, 0, criteria.Limit)
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking view", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return items, total, nil
}

func (s *BookingReadStore) HasBookingInRange(ctx context.Context, decoratorID uuid.UUID, from, to time.Time, statuses []string) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, hasBookingInRangeSQL, decoratorID, from, to, statuses).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check decorator availability", err)
	}
	return exists, nil
}

func bookingListWhere(c queries.BookingListCriteria) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if c.Status != nil {
		add("b.status = $%d", *c.Status)
	}
	if c.CustomerID != nil {
		add("b.customer_id = $%d", *c.CustomerID)
	}
	if c.DecoratorID != nil {
		add("b.decorator_id = $%d", *c.DecoratorID)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v             queries.BookingView
		decoratorID   pgtype.UUID
		decoratorName pgtype.Text
		decoratorMail pgtype.Text
		lat, lng      pgtype.Float8
		reason        pgtype.Text
	)
	err := row.Scan(
		&v.ID, &v.BookingCode,
		&v.CustomerID, &v.Customer.Name, &v.Customer.Email,
		&v.ServiceID, &v.ServiceName, &v.ServiceCategory,
		&decoratorID, &decoratorName, &decoratorMail,
		&v.EventDate, &v.DurationHours,
		&v.Address, &v.District, &v.SubDistrict, &lat, &lng,
		&v.SpecialRequirements, &v.TotalAmountCents,
		&v.Status, &v.PaymentStatus, &reason, &v.Version,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Customer.ID = v.CustomerID
	v.DecoratorID = pgconv.UUIDPtrFromPgtype(decoratorID)
	if v.DecoratorID != nil {
		v.Decorator = &queries.PartySummary{
			ID:    *v.DecoratorID,
			Name:  decoratorName.String,
			Email: decoratorMail.String,
		}
	}
	v.Latitude = pgconv.Float64PtrFromPgtype(lat)
	v.Longitude = pgconv.Float64PtrFromPgtype(lng)
	v.CancellationReason = pgconv.StringPtrFromPgtype(reason)
	return &v, nil
}
