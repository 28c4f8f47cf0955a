package readstore

import (
	"context"

	"decor-booking/internal/infra"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/pkg/pgconv"
	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reviewViewSelect = `SELECT
    r.id, r.booking_id, b.booking_code,
    r.service_id, s.name,
    r.customer_id, c.name,
    r.decorator_id, d.name,
    r.rating, r.comment, r.created_at
FROM reviews r
JOIN bookings b ON b.id = r.booking_id
JOIN services s ON s.id = r.service_id
JOIN users c ON c.id = r.customer_id
LEFT JOIN users d ON d.id = r.decorator_id`

const reviewOrder = ` ORDER BY r.created_at DESC, r.id DESC`

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(db db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: db}
}

func (r *ReviewReadStore) FindByService(ctx context.Context, serviceID uuid.UUID) ([]*queries.ReviewView, error) {
	return r.list(ctx, "failed to get reviews by service", reviewViewSelect+` WHERE r.service_id = $1`+reviewOrder, serviceID)
}

func (r *ReviewReadStore) FindByDecorator(ctx context.Context, decoratorID uuid.UUID) ([]*queries.ReviewView, error) {
	return r.list(ctx, "failed to get reviews by decorator", reviewViewSelect+` WHERE r.decorator_id = $1`+reviewOrder, decoratorID)
}

func (r *ReviewReadStore) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.ReviewView, error) {
	return r.list(ctx, "failed to get reviews by customer", reviewViewSelect+` WHERE r.customer_id = $1`+reviewOrder, customerID)
}

func (r *ReviewReadStore) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id = $1)`, bookingID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check review existence", err)
	}
	return exists, nil
}

func (r *ReviewReadStore) list(ctx context.Context, failMsg, sql string, arg uuid.UUID) ([]*queries.ReviewView, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	defer rows.Close()

	out := []*queries.ReviewView{}
	for rows.Next() {
		v, err := scanReviewView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(failMsg, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	return out, nil
}

func scanReviewView(row pgx.Row) (*queries.ReviewView, error) {
	var (
		v             queries.ReviewView
		decoratorID   pgtype.UUID
		decoratorName pgtype.Text
		rating        int16
	)
	err := row.Scan(
		&v.ID, &v.BookingID, &v.BookingCode,
		&v.ServiceID, &v.ServiceName,
		&v.CustomerID, &v.CustomerName,
		&decoratorID, &decoratorName,
		&rating, &v.Comment, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Rating = int(rating)
	v.DecoratorID = pgconv.UUIDPtrFromPgtype(decoratorID)
	v.DecoratorName = pgconv.StringPtrFromPgtype(decoratorName)
	return &v, nil
}
