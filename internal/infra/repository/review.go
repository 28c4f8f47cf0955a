package repository

import (
	"context"

	"decor-booking/internal/domain/review"
	"decor-booking/internal/infra"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/pkg/pgconv"
)

const insertReviewSQL = `INSERT INTO reviews (id, booking_id, service_id, customer_id, decorator_id, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type ReviewRepository struct {
	db db.DBTX
}

func NewReviewRepository(db db.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create surfaces the unique booking_id constraint as DUPLICATE_KEY.
func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	_, err := r.db.Exec(ctx, insertReviewSQL,
		rev.ID(),
		rev.BookingID(),
		rev.ServiceID(),
		rev.CustomerID(),
		pgconv.UUIDPtrToPgtype(rev.DecoratorID()),
		rev.Rating().Value(),
		rev.Comment().String(),
		rev.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create review", err)
	}
	return nil
}
