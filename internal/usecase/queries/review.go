package queries

import (
	"context"
	"math"

	"decor-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type ReviewList struct {
	Items         []*ReviewView
	Count         int
	AverageRating float64
}

type ReviewReadStore interface {
	FindByService(ctx context.Context, serviceID uuid.UUID) ([]*ReviewView, error)
	FindByDecorator(ctx context.Context, decoratorID uuid.UUID) ([]*ReviewView, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ReviewView, error)
}

type ReviewQueries interface {
	ListByService(ctx context.Context, serviceID uuid.UUID) (*ReviewList, error)
	ListByDecorator(ctx context.Context, decoratorID uuid.UUID) (*ReviewList, error)
	ListMine(ctx context.Context, actor booking.Actor) (*ReviewList, error)
}

type reviewQueriesImpl struct {
	repo ReviewReadStore
}

func NewReviewQueries(repo ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{repo: repo}
}

func (q *reviewQueriesImpl) ListByService(ctx context.Context, serviceID uuid.UUID) (*ReviewList, error) {
	rows, err := q.repo.FindByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return newReviewList(rows), nil
}

func (q *reviewQueriesImpl) ListByDecorator(ctx context.Context, decoratorID uuid.UUID) (*ReviewList, error) {
	rows, err := q.repo.FindByDecorator(ctx, decoratorID)
	if err != nil {
		return nil, err
	}
	return newReviewList(rows), nil
}

func (q *reviewQueriesImpl) ListMine(ctx context.Context, actor booking.Actor) (*ReviewList, error) {
	rows, err := q.repo.FindByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return newReviewList(rows), nil
}

func newReviewList(rows []*ReviewView) *ReviewList {
	if rows == nil {
		rows = []*ReviewView{}
	}
	return &ReviewList{
		Items:         rows,
		Count:         len(rows),
		AverageRating: AverageRating(rows),
	}
}

// AverageRating is rounded to one decimal place; an empty list averages 0.
func AverageRating(rows []*ReviewView) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rows {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(rows))
	return math.Round(avg*10) / 10
}
