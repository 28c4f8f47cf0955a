//go:build unit || e2e

package builder

import (
	"time"

	domreview "decor-booking/internal/domain/review"
	reqdto "decor-booking/internal/handler/dto/request"
	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	BookingID    uuid.UUID
	BookingCode  string
	ServiceID    uuid.UUID
	ServiceName  string
	CustomerID   uuid.UUID
	CustomerName string
	DecoratorID  *uuid.UUID
	Rating       int
	Comment      string
	CreatedAt    time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		BookingID:    uuid.New(),
		BookingCode:  "BK1772355600000042",
		ServiceID:    uuid.New(),
		ServiceName:  "Wedding Stage Decoration",
		CustomerID:   uuid.New(),
		CustomerName: "Test Customer",
		Rating:       5,
		Comment:      "Excellent service!",
		CreatedAt:    time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC),
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(domreview.NewReviewInput{
		BookingID:   r.BookingID,
		ServiceID:   r.ServiceID,
		CustomerID:  r.CustomerID,
		DecoratorID: r.DecoratorID,
		Rating:      r.Rating,
		Comment:     r.Comment,
	}, r.CreatedAt)
}

func (r *ReviewBuilder) BuildView() *queries.ReviewView {
	return &queries.ReviewView{
		ID:           uuid.New(),
		BookingID:    r.BookingID,
		BookingCode:  r.BookingCode,
		ServiceID:    r.ServiceID,
		ServiceName:  r.ServiceName,
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		DecoratorID:  r.DecoratorID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

// Fluent builder methods
func (r *ReviewBuilder) WithBookingID(id uuid.UUID) *ReviewBuilder {
	r.BookingID = id
	return r
}

func (r *ReviewBuilder) WithServiceID(id uuid.UUID) *ReviewBuilder {
	r.ServiceID = id
	return r
}

func (r *ReviewBuilder) WithCustomerID(id uuid.UUID) *ReviewBuilder {
	r.CustomerID = id
	return r
}

func (r *ReviewBuilder) WithDecoratorID(id uuid.UUID) *ReviewBuilder {
	r.DecoratorID = &id
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) AsPoorRating() *ReviewBuilder {
	r.Rating = 1
	r.Comment = "Poor service"
	return r
}
