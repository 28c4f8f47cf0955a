package response

import (
	"time"

	domreview "decor-booking/internal/domain/review"
	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReviewResponse struct {
	ID            uuid.UUID  `json:"id"`
	BookingID     uuid.UUID  `json:"bookingId"`
	BookingCode   string     `json:"bookingCode,omitempty"`
	ServiceID     uuid.UUID  `json:"serviceId"`
	ServiceName   string     `json:"serviceName,omitempty"`
	CustomerID    uuid.UUID  `json:"customerId"`
	CustomerName  string     `json:"customerName,omitempty"`
	DecoratorID   *uuid.UUID `json:"decoratorId,omitempty"`
	DecoratorName *string    `json:"decoratorName,omitempty"`
	Rating        int        `json:"rating"`
	Comment       string     `json:"comment"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func FromReview(r *domreview.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:          r.ID(),
		BookingID:   r.BookingID(),
		ServiceID:   r.ServiceID(),
		CustomerID:  r.CustomerID(),
		DecoratorID: r.DecoratorID(),
		Rating:      r.Rating().Value(),
		Comment:     r.Comment().String(),
		CreatedAt:   r.CreatedAt(),
	}
}

type ReviewListResponse struct {
	Reviews       []*ReviewResponse `json:"reviews"`
	Count         int               `json:"count"`
	AverageRating float64           `json:"averageRating"`
}

func FromReviewList(l *queries.ReviewList) *ReviewListResponse {
	items := make([]*ReviewResponse, 0, len(l.Items))
	_ = copier.Copy(&items, l.Items)
	return &ReviewListResponse{
		Reviews:       items,
		Count:         l.Count,
		AverageRating: l.AverageRating,
	}
}
