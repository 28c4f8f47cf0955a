package review

import (
	"time"

	"github.com/google/uuid"
)

type NewReviewInput struct {
	BookingID   uuid.UUID
	ServiceID   uuid.UUID
	CustomerID  uuid.UUID
	DecoratorID *uuid.UUID
	Rating      int
	Comment     string
}

type Review struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	serviceID   uuid.UUID
	customerID  uuid.UUID
	decoratorID *uuid.UUID
	rating      Rating
	comment     Comment
	createdAt   time.Time
}

func NewReview(in NewReviewInput, now time.Time) (*Review, error) {
	rating, err := NewRating(in.Rating)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(in.Comment)
	if err != nil {
		return nil, err
	}

	return &Review{
		id:          uuid.New(),
		bookingID:   in.BookingID,
		serviceID:   in.ServiceID,
		customerID:  in.CustomerID,
		decoratorID: in.DecoratorID,
		rating:      rating,
		comment:     comment,
		createdAt:   now,
	}, nil
}

func (r *Review) ID() uuid.UUID           { return r.id }
func (r *Review) BookingID() uuid.UUID    { return r.bookingID }
func (r *Review) ServiceID() uuid.UUID    { return r.serviceID }
func (r *Review) CustomerID() uuid.UUID   { return r.customerID }
func (r *Review) DecoratorID() *uuid.UUID { return r.decoratorID }
func (r *Review) Rating() Rating          { return r.rating }
func (r *Review) Comment() Comment        { return r.comment }
func (r *Review) CreatedAt() time.Time    { return r.createdAt }
