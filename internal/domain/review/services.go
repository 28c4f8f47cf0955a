package review

import (
	"decor-booking/internal/domain/booking"
	"decor-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotCompleted = errs.Validation("Can only review completed bookings")
	ErrReviewAlreadyExists = errs.Validation("Review already exists")
	ErrNotBookingCustomer  = errs.Forbidden("Not authorized to review this booking")
)

type EligibilityInput struct {
	ActorID       uuid.UUID
	CustomerID    uuid.UUID
	BookingStatus booking.Status
	AlreadyExists bool
}

// CheckEligibility runs ownership first so other users learn nothing about the booking state.
func CheckEligibility(in EligibilityInput) error {
	if in.ActorID != in.CustomerID {
		return ErrNotBookingCustomer
	}
	if in.BookingStatus != booking.StatusCompleted {
		return ErrBookingNotCompleted
	}
	if in.AlreadyExists {
		return ErrReviewAlreadyExists
	}
	return nil
}
