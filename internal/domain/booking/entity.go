package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type NewBookingInput struct {
	CustomerID          uuid.UUID
	ServiceID           uuid.UUID
	DecoratorID         *uuid.UUID
	EventDate           time.Time
	DurationHours       int
	Location            Location
	SpecialRequirements string
	TotalAmount         float64
}

type Booking struct {
	id                  uuid.UUID
	code                Code
	customerID          uuid.UUID
	serviceID           uuid.UUID
	decoratorID         *uuid.UUID
	eventDate           time.Time
	duration            Duration
	location            Location
	specialRequirements SpecialRequirements
	totalAmount         Money
	status              Status
	paymentStatus       PaymentStatus
	cancellationReason  *string
	version             int
	createdAt           time.Time
	updatedAt           time.Time
}

func NewBooking(in NewBookingInput, now time.Time) (*Booking, error) {
	if !in.EventDate.After(now) {
		return nil, ErrEventDateNotInFuture
	}
	amount, err := NewMoneyFromAmount(in.TotalAmount)
	if err != nil {
		return nil, err
	}
	duration, err := NewDuration(in.DurationHours)
	if err != nil {
		return nil, err
	}
	if in.Location.Address() == "" {
		return nil, ErrAddressRequired
	}
	reqs, err := NewSpecialRequirements(in.SpecialRequirements)
	if err != nil {
		return nil, err
	}

	var decoratorID *uuid.UUID
	if in.DecoratorID != nil {
		id := *in.DecoratorID
		decoratorID = &id
	}

	return &Booking{
		id:                  uuid.New(),
		code:                GenerateCode(now),
		customerID:          in.CustomerID,
		serviceID:           in.ServiceID,
		decoratorID:         decoratorID,
		eventDate:           in.EventDate,
		duration:            duration,
		location:            in.Location,
		specialRequirements: reqs,
		totalAmount:         amount,
		status:              StatusPending,
		paymentStatus:       PaymentUnpaid,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

type ReconstructInput struct {
	ID                  uuid.UUID
	Code                string
	CustomerID          uuid.UUID
	ServiceID           uuid.UUID
	DecoratorID         *uuid.UUID
	EventDate           time.Time
	DurationHours       int
	Location            Location
	SpecialRequirements string
	TotalAmountCents    int64
	Status              Status
	PaymentStatus       PaymentStatus
	CancellationReason  *string
	Version             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ReconstructBooking rebuilds a persisted booking without re-running creation rules.
func ReconstructBooking(in ReconstructInput) *Booking {
	return &Booking{
		id:                  in.ID,
		code:                Code{value: in.Code},
		customerID:          in.CustomerID,
		serviceID:           in.ServiceID,
		decoratorID:         in.DecoratorID,
		eventDate:           in.EventDate,
		duration:            Duration{hours: in.DurationHours},
		location:            in.Location,
		specialRequirements: SpecialRequirements{text: in.SpecialRequirements},
		totalAmount:         Money{cents: in.TotalAmountCents},
		status:              in.Status,
		paymentStatus:       in.PaymentStatus,
		cancellationReason:  in.CancellationReason,
		version:             in.Version,
		createdAt:           in.CreatedAt,
		updatedAt:           in.UpdatedAt,
	}
}

// RegenerateCode replaces the booking code after a unique-key collision.
func (b *Booking) RegenerateCode(now time.Time) {
	b.code = GenerateCode(now)
}

// ChangeStatus applies a table transition. The reason is kept only for cancellations.
func (b *Booking) ChangeStatus(to Status, reason string, now time.Time) error {
	if !b.status.CanTransitionTo(to) {
		return TransitionError(b.status, to)
	}
	if to == StatusCancelled {
		reason = strings.TrimSpace(reason)
		if len([]rune(reason)) > MaxCancellationReasonLength {
			return ErrReasonTooLong
		}
		b.cancellationReason = &reason
	}
	b.status = to
	b.updatedAt = now
	return nil
}

// AssignDecorator sets the decorator and forces the status to assigned.
func (b *Booking) AssignDecorator(decoratorID uuid.UUID, now time.Time) error {
	if !b.status.AllowsAssignment() {
		return TransitionError(b.status, StatusAssigned)
	}
	id := decoratorID
	b.decoratorID = &id
	b.status = StatusAssigned
	b.updatedAt = now
	return nil
}

// RecordPayment moves the payment status forward. A pending booking that
// becomes paid is confirmed in the same step.
func (b *Booking) RecordPayment(to PaymentStatus, now time.Time) error {
	if !b.paymentStatus.CanTransitionTo(to) {
		return PaymentTransitionError(b.paymentStatus, to)
	}
	b.paymentStatus = to
	if to == PaymentPaid && b.status == StatusPending {
		b.status = StatusConfirmed
	}
	b.updatedAt = now
	return nil
}

// BumpVersion is called once a conditional write has been accepted.
func (b *Booking) BumpVersion() {
	b.version++
}

func (b *Booking) IsAssignedTo(userID uuid.UUID) bool {
	return b.decoratorID != nil && *b.decoratorID == userID
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.customerID == userID
}

func (b *Booking) ID() uuid.UUID                            { return b.id }
func (b *Booking) Code() Code                               { return b.code }
func (b *Booking) CustomerID() uuid.UUID                    { return b.customerID }
func (b *Booking) ServiceID() uuid.UUID                     { return b.serviceID }
func (b *Booking) DecoratorID() *uuid.UUID                  { return b.decoratorID }
func (b *Booking) EventDate() time.Time                     { return b.eventDate }
func (b *Booking) Duration() Duration                       { return b.duration }
func (b *Booking) Location() Location                       { return b.location }
func (b *Booking) SpecialRequirements() SpecialRequirements { return b.specialRequirements }
func (b *Booking) TotalAmount() Money                       { return b.totalAmount }
func (b *Booking) Status() Status                           { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus             { return b.paymentStatus }
func (b *Booking) CancellationReason() *string              { return b.cancellationReason }
func (b *Booking) Version() int                             { return b.version }
func (b *Booking) CreatedAt() time.Time                     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time                     { return b.updatedAt }
