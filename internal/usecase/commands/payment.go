package commands

import (
	"context"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/notification"
	"decor-booking/internal/pkg/clock"
	"decor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentCommands interface {
	RecordPayment(ctx context.Context, bookingID uuid.UUID, actor booking.Actor, paymentStatus string) (*booking.Booking, error)
}

type paymentUseCaseImpl struct {
	uow     shared.UnitOfWork
	effects *SideEffects
	clock   clock.Clock
}

func NewPaymentUseCase(uow shared.UnitOfWork, effects *SideEffects, clk clock.Clock) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, effects: effects, clock: clk}
}

func (uc *paymentUseCaseImpl) RecordPayment(ctx context.Context, bookingID uuid.UUID, actor booking.Actor, paymentStatus string) (*booking.Booking, error) {
	if err := booking.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}
	to, err := booking.ParsePaymentStatus(paymentStatus)
	if err != nil {
		return nil, err
	}

	var (
		updated *booking.Booking
		from    booking.Status
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := loadBooking(ctx, tx, bookingID)
		if derr != nil {
			return derr
		}

		from = b.Status()
		version := b.Version()
		if derr = b.RecordPayment(to, uc.clock.Now()); derr != nil {
			return derr
		}

		ok, derr := tx.Bookings().ConditionalUpdate(ctx, b, from, version)
		if derr != nil {
			return derr
		}
		if !ok {
			uc.effects.Conflict("record_payment")
			return resolveLostRace(ctx, tx, bookingID, func(current *booking.Booking) error {
				if !current.PaymentStatus().CanTransitionTo(to) {
					return booking.PaymentTransitionError(current.PaymentStatus(), to)
				}
				return nil
			})
		}
		b.BumpVersion()
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.effects.Transition(from, updated.Status())
	code := updated.Code().String()
	switch to {
	case booking.PaymentPaid:
		uc.effects.Notify(ctx, updated.CustomerID(), updated.ID(), notification.PaymentReceived(code))
	case booking.PaymentRefunded:
		uc.effects.Notify(ctx, updated.CustomerID(), updated.ID(), notification.PaymentRefunded(code))
	}
	uc.effects.Publish(ctx, shared.EventBookingPaymentUpdated, updated, from)
	return updated, nil
}
