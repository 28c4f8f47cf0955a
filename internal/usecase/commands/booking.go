package commands

import (
	"context"
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/notification"
	"decor-booking/internal/infra"
	"decor-booking/internal/pkg/clock"
	"decor-booking/internal/pkg/errs"
	"decor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxCodeAttempts = 3

var (
	ErrBookingNotFound        = errs.NotFound("Booking not found")
	ErrServiceNotFound        = errs.NotFound("Service not found")
	ErrInvalidDecorator       = errs.Validation("Invalid decorator ID")
	ErrConcurrentModification = errs.Conflict("booking was modified by another request, please retry")
	ErrCodeGeneration         = errs.New("failed to generate a unique booking code")
)

type CreateBookingRequest struct {
	ServiceID           uuid.UUID
	DecoratorID         *uuid.UUID
	EventDate           time.Time
	DurationHours       int
	Address             string
	District            string
	SubDistrict         string
	Coordinates         *booking.Coordinates
	SpecialRequirements string
	TotalAmount         float64
}

type UpdateStatusRequest struct {
	Status             string
	CancellationReason string
}

type BookingCommands interface {
	Create(ctx context.Context, actor booking.Actor, req CreateBookingRequest) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, actor booking.Actor, req UpdateStatusRequest) (*booking.Booking, error)
	AssignDecorator(ctx context.Context, bookingID, decoratorID uuid.UUID, actor booking.Actor) (*booking.Booking, error)
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	effects *SideEffects
	clock   clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, effects *SideEffects, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, effects: effects, clock: clk}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, actor booking.Actor, req CreateBookingRequest) (*booking.Booking, error) {
	loc, err := booking.NewLocation(req.Address, req.District, req.SubDistrict, req.Coordinates)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	b, err := booking.NewBooking(booking.NewBookingInput{
		CustomerID:          actor.ID,
		ServiceID:           req.ServiceID,
		DecoratorID:         req.DecoratorID,
		EventDate:           req.EventDate,
		DurationHours:       req.DurationHours,
		Location:            loc,
		SpecialRequirements: req.SpecialRequirements,
		TotalAmount:         req.TotalAmount,
	}, now)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, derr := tx.Reads().ServiceByID(ctx, req.ServiceID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrServiceNotFound
			}
			return derr
		}
		if !svc.IsActive {
			return ErrServiceNotFound
		}

		if req.DecoratorID != nil {
			if derr := ensureDecorator(ctx, tx.Reads(), *req.DecoratorID); derr != nil {
				return derr
			}
		}

		for attempt := 1; ; attempt++ {
			derr = tx.Bookings().Create(ctx, b)
			if derr == nil {
				return nil
			}
			if !infra.IsKind(derr, infra.KindDuplicateKey) {
				return derr
			}
			if attempt == maxCodeAttempts {
				return errs.Mark(derr, ErrCodeGeneration)
			}
			b.RegenerateCode(uc.clock.Now())
		}
	})
	if err != nil {
		return nil, err
	}

	uc.effects.Notify(ctx, b.CustomerID(), b.ID(), notification.BookingCreated(b.Code().String()))
	uc.effects.Publish(ctx, shared.EventBookingCreated, b, "")
	return b, nil
}

func (uc *bookingUseCaseImpl) UpdateStatus(ctx context.Context, bookingID uuid.UUID, actor booking.Actor, req UpdateStatusRequest) (*booking.Booking, error) {
	to, err := booking.ParseStatus(req.Status)
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
		if derr = booking.AuthorizeStatusChange(actor, b, to); derr != nil {
			return derr
		}

		from = b.Status()
		version := b.Version()
		if derr = b.ChangeStatus(to, req.CancellationReason, uc.clock.Now()); derr != nil {
			return derr
		}

		ok, derr := tx.Bookings().ConditionalUpdate(ctx, b, from, version)
		if derr != nil {
			return derr
		}
		if !ok {
			uc.effects.Conflict("update_status")
			return resolveLostRace(ctx, tx, bookingID, func(current *booking.Booking) error {
				if !current.Status().CanTransitionTo(to) {
					return booking.TransitionError(current.Status(), to)
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

	uc.effects.Transition(from, to)
	uc.effects.Notify(ctx, updated.CustomerID(), updated.ID(), notification.BookingStatusUpdated(to.String()))
	uc.effects.Publish(ctx, shared.EventBookingStatusChanged, updated, from)
	return updated, nil
}

func (uc *bookingUseCaseImpl) AssignDecorator(ctx context.Context, bookingID, decoratorID uuid.UUID, actor booking.Actor) (*booking.Booking, error) {
	if err := booking.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}

	var (
		updated *booking.Booking
		from    booking.Status
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := ensureDecorator(ctx, tx.Reads(), decoratorID); derr != nil {
			return derr
		}

		b, derr := loadBooking(ctx, tx, bookingID)
		if derr != nil {
			return derr
		}

		from = b.Status()
		version := b.Version()
		if derr = b.AssignDecorator(decoratorID, uc.clock.Now()); derr != nil {
			return derr
		}

		ok, derr := tx.Bookings().ConditionalUpdate(ctx, b, from, version)
		if derr != nil {
			return derr
		}
		if !ok {
			uc.effects.Conflict("assign_decorator")
			return resolveLostRace(ctx, tx, bookingID, func(current *booking.Booking) error {
				if !current.Status().AllowsAssignment() {
					return booking.TransitionError(current.Status(), booking.StatusAssigned)
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

	uc.effects.Transition(from, booking.StatusAssigned)
	uc.effects.Notify(ctx, updated.CustomerID(), updated.ID(), notification.DecoratorAssignedToCustomer())
	uc.effects.Notify(ctx, decoratorID, updated.ID(), notification.NewAssignmentForDecorator())
	uc.effects.Publish(ctx, shared.EventBookingDecoratorAssigned, updated, from)
	return updated, nil
}

func loadBooking(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func ensureDecorator(ctx context.Context, reads shared.CommandReads, id uuid.UUID) error {
	u, err := reads.UserByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrInvalidDecorator
		}
		return err
	}
	if !u.IsActiveDecorator() {
		return ErrInvalidDecorator
	}
	return nil
}

// resolveLostRace re-reads the booking after a failed conditional write. If the
// request is no longer legal from the committed state, that error wins;
// otherwise the caller gets a retryable conflict.
func resolveLostRace(ctx context.Context, tx shared.Tx, id uuid.UUID, stillLegal func(*booking.Booking) error) error {
	current, err := loadBooking(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := stillLegal(current); err != nil {
		return err
	}
	return ErrConcurrentModification
}
