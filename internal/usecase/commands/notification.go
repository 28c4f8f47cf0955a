package commands

import (
	"context"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/pkg/errs"
	"decor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errs.NotFound("Notification not found")

type NotificationCommands interface {
	MarkRead(ctx context.Context, actor booking.Actor, id uuid.UUID) error
	MarkAllRead(ctx context.Context, actor booking.Actor) (int64, error)
	Delete(ctx context.Context, actor booking.Actor, id uuid.UUID) error
}

type notificationUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationUseCase(uow shared.UnitOfWork) NotificationCommands {
	return &notificationUseCaseImpl{uow: uow}
}

// Notifications owned by other users are reported as not found.
func (uc *notificationUseCaseImpl) MarkRead(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Notifications().MarkRead(ctx, id, actor.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotificationNotFound
		}
		return nil
	})
}

func (uc *notificationUseCaseImpl) MarkAllRead(ctx context.Context, actor booking.Actor) (int64, error) {
	var n int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.Notifications().MarkAllRead(ctx, actor.ID)
		return err
	})
	return n, err
}

func (uc *notificationUseCaseImpl) Delete(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Notifications().Delete(ctx, id, actor.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotificationNotFound
		}
		return nil
	})
}
