package commands

import (
	"context"
	"log/slog"

	"decor-booking/internal/domain/auth"
	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/infra"
	"decor-booking/internal/pkg/clock"
	"decor-booking/internal/pkg/errs"
	"decor-booking/internal/pkg/password"
	"decor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound     = errs.NotFound("User not found")
	ErrCannotModifySelf = errs.Validation("Admins cannot change their own role or status")
)

type UserAdminCommands interface {
	UpdateRole(ctx context.Context, actor booking.Actor, userID uuid.UUID, role string) error
	// ToggleActive flips the account state and returns the new value.
	ToggleActive(ctx context.Context, actor booking.Actor, userID uuid.UUID) (bool, error)
	// EnsureAdmin creates the admin account when no user holds the email yet.
	EnsureAdmin(ctx context.Context, req RegisterRequest) (uuid.UUID, bool, error)
}

type userAdminUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewUserAdminUseCase(uow shared.UnitOfWork, clk clock.Clock) UserAdminCommands {
	return &userAdminUseCaseImpl{uow: uow, clock: clk}
}

func (uc *userAdminUseCaseImpl) UpdateRole(ctx context.Context, actor booking.Actor, userID uuid.UUID, role string) error {
	if err := booking.AuthorizeAdmin(actor); err != nil {
		return err
	}
	to, err := user.NewRole(role)
	if err != nil {
		return err
	}
	if actor.ID == userID {
		return ErrCannotModifySelf
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := loadUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if snap.Role == to.String() {
			return nil
		}
		return mapUserNotFound(tx.Users().UpdateRole(ctx, userID, to))
	})
	if err != nil {
		return err
	}
	slog.Info("user role updated", "user_id", userID, "role", to.String(), "admin_id", actor.ID)
	return nil
}

func (uc *userAdminUseCaseImpl) ToggleActive(ctx context.Context, actor booking.Actor, userID uuid.UUID) (bool, error) {
	if err := booking.AuthorizeAdmin(actor); err != nil {
		return false, err
	}
	if actor.ID == userID {
		return false, ErrCannotModifySelf
	}

	var active bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := loadUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		active = !snap.IsActive
		return mapUserNotFound(tx.Users().SetActive(ctx, userID, active))
	})
	if err != nil {
		return false, err
	}
	slog.Info("user active state changed", "user_id", userID, "is_active", active, "admin_id", actor.ID)
	return active, nil
}

func (uc *userAdminUseCaseImpl) EnsureAdmin(ctx context.Context, req RegisterRequest) (uuid.UUID, bool, error) {
	reg, err := auth.NewRegistration(req.Email, req.Password, req.Name)
	if err != nil {
		return uuid.Nil, false, err
	}
	hash, err := password.HashPassword(reg.Password().Value())
	if err != nil {
		return uuid.Nil, false, errs.Wrap(err, "failed to hash password")
	}

	var (
		id      uuid.UUID
		created bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Reads().UserByEmail(ctx, reg.Email().Value())
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		if existing != nil {
			id = existing.ID
			if existing.Role != user.RoleAdmin.String() {
				slog.Warn("admin email belongs to a non-admin account", "user_id", existing.ID, "role", existing.Role)
			}
			return nil
		}

		u := user.NewUser(reg.Email(), reg.Name(), hash, user.RoleAdmin, uc.clock.Now())
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		id, created = u.ID(), true
		return nil
	})
	if err != nil {
		return uuid.Nil, false, err
	}
	return id, created, nil
}

func loadUser(ctx context.Context, tx shared.Tx, userID uuid.UUID) (*shared.UserSnapshot, error) {
	snap, err := tx.Reads().UserByID(ctx, userID)
	if err != nil {
		return nil, mapUserNotFound(err)
	}
	return snap, nil
}

func mapUserNotFound(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return ErrUserNotFound
	}
	return err
}
