//go:build unit

package commands_test

import (
	"context"
	"testing"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/pkg/errs"
	"decor-booking/internal/pkg/password"
	"decor-booking/internal/usecase/commands"
	"decor-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserAdminUpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("success: customer promoted to decorator", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewUserAdminUseCase(f.store, f.clock)

		require.NoError(t, uc.UpdateRole(ctx, f.admin, f.customer.ID, "decorator"))
		assert.Equal(t, "decorator", f.store.User(f.customer.ID).Role)
	})

	t.Run("success: same role is a no-op", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewUserAdminUseCase(f.store, f.clock)

		require.NoError(t, uc.UpdateRole(ctx, f.admin, f.decorator.ID, "decorator"))
		assert.Equal(t, "decorator", f.store.User(f.decorator.ID).Role)
	})

	tests := []struct {
		name   string
		actor  func(f *fixture) booking.Actor
		target func(f *fixture) uuid.UUID
		role   string
		errIs  error
		kind   string
	}{
		{
			name:   "decorator may not change roles",
			actor:  func(f *fixture) booking.Actor { return f.decorator },
			target: func(f *fixture) uuid.UUID { return f.customer.ID },
			role:   "admin",
			errIs:  booking.ErrAdminOnly,
			kind:   "FORBIDDEN",
		},
		{
			name:   "unknown role",
			actor:  func(f *fixture) booking.Actor { return f.admin },
			target: func(f *fixture) uuid.UUID { return f.customer.ID },
			role:   "superuser",
			errIs:  user.ErrInvalidRole,
			kind:   "VALIDATION_ERROR",
		},
		{
			name:   "admin demoting themselves",
			actor:  func(f *fixture) booking.Actor { return f.admin },
			target: func(f *fixture) uuid.UUID { return f.admin.ID },
			role:   "customer",
			errIs:  commands.ErrCannotModifySelf,
			kind:   "VALIDATION_ERROR",
		},
		{
			name:   "unknown user",
			actor:  func(f *fixture) booking.Actor { return f.admin },
			target: func(f *fixture) uuid.UUID { return uuid.New() },
			role:   "decorator",
			errIs:  commands.ErrUserNotFound,
			kind:   "NOT_FOUND",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			uc := commands.NewUserAdminUseCase(f.store, f.clock)

			err := uc.UpdateRole(ctx, tt.actor(f), tt.target(f), tt.role)

			assert.ErrorIs(t, err, tt.errIs)
			assert.Equal(t, tt.kind, errs.Kind(err))
			assert.Equal(t, "customer", f.store.User(f.customer.ID).Role)
			assert.Equal(t, "admin", f.store.User(f.admin.ID).Role)
		})
	}
}

func TestUserAdminToggleActive(t *testing.T) {
	ctx := context.Background()

	t.Run("success: flips back and forth", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewUserAdminUseCase(f.store, f.clock)

		active, err := uc.ToggleActive(ctx, f.admin, f.decorator.ID)
		require.NoError(t, err)
		assert.False(t, active)
		assert.False(t, f.store.User(f.decorator.ID).IsActive)

		active, err = uc.ToggleActive(ctx, f.admin, f.decorator.ID)
		require.NoError(t, err)
		assert.True(t, active)
		assert.True(t, f.store.User(f.decorator.ID).IsActive)
	})

	t.Run("inactive user is reactivated", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewUserAdminUseCase(f.store, f.clock)
		inactive := f.addUser(builder.NewUserBuilder().WithEmail("gone@example.com").AsInactive())

		active, err := uc.ToggleActive(ctx, f.admin, inactive.ID)

		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("error cases leave the account untouched", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewUserAdminUseCase(f.store, f.clock)

		_, err := uc.ToggleActive(ctx, f.customer, f.decorator.ID)
		assert.ErrorIs(t, err, booking.ErrAdminOnly)

		_, err = uc.ToggleActive(ctx, f.admin, f.admin.ID)
		assert.ErrorIs(t, err, commands.ErrCannotModifySelf)

		_, err = uc.ToggleActive(ctx, f.admin, uuid.New())
		assert.ErrorIs(t, err, commands.ErrUserNotFound)

		assert.True(t, f.store.User(f.decorator.ID).IsActive)
		assert.True(t, f.store.User(f.admin.ID).IsActive)
	})
}

func TestUserAdminEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	req := commands.RegisterRequest{Email: "Owner@Example.com", Password: testPassword, Name: "Owner"}

	t.Run("creates the admin once", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewUserAdminUseCase(f.store, f.clock)

		id, created, err := uc.EnsureAdmin(ctx, req)
		require.NoError(t, err)
		assert.True(t, created)

		snap := f.store.User(id)
		require.NotNil(t, snap)
		assert.Equal(t, "admin", snap.Role)
		assert.Equal(t, "owner@example.com", snap.Email)
		assert.True(t, snap.IsActive)
		assert.NoError(t, password.ComparePassword(snap.PasswordHash, testPassword))

		again, created, err := uc.EnsureAdmin(ctx, req)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, id, again)
	})

	t.Run("existing non-admin account is left alone", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewUserAdminUseCase(f.store, f.clock)

		id, created, err := uc.EnsureAdmin(ctx, commands.RegisterRequest{Email: "customer@example.com", Password: testPassword, Name: "X"})

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, f.customer.ID, id)
		assert.Equal(t, "customer", f.store.User(id).Role)
	})

	t.Run("invalid registration", func(t *testing.T) {
		f := newFixture()
		uc := commands.NewUserAdminUseCase(f.store, f.clock)

		_, _, err := uc.EnsureAdmin(ctx, commands.RegisterRequest{Email: "nope", Password: testPassword, Name: "X"})

		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})
}
