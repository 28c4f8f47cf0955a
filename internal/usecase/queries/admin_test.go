//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/infra"
	"decor-booking/internal/pkg/clock"
	"decor-booking/internal/usecase/queries"
	queriesmock "decor-booking/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	adminActor    = booking.Actor{ID: uuid.New(), Role: user.RoleAdmin}
	customerActor = booking.Actor{ID: uuid.New(), Role: user.RoleCustomer}
	dhaka         = time.FixedZone("BST", 6*3600)
)

func newAdminQueries(ctrl *gomock.Controller, now time.Time) (queries.AdminQueries, *queriesmock.MockAdminReadStore, *queriesmock.MockUserReadStore) {
	store := queriesmock.NewMockAdminReadStore(ctrl)
	users := queriesmock.NewMockUserReadStore(ctrl)
	settings := queries.BookingSettings{Location: dhaka, Currency: "BDT"}
	return queries.NewAdminQueries(store, users, settings, clock.NewMockClock(now)), store, users
}

func TestAdminQueriesListUsers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	items := []*queries.AuthorizedUserView{{ID: uuid.New(), Email: "rahim@example.com", Role: "decorator", IsActive: true}}

	t.Run("filters map to criteria", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, store, _ := newAdminQueries(ctrl, now)
		role, active := "decorator", false
		store.EXPECT().ListUsers(gomock.Any(), queries.UserListCriteria{Role: &role, IsActive: &active, Limit: 10, Offset: 20}).
			Return(items, int64(21), nil)

		got, err := q.ListUsers(ctx, adminActor, queries.UserListFilter{Role: " decorator ", IsActive: &active, Page: 3, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, items, got.Items)
		assert.Equal(t, int64(21), got.TotalCount)
		assert.Equal(t, 3, got.TotalPages)
		assert.Equal(t, 3, got.Page)
		assert.Equal(t, 10, got.Limit)
	})

	t.Run("defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, store, _ := newAdminQueries(ctrl, now)
		store.EXPECT().ListUsers(gomock.Any(), queries.UserListCriteria{Limit: queries.DefaultUserLimit}).Return(nil, int64(0), nil)

		got, err := q.ListUsers(ctx, adminActor, queries.UserListFilter{})

		require.NoError(t, err)
		assert.Equal(t, 1, got.Page)
		assert.Zero(t, got.TotalPages)
	})

	t.Run("invalid role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, _, _ := newAdminQueries(ctrl, now)

		_, err := q.ListUsers(ctx, adminActor, queries.UserListFilter{Role: "owner"})

		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("non-admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, _, _ := newAdminQueries(ctrl, now)

		_, err := q.ListUsers(ctx, customerActor, queries.UserListFilter{})

		assert.ErrorIs(t, err, booking.ErrAdminOnly)
	})
}

func TestAdminQueriesGetUser(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("inactive users are returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, _, users := newAdminQueries(ctrl, time.Now())
		view := &queries.AuthorizedUserView{ID: id, Role: "customer", IsActive: false}
		users.EXPECT().FindByID(gomock.Any(), id).Return(view, nil)

		got, err := q.GetUser(ctx, adminActor, id)

		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, _, users := newAdminQueries(ctrl, time.Now())
		users.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound))

		_, err := q.GetUser(ctx, adminActor, id)

		assert.ErrorIs(t, err, queries.ErrUserNotFound)
	})

	t.Run("non-admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, _, _ := newAdminQueries(ctrl, time.Now())

		_, err := q.GetUser(ctx, customerActor, id)

		assert.ErrorIs(t, err, booking.ErrAdminOnly)
	})
}

func TestAdminQueriesAnalytics(t *testing.T) {
	ctx := context.Background()

	expectCounts := func(store *queriesmock.MockAdminReadStore) {
		store.EXPECT().CountBookingsByStatus(gomock.Any()).Return(map[string]int64{"pending": 4, "completed": 6}, nil)
		store.EXPECT().CountUsersByRole(gomock.Any()).Return(map[string]int64{"customer": 9, "admin": 1}, nil)
		store.EXPECT().PaymentTotals(gomock.Any()).Return(int64(650000), int64(20000), nil)
	}

	t.Run("zero-filled counts and twelve months of revenue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, store, _ := newAdminQueries(ctrl, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
		expectCounts(store)
		since := time.Date(2025, 4, 1, 0, 0, 0, 0, dhaka)
		store.EXPECT().RevenueByMonth(gomock.Any(), "BST", since).Return([]queries.MonthlyRevenue{
			{Month: "2025-12", RevenueCents: 500000, Bookings: 2},
			{Month: "2026-03", RevenueCents: 150000, Bookings: 1},
		}, nil)

		got, err := q.Analytics(ctx, adminActor)
		require.NoError(t, err)

		wantStatus := map[string]int64{
			"pending": 4, "confirmed": 0, "assigned": 0, "in-progress": 0, "completed": 6, "cancelled": 0,
		}
		if diff := cmp.Diff(wantStatus, got.BookingsByStatus); diff != "" {
			t.Errorf("BookingsByStatus mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, map[string]int64{"customer": 9, "decorator": 0, "admin": 1}, got.UsersByRole)
		assert.Equal(t, int64(10), got.TotalBookings)
		assert.Equal(t, int64(650000), got.PaidCents)
		assert.Equal(t, int64(20000), got.RefundedCents)
		assert.Equal(t, "BDT", got.Currency)

		require.Len(t, got.Revenue, queries.RevenueMonths)
		assert.Equal(t, "2025-04", got.Revenue[0].Month)
		assert.Equal(t, queries.MonthlyRevenue{Month: "2025-12", RevenueCents: 500000, Bookings: 2}, got.Revenue[8])
		assert.Equal(t, queries.MonthlyRevenue{Month: "2026-03", RevenueCents: 150000, Bookings: 1}, got.Revenue[11])
		assert.Equal(t, queries.MonthlyRevenue{Month: "2026-01"}, got.Revenue[9])
	})

	t.Run("window follows the booking timezone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		// 20:00 UTC on 31 March is already 1 April in Dhaka.
		q, store, _ := newAdminQueries(ctrl, time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC))
		expectCounts(store)
		store.EXPECT().RevenueByMonth(gomock.Any(), "BST", time.Date(2025, 5, 1, 0, 0, 0, 0, dhaka)).Return(nil, nil)

		got, err := q.Analytics(ctx, adminActor)

		require.NoError(t, err)
		assert.Equal(t, "2026-04", got.Revenue[queries.RevenueMonths-1].Month)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, store, _ := newAdminQueries(ctrl, time.Now())
		store.EXPECT().CountBookingsByStatus(gomock.Any()).Return(nil, assert.AnError)

		_, err := q.Analytics(ctx, adminActor)

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("non-admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q, _, _ := newAdminQueries(ctrl, time.Now())

		_, err := q.Analytics(ctx, booking.Actor{ID: uuid.New(), Role: user.RoleDecorator})

		assert.ErrorIs(t, err, booking.ErrAdminOnly)
	})
}
