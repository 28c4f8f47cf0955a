//go:build unit

package readstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"decor-booking/internal/infra"
	"decor-booking/internal/usecase/queries"
	dbmock "decor-booking/tests/mock/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sqlContains(parts ...string) interface{} {
	return mock.MatchedBy(func(sql string) bool {
		for _, p := range parts {
			if !strings.Contains(sql, p) {
				return false
			}
		}
		return true
	})
}

func TestAdminListUsers(t *testing.T) {
	role, active := "decorator", true
	first, second := uuid.New(), uuid.New()

	t.Run("success: filters and pages", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("QueryRow", mock.Anything, sqlContains("count(*)", "WHERE role = $1 AND is_active = $2"), []interface{}{role, active}).
			Return(dbmock.Row{Values: []any{int64(7)}})
		rows := dbmock.NewRows(userRow(first, pgtype.Timestamptz{}), userRow(second, pgtype.Timestamptz{}))
		db.On("Query", mock.Anything, sqlContains("WHERE role = $1 AND is_active = $2", "LIMIT $3 OFFSET $4"), []interface{}{role, active, 2, 4}).
			Return(rows, nil)

		items, total, err := NewAdminReadStore(db).ListUsers(context.Background(), queries.UserListCriteria{
			Role: &role, IsActive: &active, Limit: 2, Offset: 4,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		require.Len(t, items, 2)
		assert.Equal(t, first, items[0].ID)
		assert.Equal(t, second, items[1].ID)
		assert.True(t, rows.Closed())
		db.AssertExpectations(t)
	})

	t.Run("success: no filters", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("QueryRow", mock.Anything, "SELECT count(*) FROM users", mock.Anything).Return(dbmock.Row{Values: []any{int64(0)}})
		db.On("Query", mock.Anything, sqlContains("FROM users ORDER BY", "LIMIT $1 OFFSET $2"), []interface{}{20, 0}).
			Return(dbmock.NewRows(), nil)

		items, total, err := NewAdminReadStore(db).ListUsers(context.Background(), queries.UserListCriteria{Limit: 20})

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, items)
	})

	t.Run("count failure", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(dbmock.ErrRow(assert.AnError))

		_, _, err := NewAdminReadStore(db).ListUsers(context.Background(), queries.UserListCriteria{Limit: 20})

		assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
		db.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("row iteration failure", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(dbmock.Row{Values: []any{int64(1)}})
		rows := dbmock.NewRows()
		rows.IterErr = assert.AnError
		db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

		_, _, err := NewAdminReadStore(db).ListUsers(context.Background(), queries.UserListCriteria{Limit: 20})

		assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
	})
}

func TestAdminCountBy(t *testing.T) {
	t.Run("bookings by status", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("Query", mock.Anything, countBookingsByStatusSQL, mock.Anything).Return(dbmock.NewRows(
			dbmock.Row{Values: []any{"pending", int64(3)}},
			dbmock.Row{Values: []any{"completed", int64(5)}},
		), nil)

		got, err := NewAdminReadStore(db).CountBookingsByStatus(context.Background())

		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"pending": 3, "completed": 5}, got)
	})

	t.Run("users by role", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("Query", mock.Anything, countUsersByRoleSQL, mock.Anything).Return(dbmock.NewRows(
			dbmock.Row{Values: []any{"admin", int64(1)}},
		), nil)

		got, err := NewAdminReadStore(db).CountUsersByRole(context.Background())

		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"admin": 1}, got)
	})

	t.Run("query failure", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

		got, err := NewAdminReadStore(db).CountBookingsByStatus(context.Background())

		assert.Nil(t, got)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
	})
}

func TestAdminPaymentTotals(t *testing.T) {
	db := new(dbmock.MockDBTX)
	db.On("QueryRow", mock.Anything, paymentTotalsSQL, mock.Anything).Return(dbmock.Row{Values: []any{int64(1250000), int64(30000)}})

	paid, refunded, err := NewAdminReadStore(db).PaymentTotals(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1250000), paid)
	assert.Equal(t, int64(30000), refunded)
}

func TestAdminRevenueByMonth(t *testing.T) {
	since := time.Date(2025, 11, 1, 0, 0, 0, 0, time.FixedZone("BST", 6*3600))

	db := new(dbmock.MockDBTX)
	db.On("Query", mock.Anything, revenueByMonthSQL, []interface{}{"Asia/Dhaka", since}).Return(dbmock.NewRows(
		dbmock.Row{Values: []any{"2026-01", int64(500000), int64(2)}},
		dbmock.Row{Values: []any{"2026-03", int64(150000), int64(1)}},
	), nil)

	got, err := NewAdminReadStore(db).RevenueByMonth(context.Background(), "Asia/Dhaka", since)

	require.NoError(t, err)
	assert.Equal(t, []queries.MonthlyRevenue{
		{Month: "2026-01", RevenueCents: 500000, Bookings: 2},
		{Month: "2026-03", RevenueCents: 150000, Bookings: 1},
	}, got)
}
