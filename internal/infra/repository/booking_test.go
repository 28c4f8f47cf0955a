//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/infra"
	"decor-booking/tests/common/builder"
	dbmock "decor-booking/tests/mock/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookingCreate(t *testing.T) {
	b, err := builder.NewBookingBuilder().WithCoordinates(23.7465, 90.3760).BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name     string
		tag      string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", tag: "INSERT 0 1"},
		{name: "booking code collision", tag: "INSERT 0 0", wantKind: infra.KindDuplicateKey},
		{name: "unknown service", mockErr: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(dbmock.MockDBTX)
			db.On("Exec", mock.Anything, insertBookingSQL, mock.MatchedBy(func(args []interface{}) bool {
				return len(args) == 20 &&
					args[0] == b.ID() &&
					args[1] == b.Code().String() &&
					args[10] == pgtype.Float8{Float64: 23.7465, Valid: true} &&
					args[14] == "pending" &&
					args[15] == "unpaid"
			})).Return(pgconn.NewCommandTag(tt.tag), tt.mockErr)

			err := NewBookingRepository(db).Create(context.Background(), b)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestBookingConditionalUpdate(t *testing.T) {
	b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).WithVersion(3).BuildStored()

	tests := []struct {
		name      string
		tag       string
		mockErr   error
		wantOK    bool
		wantError bool
	}{
		{name: "row matched", tag: "UPDATE 1", wantOK: true},
		{name: "stale status or version", tag: "UPDATE 0", wantOK: false},
		{name: "database error", mockErr: assert.AnError, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(dbmock.MockDBTX)
			db.On("Exec", mock.Anything, conditionalUpdateBookingSQL, mock.MatchedBy(func(args []interface{}) bool {
				return len(args) == 8 && args[0] == b.ID() && args[1] == "pending" && args[2] == 2 && args[4] == "confirmed"
			})).Return(pgconn.NewCommandTag(tt.tag), tt.mockErr)

			ok, err := NewBookingRepository(db).ConditionalUpdate(context.Background(), b, booking.StatusPending, 2)

			if tt.wantError {
				assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			db.AssertExpectations(t)
		})
	}
}

func TestBookingFindByID(t *testing.T) {
	id := uuid.New()
	customerID := uuid.New()
	serviceID := uuid.New()
	decoratorID := uuid.New()
	eventDate := time.Date(2026, 12, 20, 10, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC)

	storedRow := dbmock.Row{Values: []any{
		id,
		"BK1796115600000007",
		customerID,
		serviceID,
		pgtype.UUID{Bytes: decoratorID, Valid: true},
		eventDate,
		6,
		"House 12, Road 5",
		"Dhaka",
		"Dhanmondi",
		pgtype.Float8{Float64: 23.7465, Valid: true},
		pgtype.Float8{Float64: 90.376, Valid: true},
		"Marigold theme",
		int64(1500050),
		"confirmed",
		"paid",
		pgtype.Text{},
		2,
		createdAt,
		createdAt.Add(time.Hour),
	}}

	t.Run("success", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("QueryRow", mock.Anything, findBookingSQL, []interface{}{id}).Return(storedRow)

		got, err := NewBookingRepository(db).FindByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, got.ID())
		assert.Equal(t, "BK1796115600000007", got.Code().String())
		assert.Equal(t, customerID, got.CustomerID())
		require.NotNil(t, got.DecoratorID())
		assert.Equal(t, decoratorID, *got.DecoratorID())
		assert.Equal(t, 6, got.Duration().Hours())
		require.NotNil(t, got.Location().Coordinates())
		assert.InDelta(t, 90.376, got.Location().Coordinates().Lng, 1e-9)
		assert.Equal(t, int64(1500050), got.TotalAmount().Cents())
		assert.Equal(t, booking.StatusConfirmed, got.Status())
		assert.Equal(t, booking.PaymentPaid, got.PaymentStatus())
		assert.Nil(t, got.CancellationReason())
		assert.Equal(t, 2, got.Version())
	})

	t.Run("not found", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("QueryRow", mock.Anything, findBookingSQL, []interface{}{id}).Return(dbmock.ErrRow(pgx.ErrNoRows))

		got, err := NewBookingRepository(db).FindByID(context.Background(), id)

		assert.Nil(t, got)
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("database error", func(t *testing.T) {
		db := new(dbmock.MockDBTX)
		db.On("QueryRow", mock.Anything, findBookingSQL, []interface{}{id}).Return(dbmock.ErrRow(assert.AnError))

		_, err := NewBookingRepository(db).FindByID(context.Background(), id)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
	})
}
