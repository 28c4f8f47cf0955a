//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"decor-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const DefaultServiceName = "Wedding Stage Decoration"

// CreateTestUser inserts a user whose password is "password123".
func CreateTestUser(t *testing.T, db DBLike, email, name, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT ((lower(email))) DO NOTHING`,
		userID, email, builder.PasswordHash, name, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE lower(email) = lower($1)", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func DeactivateUser(t *testing.T, db DBLike, userID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE users SET is_active = false, updated_at = now() WHERE id = $1", userID)
	require.NoError(t, err)
}

func CreateTestService(t *testing.T, db DBLike, name, category string, active bool) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO services (id, name, category, cost_cents, is_active) VALUES ($1, $2, $3, $4, $5)",
		serviceID, name, category, int64(1500000), active)
	require.NoError(t, err)

	return serviceID
}

// ServiceID looks up a seeded service by name.
func ServiceID(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM services WHERE name = $1 LIMIT 1", name).Scan(&id)
	require.NoError(t, err)
	return id
}

type BookingFixture struct {
	CustomerID  uuid.UUID
	ServiceID   uuid.UUID
	DecoratorID *uuid.UUID
	EventDate   time.Time
	Status      string
	Payment     string
}

// CreateTestBooking writes a booking row directly, bypassing the lifecycle rules.
func CreateTestBooking(t *testing.T, db DBLike, f BookingFixture) uuid.UUID {
	t.Helper()

	if f.Status == "" {
		f.Status = "pending"
	}
	if f.Payment == "" {
		f.Payment = "unpaid"
	}
	if f.EventDate.IsZero() {
		f.EventDate = time.Now().UTC().AddDate(0, 0, 14).Truncate(time.Second)
	}

	id := uuid.New()
	code := fmt.Sprintf("BK%d%03d", time.Now().UnixMilli(), (int(id[0])<<8|int(id[1]))%1000)
	_, err := db.Exec(context.Background(), `INSERT INTO bookings
		(id, booking_code, customer_id, service_id, decorator_id, event_date, duration_hours,
		 address, district, sub_district, total_amount_cents, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, 4, 'House 12, Road 5', 'Dhaka', 'Gulshan', 1500050, $7, $8)`,
		id, code, f.CustomerID, f.ServiceID, f.DecoratorID, f.EventDate, f.Status, f.Payment)
	require.NoError(t, err)

	return id
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO services (id, name, category, description, cost_cents, unit, is_active) VALUES
		    (gen_random_uuid(), 'Wedding Stage Decoration', 'wedding', 'Full stage setup with flowers and lighting', 1500000, 'per event', true),
		    (gen_random_uuid(), 'Home Birthday Package', 'home', 'Balloons and banners', 500000, 'per event', true),
		    (gen_random_uuid(), 'Retired Office Theme', 'office', '', 300000, 'per event', false);
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
