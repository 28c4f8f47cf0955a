package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"decor-booking/internal/infra"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

const countUsersByRoleSQL = `SELECT role, count(*) FROM users GROUP BY role`

const countBookingsByStatusSQL = `SELECT status, count(*) FROM bookings GROUP BY status`

const paymentTotalsSQL = `SELECT
    coalesce(sum(total_amount_cents) FILTER (WHERE payment_status = 'paid'), 0)::bigint,
    coalesce(sum(total_amount_cents) FILTER (WHERE payment_status = 'refunded'), 0)::bigint
FROM bookings`

const revenueByMonthSQL = `SELECT
    to_char(date_trunc('month', event_date AT TIME ZONE $1), 'YYYY-MM') AS month,
    sum(total_amount_cents)::bigint,
    count(*)
FROM bookings
WHERE payment_status = 'paid' AND event_date >= $2
GROUP BY month
ORDER BY month`

type AdminReadStore struct {
	db db.DBTX
}

func NewAdminReadStore(db db.DBTX) *AdminReadStore {
	return &AdminReadStore{db: db}
}

func (s *AdminReadStore) ListUsers(ctx context.Context, criteria queries.UserListCriteria) ([]*queries.AuthorizedUserView, int64, error) {
	where, args := userListWhere(criteria)

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count users", err)
	}

	n := len(args)
	listSQL := `SELECT ` + userColumns + ` FROM users` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := s.db.Query(ctx, listSQL, append(args, criteria.Limit, criteria.Offset)...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	items := make([]*queries.AuthorizedUserView, 0, criteria.Limit)
	for rows.Next() {
		v, _, err := scanUser(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan user", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate users", err)
	}
	return items, total, nil
}

func (s *AdminReadStore) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	return s.countBy(ctx, countUsersByRoleSQL, "users by role")
}

func (s *AdminReadStore) CountBookingsByStatus(ctx context.Context) (map[string]int64, error) {
	return s.countBy(ctx, countBookingsByStatusSQL, "bookings by status")
}

func (s *AdminReadStore) PaymentTotals(ctx context.Context) (int64, int64, error) {
	var paid, refunded int64
	if err := s.db.QueryRow(ctx, paymentTotalsSQL).Scan(&paid, &refunded); err != nil {
		return 0, 0, infra.WrapRepoErr("failed to sum payments", err)
	}
	return paid, refunded, nil
}

func (s *AdminReadStore) RevenueByMonth(ctx context.Context, tz string, since time.Time) ([]queries.MonthlyRevenue, error) {
	rows, err := s.db.Query(ctx, revenueByMonthSQL, tz, since)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query monthly revenue", err)
	}
	defer rows.Close()

	var out []queries.MonthlyRevenue
	for rows.Next() {
		var m queries.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.RevenueCents, &m.Bookings); err != nil {
			return nil, infra.WrapRepoErr("failed to scan monthly revenue", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate monthly revenue", err)
	}
	return out, nil
}

func (s *AdminReadStore) countBy(ctx context.Context, sql, what string) (map[string]int64, error) {
	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count "+what, err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (keyCount, error) {
		var kc keyCount
		err := row.Scan(&kc.key, &kc.n)
		return kc, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan "+what, err)
	}
	out := make(map[string]int64, len(counts))
	for _, kc := range counts {
		out[kc.key] = kc.n
	}
	return out, nil
}

type keyCount struct {
	key string
	n   int64
}

func userListWhere(c queries.UserListCriteria) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if c.Role != nil {
		add("role = $%d", *c.Role)
	}
	if c.IsActive != nil {
		add("is_active = $%d", *c.IsActive)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
