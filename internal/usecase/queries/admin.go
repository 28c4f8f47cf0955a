package queries

import (
	"context"
	"strings"
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/infra"
	"decor-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	DefaultUserLimit = 20
	// Months of revenue history returned by Analytics, current month included.
	RevenueMonths = 12
)

type UserListFilter struct {
	Role     string
	IsActive *bool
	Page     int
	Limit    int
}

type UserListCriteria struct {
	Role     *string
	IsActive *bool
	Limit    int
	Offset   int
}

type UserPage struct {
	Items      []*AuthorizedUserView
	TotalCount int64
	TotalPages int
	Page       int
	Limit      int
}

type MonthlyRevenue struct {
	Month        string // YYYY-MM in the booking timezone
	RevenueCents int64
	Bookings     int64
}

type Analytics struct {
	TotalBookings    int64
	BookingsByStatus map[string]int64
	UsersByRole      map[string]int64
	PaidCents        int64
	RefundedCents    int64
	Revenue          []MonthlyRevenue
	Currency         string
}

type AdminReadStore interface {
	ListUsers(ctx context.Context, criteria UserListCriteria) ([]*AuthorizedUserView, int64, error)
	CountUsersByRole(ctx context.Context) (map[string]int64, error)
	CountBookingsByStatus(ctx context.Context) (map[string]int64, error)
	PaymentTotals(ctx context.Context) (paidCents, refundedCents int64, err error)
	// RevenueByMonth sums paid bookings by event month in tz, oldest first.
	RevenueByMonth(ctx context.Context, tz string, since time.Time) ([]MonthlyRevenue, error)
}

type AdminQueries interface {
	ListUsers(ctx context.Context, actor booking.Actor, filter UserListFilter) (*UserPage, error)
	GetUser(ctx context.Context, actor booking.Actor, id uuid.UUID) (*AuthorizedUserView, error)
	Analytics(ctx context.Context, actor booking.Actor) (*Analytics, error)
}

type adminQueriesImpl struct {
	store    AdminReadStore
	users    UserReadStore
	settings BookingSettings
	clock    clock.Clock
}

func NewAdminQueries(store AdminReadStore, users UserReadStore, settings BookingSettings, clk clock.Clock) AdminQueries {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &adminQueriesImpl{store: store, users: users, settings: settings, clock: clk}
}

func (q *adminQueriesImpl) ListUsers(ctx context.Context, actor booking.Actor, filter UserListFilter) (*UserPage, error) {
	if err := booking.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}

	var criteria UserListCriteria
	if r := strings.TrimSpace(filter.Role); r != "" {
		role, err := user.NewRole(r)
		if err != nil {
			return nil, err
		}
		s := role.String()
		criteria.Role = &s
	}
	criteria.IsActive = filter.IsActive

	page := NormalizePage(filter.Page, filter.Limit, DefaultUserLimit)
	criteria.Limit = page.Limit
	criteria.Offset = page.Offset()

	items, total, err := q.store.ListUsers(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return &UserPage{
		Items:      items,
		TotalCount: total,
		TotalPages: TotalPages(total, page.Limit),
		Page:       page.Page,
		Limit:      page.Limit,
	}, nil
}

// GetUser returns inactive accounts too, unlike GetCurrentUser.
func (q *adminQueriesImpl) GetUser(ctx context.Context, actor booking.Actor, id uuid.UUID) (*AuthorizedUserView, error) {
	if err := booking.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}
	v, err := q.users.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *adminQueriesImpl) Analytics(ctx context.Context, actor booking.Actor) (*Analytics, error) {
	if err := booking.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}

	byStatus, err := q.store.CountBookingsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := q.store.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	paid, refunded, err := q.store.PaymentTotals(ctx)
	if err != nil {
		return nil, err
	}

	since := revenueWindowStart(q.clock.Now(), q.settings.Location)
	monthly, err := q.store.RevenueByMonth(ctx, q.settings.Location.String(), since)
	if err != nil {
		return nil, err
	}

	out := &Analytics{
		BookingsByStatus: make(map[string]int64, len(booking.AllStatuses())),
		UsersByRole:      map[string]int64{},
		PaidCents:        paid,
		RefundedCents:    refunded,
		Revenue:          fillMonths(monthly, since),
		Currency:         q.settings.Currency,
	}
	for _, s := range booking.AllStatuses() {
		n := byStatus[s.String()]
		out.BookingsByStatus[s.String()] = n
		out.TotalBookings += n
	}
	for _, r := range []user.Role{user.RoleCustomer, user.RoleDecorator, user.RoleAdmin} {
		out.UsersByRole[r.String()] = byRole[r.String()]
	}
	return out, nil
}

// revenueWindowStart is the first instant of the month RevenueMonths-1 months before now, in loc.
func revenueWindowStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month()-(RevenueMonths-1), 1, 0, 0, 0, 0, loc)
}

// fillMonths returns one entry per month from since onwards, zero where no revenue was recorded.
func fillMonths(rows []MonthlyRevenue, since time.Time) []MonthlyRevenue {
	byMonth := make(map[string]MonthlyRevenue, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}
	out := make([]MonthlyRevenue, 0, RevenueMonths)
	for i := 0; i < RevenueMonths; i++ {
		month := since.AddDate(0, i, 0).Format("2006-01")
		r, ok := byMonth[month]
		if !ok {
			r = MonthlyRevenue{Month: month}
		}
		out = append(out, r)
	}
	return out
}
