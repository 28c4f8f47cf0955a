package queries

import (
	"context"
	"strings"
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/infra"
	"decor-booking/internal/pkg/clock"
	"decor-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	reasonAvailable   = "Decorator is available"
	reasonUnavailable = "Decorator is not available on this date"
)

var (
	ErrBookingNotFound = errs.NotFound("Booking not found")
	ErrInvalidDate     = errs.Validation("date must be YYYY-MM-DD or RFC3339")
)

// BookingSettings carries the configured booking calendar and pricing policy.
type BookingSettings struct {
	Location *time.Location
	TaxRate  float64
	Currency string
}

type BookingListFilter struct {
	Status      string
	CustomerID  *uuid.UUID
	DecoratorID *uuid.UUID
	Page        int
	Limit       int
}

// BookingListCriteria is the store-level filter after role scoping.
type BookingListCriteria struct {
	Status      *string
	CustomerID  *uuid.UUID
	DecoratorID *uuid.UUID
	Limit       int
	Offset      int
}

type BookingPage struct {
	Items      []*BookingView
	TotalCount int64
	TotalPages int
	Page       int
	Limit      int
}

type BookingSummary struct {
	BookingID     uuid.UUID
	BookingCode   string
	ServiceName   string
	Status        string
	PaymentStatus string
	SubtotalCents int64
	TaxRate       float64
	TaxCents      int64
	TotalCents    int64
	Currency      string
}

type Availability struct {
	Available   bool
	Reason      string
	DecoratorID uuid.UUID
	Date        string
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, criteria BookingListCriteria) ([]*BookingView, int64, error)
	HasBookingInRange(ctx context.Context, decoratorID uuid.UUID, from, to time.Time, statuses []string) (bool, error)
}

type BookingQueries interface {
	Get(ctx context.Context, id uuid.UUID, actor booking.Actor) (*BookingView, error)
	// GetByIDSystem skips the read guard; used to render results of already-authorized writes.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actor booking.Actor, filter BookingListFilter) (*BookingPage, error)
	Summary(ctx context.Context, id uuid.UUID, actor booking.Actor) (*BookingSummary, error)
	CheckAvailability(ctx context.Context, decoratorID uuid.UUID, date string) (*Availability, error)
}

type bookingQueriesImpl struct {
	store    BookingReadStore
	settings BookingSettings
}

func NewBookingQueries(store BookingReadStore, settings BookingSettings) BookingQueries {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &bookingQueriesImpl{store: store, settings: settings}
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *bookingQueriesImpl) Get(ctx context.Context, id uuid.UUID, actor booking.Actor) (*BookingView, error) {
	v, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := booking.AuthorizeView(actor, v.CustomerID, v.DecoratorID); err != nil {
		return nil, err
	}
	return v, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor booking.Actor, filter BookingListFilter) (*BookingPage, error) {
	var criteria BookingListCriteria
	if s := strings.TrimSpace(filter.Status); s != "" {
		st, err := booking.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		status := st.String()
		criteria.Status = &status
	}

	switch actor.Role {
	case user.RoleAdmin:
		criteria.CustomerID = filter.CustomerID
		criteria.DecoratorID = filter.DecoratorID
	case user.RoleDecorator:
		id := actor.ID
		criteria.DecoratorID = &id
	case user.RoleCustomer:
		id := actor.ID
		criteria.CustomerID = &id
	default:
		return nil, booking.ErrAccessDenied
	}

	page := NormalizePage(filter.Page, filter.Limit, DefaultBookingLimit)
	criteria.Limit = page.Limit
	criteria.Offset = page.Offset()

	items, total, err := q.store.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return &BookingPage{
		Items:      items,
		TotalCount: total,
		TotalPages: TotalPages(total, page.Limit),
		Page:       page.Page,
		Limit:      page.Limit,
	}, nil
}

func (q *bookingQueriesImpl) Summary(ctx context.Context, id uuid.UUID, actor booking.Actor) (*BookingSummary, error) {
	v, err := q.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	subtotal, err := booking.NewMoneyFromCents(v.TotalAmountCents)
	if err != nil {
		return nil, err
	}
	tax := subtotal.MulRate(q.settings.TaxRate)

	return &BookingSummary{
		BookingID:     v.ID,
		BookingCode:   v.BookingCode,
		ServiceName:   v.ServiceName,
		Status:        v.Status,
		PaymentStatus: v.PaymentStatus,
		SubtotalCents: subtotal.Cents(),
		TaxRate:       q.settings.TaxRate,
		TaxCents:      tax.Cents(),
		TotalCents:    subtotal.Add(tax).Cents(),
		Currency:      q.settings.Currency,
	}, nil
}

func (q *bookingQueriesImpl) CheckAvailability(ctx context.Context, decoratorID uuid.UUID, date string) (*Availability, error) {
	day, err := parseCalendarDate(date, q.settings.Location)
	if err != nil {
		return nil, err
	}
	start, end := clock.DayBounds(day, q.settings.Location)

	statuses := make([]string, len(booking.BlockingStatuses))
	for i, s := range booking.BlockingStatuses {
		statuses[i] = s.String()
	}

	busy, err := q.store.HasBookingInRange(ctx, decoratorID, start, end, statuses)
	if err != nil {
		return nil, err
	}

	out := &Availability{
		Available:   !busy,
		Reason:      reasonAvailable,
		DecoratorID: decoratorID,
		Date:        start.Format(time.DateOnly),
	}
	if busy {
		out.Reason = reasonUnavailable
	}
	return out, nil
}

// parseCalendarDate reads a bare date in loc, or an RFC3339 instant converted to loc.
func parseCalendarDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, ErrInvalidDate
}
