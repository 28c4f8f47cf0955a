//go:build unit || e2e

// Package memstore is an in-memory UnitOfWork for usecase tests. Conditional
// booking writes follow the same status/version compare-and-set contract as
// the postgres repository.
package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/notification"
	"decor-booking/internal/domain/review"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/infra"
	"decor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type notificationRow struct {
	n      *notification.Notification
	isRead bool
}

type Store struct {
	mu            sync.Mutex
	bookings      map[uuid.UUID]*booking.Booking
	codes         map[string]uuid.UUID
	users         map[uuid.UUID]*shared.UserSnapshot
	services      map[uuid.UUID]*shared.ServiceSnapshot
	reviews       map[uuid.UUID]*review.Review // keyed by booking id
	notifications map[uuid.UUID]*notificationRow

	// BeforeConditionalUpdate runs outside the lock right before a
	// compare-and-set, so tests can line up competing writers.
	BeforeConditionalUpdate func()

	// CodeCollisions makes the next n booking inserts fail with a duplicate key.
	CodeCollisions int

	// FailNotifications makes every notification insert fail.
	FailNotifications bool
}

func New() *Store {
	return &Store{
		bookings:      map[uuid.UUID]*booking.Booking{},
		codes:         map[string]uuid.UUID{},
		users:         map[uuid.UUID]*shared.UserSnapshot{},
		services:      map[uuid.UUID]*shared.ServiceSnapshot{},
		reviews:       map[uuid.UUID]*review.Review{},
		notifications: map[uuid.UUID]*notificationRow{},
	}
}

func (s *Store) AddUser(u *shared.UserSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	s.users[u.ID] = &c
}

func (s *Store) AddService(svc *shared.ServiceSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *svc
	s.services[svc.ID] = &c
}

func (s *Store) AddBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = clone(b)
	s.codes[b.Code().String()] = b.ID()
}

// Booking returns a copy of the committed booking, or nil.
func (s *Store) Booking(id uuid.UUID) *booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil
	}
	return clone(b)
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *Store) ReviewFor(bookingID uuid.UUID) *review.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviews[bookingID]
}

func (s *Store) User(id uuid.UUID) *shared.UserSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	c := *u
	return &c
}

// Notifications returns the notifications addressed to userID, oldest first.
func (s *Store) Notifications(userID uuid.UUID) []*notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*notification.Notification
	for _, row := range s.notifications {
		if row.n.UserID() == userID {
			out = append(out, row.n)
		}
	}
	slices.SortStableFunc(out, func(a, b *notification.Notification) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return out
}

func (s *Store) AddNotification(n *notification.Notification, isRead bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID()] = &notificationRow{n: n, isRead: isRead}
}

func (s *Store) IsRead(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.notifications[id]
	return ok && row.isRead
}

// Within runs fn and undoes its writes when it returns an error.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	t := &memTx{store: s}
	if err := fn(ctx, t); err != nil {
		t.rollback()
		return err
	}
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return reads{store: s}
}

// Sink writes notifications into the store, so it can stand in for the
// postgres notification sink.
func (s *Store) Sink() shared.NotificationSink {
	return sink{store: s}
}

type memTx struct {
	store *Store
	mu    sync.Mutex
	undo  []func()
}

func (t *memTx) record(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undo = append(t.undo, f)
}

func (t *memTx) rollback() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
}

func (t *memTx) Bookings() shared.BookingRepository           { return bookingRepo{tx: t} }
func (t *memTx) Reviews() shared.ReviewRepository             { return reviewRepo{tx: t} }
func (t *memTx) Notifications() shared.NotificationRepository { return notificationRepo{tx: t} }
func (t *memTx) Users() shared.UserRepository                 { return userRepo{tx: t} }
func (t *memTx) Reads() shared.CommandReads                   { return reads{store: t.store} }

type bookingRepo struct{ tx *memTx }

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CodeCollisions > 0 {
		s.CodeCollisions--
		return infra.WrapRepoErr("booking code already exists", nil, infra.KindDuplicateKey)
	}
	if _, taken := s.codes[b.Code().String()]; taken {
		return infra.WrapRepoErr("booking code already exists", nil, infra.KindDuplicateKey)
	}

	id, code := b.ID(), b.Code().String()
	s.bookings[id] = clone(b)
	s.codes[code] = id
	r.tx.record(func() {
		delete(s.bookings, id)
		delete(s.codes, code)
	})
	return nil
}

func (r bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return clone(b), nil
}

func (r bookingRepo) ConditionalUpdate(_ context.Context, b *booking.Booking, expectedStatus booking.Status, expectedVersion int) (bool, error) {
	s := r.tx.store
	if hook := s.BeforeConditionalUpdate; hook != nil {
		hook()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.bookings[b.ID()]
	if !ok || current.Status() != expectedStatus || current.Version() != expectedVersion {
		return false, nil
	}

	next := clone(b)
	for next.Version() <= expectedVersion {
		next.BumpVersion()
	}
	s.bookings[b.ID()] = next
	prev := current
	r.tx.record(func() { s.bookings[prev.ID()] = prev })
	return true, nil
}

type reviewRepo struct{ tx *memTx }

func (r reviewRepo) Create(_ context.Context, rev *review.Review) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reviews[rev.BookingID()]; exists {
		return infra.WrapRepoErr("review already exists", nil, infra.KindDuplicateKey)
	}
	s.reviews[rev.BookingID()] = rev
	bookingID := rev.BookingID()
	r.tx.record(func() { delete(s.reviews, bookingID) })
	return nil
}

type notificationRepo struct{ tx *memTx }

func (r notificationRepo) Create(_ context.Context, n *notification.Notification) error {
	return r.tx.store.insertNotification(n, r.tx.record)
}

func (r notificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.notifications[id]
	if !ok || row.n.UserID() != userID {
		return false, nil
	}
	was := row.isRead
	row.isRead = true
	r.tx.record(func() { row.isRead = was })
	return true, nil
}

func (r notificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.notifications {
		if row.n.UserID() == userID && !row.isRead {
			row.isRead = true
			n++
			target := row
			r.tx.record(func() { target.isRead = false })
		}
	}
	return n, nil
}

func (r notificationRepo) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.notifications[id]
	if !ok || row.n.UserID() != userID {
		return false, nil
	}
	delete(s.notifications, id)
	r.tx.record(func() { s.notifications[id] = row })
	return true, nil
}

type userRepo struct{ tx *memTx }

func (r userRepo) Create(_ context.Context, u *user.User) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email().Value()) {
			return infra.WrapRepoErr("email already exists", nil, infra.KindDuplicateKey)
		}
	}
	s.users[u.ID()] = &shared.UserSnapshot{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		Name:         u.Name().Value(),
		Role:         u.Role().String(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
	}
	id := u.ID()
	r.tx.record(func() { delete(s.users, id) })
	return nil
}

func (r userRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r userRepo) UpdateRole(_ context.Context, userID uuid.UUID, role user.Role) error {
	return r.update(userID, func(u *shared.UserSnapshot) { u.Role = role.String() })
}

func (r userRepo) SetActive(_ context.Context, userID uuid.UUID, active bool) error {
	return r.update(userID, func(u *shared.UserSnapshot) { u.IsActive = active })
}

func (r userRepo) update(userID uuid.UUID, mutate func(*shared.UserSnapshot)) error {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.users[userID]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	next := *current
	mutate(&next)
	s.users[userID] = &next
	r.tx.record(func() { s.users[userID] = current })
	return nil
}

type reads struct{ store *Store }

func (r reads) ServiceByID(_ context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	svc, ok := r.store.services[id]
	if !ok {
		return nil, infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	c := *svc
	return &c, nil
}

func (r reads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u := r.store.User(id)
	if u == nil {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (r reads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r reads) ReviewExistsForBooking(_ context.Context, bookingID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.reviews[bookingID]
	return ok, nil
}

type sink struct{ store *Store }

func (k sink) Emit(_ context.Context, n *notification.Notification) error {
	return k.store.insertNotification(n, nil)
}

func (s *Store) insertNotification(n *notification.Notification, record func(func())) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNotifications {
		return infra.WrapRepoErr("failed to create notification", nil, infra.KindDBFailure)
	}
	s.notifications[n.ID()] = &notificationRow{n: n}
	if record != nil {
		id := n.ID()
		record(func() { delete(s.notifications, id) })
	}
	return nil
}

func clone(b *booking.Booking) *booking.Booking {
	var decoratorID *uuid.UUID
	if d := b.DecoratorID(); d != nil {
		id := *d
		decoratorID = &id
	}
	var reason *string
	if r := b.CancellationReason(); r != nil {
		v := *r
		reason = &v
	}
	return booking.ReconstructBooking(booking.ReconstructInput{
		ID:                  b.ID(),
		Code:                b.Code().String(),
		CustomerID:          b.CustomerID(),
		ServiceID:           b.ServiceID(),
		DecoratorID:         decoratorID,
		EventDate:           b.EventDate(),
		DurationHours:       b.Duration().Hours(),
		Location:            b.Location(),
		SpecialRequirements: b.SpecialRequirements().String(),
		TotalAmountCents:    b.TotalAmount().Cents(),
		Status:              b.Status(),
		PaymentStatus:       b.PaymentStatus(),
		CancellationReason:  reason,
		Version:             b.Version(),
		CreatedAt:           b.CreatedAt(),
		UpdatedAt:           b.UpdatedAt(),
	})
}

