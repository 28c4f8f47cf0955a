//go:build unit

package commands_test

import (
	"context"
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/pkg/clock"
	"decor-booking/internal/usecase/commands"
	"decor-booking/internal/usecase/shared"
	"decor-booking/tests/common/builder"
	"decor-booking/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event shared.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) TransitionApplied(from, to string) { m.Called(from, to) }
func (m *mockMetrics) WriteConflict(operation string)    { m.Called(operation) }
func (m *mockMetrics) NotificationEmitted(result string) { m.Called(result) }
func (m *mockMetrics) EventPublished(result string)      { m.Called(result) }

func newMockMetrics() *mockMetrics {
	m := &mockMetrics{}
	m.On("TransitionApplied", mock.Anything, mock.Anything).Maybe()
	m.On("WriteConflict", mock.Anything).Maybe()
	m.On("NotificationEmitted", mock.Anything).Maybe()
	m.On("EventPublished", mock.Anything).Maybe()
	return m
}

// fixture wires usecases to an in-memory store seeded with one service and one user per role.
type fixture struct {
	store     *memstore.Store
	clock     *clock.MockClock
	publisher *mockPublisher
	metrics   *mockMetrics
	effects   *commands.SideEffects

	service   *shared.ServiceSnapshot
	customer  booking.Actor
	decorator booking.Actor
	admin     booking.Actor
}

func newFixture() *fixture {
	f := &fixture{
		store:     memstore.New(),
		clock:     clock.NewMockClock(builder.NewBookingBuilder().Now),
		publisher: &mockPublisher{},
		metrics:   newMockMetrics(),
	}
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.effects = commands.NewSideEffects(f.store.Sink(), f.publisher, f.metrics, f.clock)

	f.service = &shared.ServiceSnapshot{ID: uuid.New(), Name: "Wedding Stage Decoration", CostCents: 1500000, IsActive: true}
	f.store.AddService(f.service)

	f.customer = f.addUser(builder.NewUserBuilder().WithEmail("customer@example.com"))
	f.decorator = f.addUser(builder.NewUserBuilder().WithEmail("decorator@example.com").AsDecorator())
	f.admin = f.addUser(builder.NewUserBuilder().WithEmail("admin@example.com").AsAdmin())
	return f
}

func (f *fixture) addUser(b *builder.UserBuilder) booking.Actor {
	b.WithID(uuid.New())
	snap := b.BuildSnapshot()
	f.store.AddUser(snap)
	return booking.Actor{ID: snap.ID, Role: user.Role(snap.Role)}
}

// seedBooking stores a booking owned by the fixture customer.
func (f *fixture) seedBooking(mutate func(*builder.BookingBuilder)) *booking.Booking {
	b := builder.NewBookingBuilder().
		WithCustomerID(f.customer.ID).
		WithServiceID(f.service.ID).
		WithNow(f.clock.Now().Add(-time.Hour))
	if mutate != nil {
		b.With(mutate)
	}
	stored := b.BuildStored()
	f.store.AddBooking(stored)
	return stored
}

func (f *fixture) notificationTitles(userID uuid.UUID) []string {
	var titles []string
	for _, n := range f.store.Notifications(userID) {
		titles = append(titles, n.Title())
	}
	return titles
}
