package commands

import (
	"context"
	"log/slog"
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/notification"
	"decor-booking/internal/pkg/clock"
	"decor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const sideEffectTimeout = 5 * time.Second

// SideEffects runs the post-commit work of a booking write. Failures are
// logged and counted but never returned.
type SideEffects struct {
	sink      shared.NotificationSink
	publisher shared.EventPublisher
	metrics   shared.LifecycleMetrics
	clock     clock.Clock
}

func NewSideEffects(sink shared.NotificationSink, publisher shared.EventPublisher, metrics shared.LifecycleMetrics, clk clock.Clock) *SideEffects {
	return &SideEffects{sink: sink, publisher: publisher, metrics: metrics, clock: clk}
}

func (s *SideEffects) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
}

func (s *SideEffects) Notify(ctx context.Context, userID, bookingID uuid.UUID, tpl notification.Template) {
	ctx, cancel := s.detached(ctx)
	defer cancel()

	id := bookingID
	n, err := notification.NewNotification(userID, tpl.Title, tpl.Message, &id, s.clock.Now())
	if err == nil {
		err = s.sink.Emit(ctx, n)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to emit notification",
			"booking_id", bookingID,
			"user_id", userID,
			"title", tpl.Title,
			"error", err.Error())
		s.metrics.NotificationEmitted("failed")
		return
	}
	s.metrics.NotificationEmitted("sent")
}

func (s *SideEffects) Publish(ctx context.Context, eventType string, b *booking.Booking, from booking.Status) {
	ctx, cancel := s.detached(ctx)
	defer cancel()

	event := shared.BookingEvent{
		Type:          eventType,
		BookingID:     b.ID(),
		BookingCode:   b.Code().String(),
		CustomerID:    b.CustomerID(),
		DecoratorID:   b.DecoratorID(),
		FromStatus:    from.String(),
		Status:        b.Status().String(),
		PaymentStatus: b.PaymentStatus().String(),
		OccurredAt:    s.clock.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish booking event",
			"booking_id", b.ID(),
			"event_type", eventType,
			"error", err.Error())
		s.metrics.EventPublished("failed")
		return
	}
	s.metrics.EventPublished("sent")
}

func (s *SideEffects) Transition(from, to booking.Status) {
	if from != to {
		s.metrics.TransitionApplied(from.String(), to.String())
	}
}

func (s *SideEffects) Conflict(operation string) {
	s.metrics.WriteConflict(operation)
}
