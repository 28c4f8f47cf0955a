package shared

import (
	"context"
	"time"

	"decor-booking/internal/domain/notification"

	"github.com/google/uuid"
)

const (
	EventBookingCreated           = "booking.created"
	EventBookingStatusChanged     = "booking.status_changed"
	EventBookingDecoratorAssigned = "booking.decorator_assigned"
	EventBookingPaymentUpdated    = "booking.payment_updated"
)

type BookingEvent struct {
	Type          string     `json:"type"`
	BookingID     uuid.UUID  `json:"bookingId"`
	BookingCode   string     `json:"bookingCode"`
	CustomerID    uuid.UUID  `json:"customerId"`
	DecoratorID   *uuid.UUID `json:"decoratorId,omitempty"`
	FromStatus    string     `json:"fromStatus,omitempty"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	OccurredAt    time.Time  `json:"occurredAt"`
}

// NotificationSink stores user-facing notifications. Callers treat it as fire-and-forget.
type NotificationSink interface {
	Emit(ctx context.Context, n *notification.Notification) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

type LifecycleMetrics interface {
	TransitionApplied(from, to string)
	WriteConflict(operation string)
	NotificationEmitted(result string)
	EventPublished(result string)
}

type NopMetrics struct{}

func (NopMetrics) TransitionApplied(string, string) {}
func (NopMetrics) WriteConflict(string)             {}
func (NopMetrics) NotificationEmitted(string)       {}
func (NopMetrics) EventPublished(string)            {}
