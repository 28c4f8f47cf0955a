//go:build unit

package notification_test

import (
	"testing"
	"time"

	"decor-booking/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.New()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("starts unread", func(t *testing.T) {
		n, err := notification.NewNotification(userID, " Title ", "Message", &bookingID, now)
		require.NoError(t, err)
		assert.Equal(t, "Title", n.Title())
		assert.False(t, n.IsRead())
		assert.Equal(t, userID, n.UserID())
		assert.Equal(t, &bookingID, n.BookingID())
		assert.Equal(t, now, n.CreatedAt())
	})

	t.Run("title required", func(t *testing.T) {
		_, err := notification.NewNotification(userID, "  ", "Message", nil, now)
		assert.ErrorIs(t, err, notification.ErrTitleRequired)
	})

	t.Run("message required", func(t *testing.T) {
		_, err := notification.NewNotification(userID, "Title", "", nil, now)
		assert.ErrorIs(t, err, notification.ErrMessageRequired)
	})
}

func TestTemplates(t *testing.T) {
	tests := []struct {
		name    string
		tpl     notification.Template
		title   string
		message string
	}{
		{
			name:    "created",
			tpl:     notification.BookingCreated("BK1"),
			title:   "Booking Created",
			message: "Your booking has been created successfully. Booking ID: BK1",
		},
		{
			name:    "status updated",
			tpl:     notification.BookingStatusUpdated("in-progress"),
			title:   "Booking Status Updated",
			message: "Your booking status has been updated to in-progress",
		},
		{
			name:    "assigned to customer",
			tpl:     notification.DecoratorAssignedToCustomer(),
			title:   "Decorator Assigned",
			message: "A decorator has been assigned to your booking",
		},
		{
			name:    "assigned to decorator",
			tpl:     notification.NewAssignmentForDecorator(),
			title:   "New Booking Assignment",
			message: "You have been assigned to a new booking",
		},
		{
			name:    "payment received",
			tpl:     notification.PaymentReceived("BK2"),
			title:   "Payment Received",
			message: "Your payment for booking BK2 has been received",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, tt.tpl.Title)
			assert.Equal(t, tt.message, tt.tpl.Message)
		})
	}
}
