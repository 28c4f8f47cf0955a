package notification

import "fmt"

// Template is a title/message pair sent to a user after a booking event.
type Template struct {
	Title   string
	Message string
}

func BookingCreated(code string) Template {
	return Template{
		Title:   "Booking Created",
		Message: fmt.Sprintf("Your booking has been created successfully. Booking ID: %s", code),
	}
}

func BookingStatusUpdated(status string) Template {
	return Template{
		Title:   "Booking Status Updated",
		Message: fmt.Sprintf("Your booking status has been updated to %s", status),
	}
}

func DecoratorAssignedToCustomer() Template {
	return Template{
		Title:   "Decorator Assigned",
		Message: "A decorator has been assigned to your booking",
	}
}

func NewAssignmentForDecorator() Template {
	return Template{
		Title:   "New Booking Assignment",
		Message: "You have been assigned to a new booking",
	}
}

func PaymentReceived(code string) Template {
	return Template{
		Title:   "Payment Received",
		Message: fmt.Sprintf("Your payment for booking %s has been received", code),
	}
}

func PaymentRefunded(code string) Template {
	return Template{
		Title:   "Payment Refunded",
		Message: fmt.Sprintf("Your payment for booking %s has been refunded", code),
	}
}
