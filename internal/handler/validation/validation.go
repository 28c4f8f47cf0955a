package validation

import (
	"sync"

	"decor-booking/internal/domain/booking"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// Register installs the custom binding tags.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("booking_status", bookingStatus)
		_ = v.RegisterValidation("payment_status", paymentStatus)
	})
}

func bookingStatus(fl validator.FieldLevel) bool {
	return booking.Status(fl.Field().String()).IsValid()
}

func paymentStatus(fl validator.FieldLevel) bool {
	_, err := booking.ParsePaymentStatus(fl.Field().String())
	return err == nil
}
