package booking

import "decor-booking/internal/pkg/errs"

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus]PaymentStatus{
	PaymentUnpaid: PaymentPaid,
	PaymentPaid:   PaymentRefunded,
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch ps := PaymentStatus(s); ps {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return ps, nil
	default:
		return "", errs.Validationf("invalid payment status: %q", s)
	}
}

func (p PaymentStatus) String() string { return string(p) }

func (p PaymentStatus) CanTransitionTo(to PaymentStatus) bool {
	next, ok := paymentTransitions[p]
	return ok && next == to
}

func PaymentTransitionError(from, to PaymentStatus) error {
	return errs.Mark(errs.Newf("cannot change payment status from %s to %s", from, to), errs.ErrInvalidTransition)
}
