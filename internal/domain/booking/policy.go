package booking

import (
	"decor-booking/internal/domain/user"
	"decor-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCustomerMayOnlyCancel = errs.Forbidden("customers may only cancel bookings")
	ErrNotBookingOwner       = errs.Forbidden("you can only modify your own bookings")
	ErrAdminOnly             = errs.Forbidden("only admins can perform this action")
	ErrAccessDenied          = errs.Forbidden("access denied")
)

// Actor is the authenticated requester.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool { return a.Role == user.RoleAdmin }

// AuthorizeStatusChange decides whether the actor may request the status.
// Table legality is checked separately by ChangeStatus.
func AuthorizeStatusChange(a Actor, b *Booking, to Status) error {
	switch a.Role {
	case user.RoleAdmin, user.RoleDecorator:
		return nil
	case user.RoleCustomer:
		if to != StatusCancelled {
			return ErrCustomerMayOnlyCancel
		}
		if !b.IsOwnedBy(a.ID) {
			return ErrNotBookingOwner
		}
		return nil
	default:
		return ErrAccessDenied
	}
}

func AuthorizeAdmin(a Actor) error {
	if !a.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

// CanView is the read guard shared by retrieval and summary.
func CanView(a Actor, customerID uuid.UUID, decoratorID *uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	if a.Role == user.RoleCustomer && customerID == a.ID {
		return true
	}
	return a.Role == user.RoleDecorator && decoratorID != nil && *decoratorID == a.ID
}

func AuthorizeView(a Actor, customerID uuid.UUID, decoratorID *uuid.UUID) error {
	if !CanView(a, customerID, decoratorID) {
		return ErrAccessDenied
	}
	return nil
}
