package request

import (
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/usecase/commands"
	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CoordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationRequest struct {
	Address     string              `json:"address" binding:"required"`
	District    string              `json:"district"`
	SubDistrict string              `json:"subDistrict"`
	Coordinates *CoordinatesRequest `json:"coordinates,omitempty"`
}

type CreateBookingRequest struct {
	ServiceID           uuid.UUID       `json:"serviceId" binding:"required"`
	DecoratorID         *uuid.UUID      `json:"decoratorId,omitempty"`
	EventDate           time.Time       `json:"eventDate" binding:"required"`
	DurationHours       int             `json:"durationHours"`
	Location            LocationRequest `json:"location" binding:"required"`
	SpecialRequirements string          `json:"specialRequirements"`
	TotalAmount         *float64        `json:"totalAmount" binding:"required"`
}

func (r *CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	var coords *booking.Coordinates
	if r.Location.Coordinates != nil {
		coords = &booking.Coordinates{Lat: r.Location.Coordinates.Lat, Lng: r.Location.Coordinates.Lng}
	}
	return commands.CreateBookingRequest{
		ServiceID:           r.ServiceID,
		DecoratorID:         r.DecoratorID,
		EventDate:           r.EventDate,
		DurationHours:       r.DurationHours,
		Address:             r.Location.Address,
		District:            r.Location.District,
		SubDistrict:         r.Location.SubDistrict,
		Coordinates:         coords,
		SpecialRequirements: r.SpecialRequirements,
		TotalAmount:         *r.TotalAmount,
	}
}

type UpdateStatusRequest struct {
	Status             string `json:"status" binding:"required,booking_status"`
	CancellationReason string `json:"cancellationReason" binding:"max=500"`
}

func (r *UpdateStatusRequest) ToCommand() commands.UpdateStatusRequest {
	return commands.UpdateStatusRequest{Status: r.Status, CancellationReason: r.CancellationReason}
}

type AssignDecoratorRequest struct {
	DecoratorID uuid.UUID `json:"decoratorId" binding:"required"`
}

type RecordPaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required,payment_status"`
}

type BookingListQuery struct {
	Status      string `form:"status" binding:"omitempty,booking_status"`
	CustomerID  string `form:"customerId" binding:"omitempty,uuid"`
	DecoratorID string `form:"decoratorId" binding:"omitempty,uuid"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q *BookingListQuery) ToFilter() queries.BookingListFilter {
	return queries.BookingListFilter{
		Status:      q.Status,
		CustomerID:  parseOptionalUUID(q.CustomerID),
		DecoratorID: parseOptionalUUID(q.DecoratorID),
		Page:        q.Page,
		Limit:       q.Limit,
	}
}

type AvailabilityQuery struct {
	DecoratorID string `form:"decoratorId" binding:"required,uuid"`
	Date        string `form:"date" binding:"required"`
}

func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
