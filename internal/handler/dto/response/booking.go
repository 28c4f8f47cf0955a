package response

import (
	"time"

	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PartyResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationResponse struct {
	Address     string               `json:"address"`
	District    string               `json:"district"`
	SubDistrict string               `json:"subDistrict"`
	Coordinates *CoordinatesResponse `json:"coordinates,omitempty"`
}

type BookingResponse struct {
	ID                  uuid.UUID        `json:"id"`
	BookingCode         string           `json:"bookingCode"`
	CustomerID          uuid.UUID        `json:"customerId"`
	Customer            PartyResponse    `json:"customer" copier:"-"`
	ServiceID           uuid.UUID        `json:"serviceId"`
	ServiceName         string           `json:"serviceName"`
	ServiceCategory     string           `json:"serviceCategory"`
	DecoratorID         *uuid.UUID       `json:"decoratorId,omitempty"`
	Decorator           *PartyResponse   `json:"decorator,omitempty" copier:"-"`
	EventDate           time.Time        `json:"eventDate"`
	DurationHours       int              `json:"durationHours"`
	Location            LocationResponse `json:"location" copier:"-"`
	SpecialRequirements string           `json:"specialRequirements"`
	TotalAmount         float64          `json:"totalAmount" copier:"-"`
	Status              string           `json:"status"`
	PaymentStatus       string           `json:"paymentStatus"`
	CancellationReason  *string          `json:"cancellationReason,omitempty"`
	Version             int              `json:"version"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	out := &BookingResponse{}
	_ = copier.Copy(out, v)

	out.Customer = PartyResponse{ID: v.Customer.ID, Name: v.Customer.Name, Email: v.Customer.Email}
	if v.Decorator != nil {
		out.Decorator = &PartyResponse{ID: v.Decorator.ID, Name: v.Decorator.Name, Email: v.Decorator.Email}
	}
	out.Location = LocationResponse{
		Address:     v.Address,
		District:    v.District,
		SubDistrict: v.SubDistrict,
	}
	if v.Latitude != nil && v.Longitude != nil {
		out.Location.Coordinates = &CoordinatesResponse{Lat: *v.Latitude, Lng: *v.Longitude}
	}
	out.TotalAmount = centsToAmount(v.TotalAmountCents)
	return out
}

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	TotalCount int64              `json:"totalCount"`
	TotalPages int                `json:"totalPages"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

func FromBookingPage(p *queries.BookingPage) *BookingListResponse {
	items := make([]*BookingResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromBookingView(v)
	}
	return &BookingListResponse{
		Bookings:   items,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		Page:       p.Page,
		Limit:      p.Limit,
	}
}

type BookingSummaryResponse struct {
	BookingID     uuid.UUID `json:"bookingId"`
	BookingCode   string    `json:"bookingCode"`
	ServiceName   string    `json:"serviceName"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	Subtotal      float64   `json:"subtotal"`
	TaxRate       float64   `json:"taxRate"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency"`
}

func FromBookingSummary(s *queries.BookingSummary) *BookingSummaryResponse {
	return &BookingSummaryResponse{
		BookingID:     s.BookingID,
		BookingCode:   s.BookingCode,
		ServiceName:   s.ServiceName,
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		Subtotal:      centsToAmount(s.SubtotalCents),
		TaxRate:       s.TaxRate,
		Tax:           centsToAmount(s.TaxCents),
		Total:         centsToAmount(s.TotalCents),
		Currency:      s.Currency,
	}
}

type AvailabilityResponse struct {
	Available   bool      `json:"available"`
	Reason      string    `json:"reason"`
	DecoratorID uuid.UUID `json:"decoratorId"`
	Date        string    `json:"date"`
}

func FromAvailability(a *queries.Availability) *AvailabilityResponse {
	out := &AvailabilityResponse{}
	_ = copier.Copy(out, a)
	return out
}

func centsToAmount(cents int64) float64 {
	return float64(cents) / 100
}
