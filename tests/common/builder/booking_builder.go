//go:build unit || e2e

package builder

import (
	"time"

	"decor-booking/internal/domain/booking"
	reqdto "decor-booking/internal/handler/dto/request"
	"decor-booking/internal/usecase/commands"
	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID                  uuid.UUID
	Code                string
	CustomerID          uuid.UUID
	CustomerName        string
	ServiceID           uuid.UUID
	ServiceName         string
	DecoratorID         *uuid.UUID
	EventDate           time.Time
	DurationHours       int
	Address             string
	District            string
	SubDistrict         string
	Coordinates         *booking.Coordinates
	SpecialRequirements string
	TotalAmount         float64
	Status              booking.Status
	PaymentStatus       booking.PaymentStatus
	Version             int
	Now                 time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:                  uuid.New(),
		Code:                "BK1772355600000042",
		CustomerID:          uuid.New(),
		CustomerName:        "Test Customer",
		ServiceID:           uuid.New(),
		ServiceName:         "Wedding Stage Decoration",
		EventDate:           now.AddDate(0, 0, 14),
		DurationHours:       4,
		Address:             "House 12, Road 5",
		District:            "Dhaka",
		SubDistrict:         "Dhanmondi",
		SpecialRequirements: "Marigold theme",
		TotalAmount:         15000.50,
		Status:              booking.StatusPending,
		PaymentStatus:       booking.PaymentUnpaid,
		Version:             1,
		Now:                 now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// BuildDomain runs the creation rules, so invalid builder values surface as errors.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	loc, err := booking.NewLocation(b.Address, b.District, b.SubDistrict, b.Coordinates)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(booking.NewBookingInput{
		CustomerID:          b.CustomerID,
		ServiceID:           b.ServiceID,
		DecoratorID:         b.DecoratorID,
		EventDate:           b.EventDate,
		DurationHours:       b.DurationHours,
		Location:            loc,
		SpecialRequirements: b.SpecialRequirements,
		TotalAmount:         b.TotalAmount,
	}, b.Now)
}

// BuildStored returns a booking as it would come back from the database.
func (b *BookingBuilder) BuildStored() *booking.Booking {
	loc, err := booking.NewLocation(b.Address, b.District, b.SubDistrict, b.Coordinates)
	if err != nil {
		panic(err)
	}
	money, err := booking.NewMoneyFromAmount(b.TotalAmount)
	if err != nil {
		panic(err)
	}
	var reason *string
	if b.Status == booking.StatusCancelled {
		r := ""
		reason = &r
	}
	return booking.ReconstructBooking(booking.ReconstructInput{
		ID:                  b.ID,
		Code:                b.Code,
		CustomerID:          b.CustomerID,
		ServiceID:           b.ServiceID,
		DecoratorID:         b.DecoratorID,
		EventDate:           b.EventDate,
		DurationHours:       b.DurationHours,
		Location:            loc,
		SpecialRequirements: b.SpecialRequirements,
		TotalAmountCents:    money.Cents(),
		Status:              b.Status,
		PaymentStatus:       b.PaymentStatus,
		CancellationReason:  reason,
		Version:             b.Version,
		CreatedAt:           b.Now,
		UpdatedAt:           b.Now,
	})
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	money, _ := booking.NewMoneyFromAmount(b.TotalAmount)
	v := &queries.BookingView{
		ID:          b.ID,
		BookingCode: b.Code,
		CustomerID:  b.CustomerID,
		Customer: queries.PartySummary{
			ID:    b.CustomerID,
			Name:  b.CustomerName,
			Email: "customer@example.com",
		},
		ServiceID:           b.ServiceID,
		ServiceName:         b.ServiceName,
		ServiceCategory:     "wedding",
		DecoratorID:         b.DecoratorID,
		EventDate:           b.EventDate,
		DurationHours:       b.DurationHours,
		Address:             b.Address,
		District:            b.District,
		SubDistrict:         b.SubDistrict,
		SpecialRequirements: b.SpecialRequirements,
		TotalAmountCents:    money.Cents(),
		Status:              b.Status.String(),
		PaymentStatus:       b.PaymentStatus.String(),
		Version:             b.Version,
		CreatedAt:           b.Now,
		UpdatedAt:           b.Now,
	}
	if b.DecoratorID != nil {
		v.Decorator = &queries.PartySummary{ID: *b.DecoratorID, Name: "Test Decorator", Email: "decorator@example.com"}
	}
	if b.Coordinates != nil {
		lat, lng := b.Coordinates.Lat, b.Coordinates.Lng
		v.Latitude, v.Longitude = &lat, &lng
	}
	return v
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	amount := b.TotalAmount
	req := reqdto.CreateBookingRequest{
		ServiceID:     b.ServiceID,
		DecoratorID:   b.DecoratorID,
		EventDate:     b.EventDate,
		DurationHours: b.DurationHours,
		Location: reqdto.LocationRequest{
			Address:     b.Address,
			District:    b.District,
			SubDistrict: b.SubDistrict,
		},
		SpecialRequirements: b.SpecialRequirements,
		TotalAmount:         &amount,
	}
	if b.Coordinates != nil {
		req.Location.Coordinates = &reqdto.CoordinatesRequest{Lat: b.Coordinates.Lat, Lng: b.Coordinates.Lng}
	}
	return req
}

func (b *BookingBuilder) BuildCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ServiceID:           b.ServiceID,
		DecoratorID:         b.DecoratorID,
		EventDate:           b.EventDate,
		DurationHours:       b.DurationHours,
		Address:             b.Address,
		District:            b.District,
		SubDistrict:         b.SubDistrict,
		Coordinates:         b.Coordinates,
		SpecialRequirements: b.SpecialRequirements,
		TotalAmount:         b.TotalAmount,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithCustomerID(id uuid.UUID) *BookingBuilder {
	b.CustomerID = id
	return b
}

func (b *BookingBuilder) WithServiceID(id uuid.UUID) *BookingBuilder {
	b.ServiceID = id
	return b
}

func (b *BookingBuilder) WithDecoratorID(id uuid.UUID) *BookingBuilder {
	b.DecoratorID = &id
	return b
}

func (b *BookingBuilder) WithoutDecorator() *BookingBuilder {
	b.DecoratorID = nil
	return b
}

func (b *BookingBuilder) WithEventDate(t time.Time) *BookingBuilder {
	b.EventDate = t
	return b
}

func (b *BookingBuilder) WithDurationHours(h int) *BookingBuilder {
	b.DurationHours = h
	return b
}

func (b *BookingBuilder) WithAddress(address string) *BookingBuilder {
	b.Address = address
	return b
}

func (b *BookingBuilder) WithCoordinates(lat, lng float64) *BookingBuilder {
	b.Coordinates = &booking.Coordinates{Lat: lat, Lng: lng}
	return b
}

func (b *BookingBuilder) WithSpecialRequirements(s string) *BookingBuilder {
	b.SpecialRequirements = s
	return b
}

func (b *BookingBuilder) WithTotalAmount(amount float64) *BookingBuilder {
	b.TotalAmount = amount
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithPaymentStatus(p booking.PaymentStatus) *BookingBuilder {
	b.PaymentStatus = p
	return b
}

func (b *BookingBuilder) WithVersion(v int) *BookingBuilder {
	b.Version = v
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}

func (b *BookingBuilder) AsCompleted() *BookingBuilder {
	b.Status = booking.StatusCompleted
	b.PaymentStatus = booking.PaymentPaid
	return b
}
