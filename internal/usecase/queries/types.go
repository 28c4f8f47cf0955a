package queries

import (
	"time"

	"github.com/google/uuid"
)

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type PartySummary struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// BookingView is a booking joined with its service, customer and decorator.
type BookingView struct {
	ID                  uuid.UUID
	BookingCode         string
	CustomerID          uuid.UUID
	Customer            PartySummary
	ServiceID           uuid.UUID
	ServiceName         string
	ServiceCategory     string
	DecoratorID         *uuid.UUID
	Decorator           *PartySummary
	EventDate           time.Time
	DurationHours       int
	Address             string
	District            string
	SubDistrict         string
	Latitude            *float64
	Longitude           *float64
	SpecialRequirements string
	TotalAmountCents    int64
	Status              string
	PaymentStatus       string
	CancellationReason  *string
	Version             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type NotificationView struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	BookingID *uuid.UUID
	IsRead    bool
	CreatedAt time.Time
}

type ReviewView struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	BookingCode   string
	ServiceID     uuid.UUID
	ServiceName   string
	CustomerID    uuid.UUID
	CustomerName  string
	DecoratorID   *uuid.UUID
	DecoratorName *string
	Rating        int
	Comment       string
	CreatedAt     time.Time
}

type ServiceView struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CostCents int64
	Unit      string
	IsActive  bool
}
