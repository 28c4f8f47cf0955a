package booking

import (
	"math"
	"strings"

	"decor-booking/internal/pkg/errs"
)

const (
	MaxSpecialRequirementsLength = 1000
	MaxAddressLength             = 500
	MaxCancellationReasonLength  = 500
)

var (
	ErrAddressRequired      = errs.Validation("location address is required")
	ErrAddressTooLong       = errs.Validation("location address exceeds maximum length")
	ErrInvalidCoordinates   = errs.Validation("coordinates must be a valid latitude/longitude pair")
	ErrRequirementsTooLong  = errs.Validation("special requirements exceed maximum length")
	ErrNegativeAmount       = errs.Validation("total amount must not be negative")
	ErrInvalidAmount        = errs.Validation("total amount must be a finite number")
	ErrEventDateNotInFuture = errs.Validation("event date must be in the future")
	ErrInvalidDuration      = errs.Validation("duration must be a positive number of hours")
	ErrReasonTooLong        = errs.Validation("cancellation reason exceeds maximum length")
)

type Coordinates struct {
	Lat float64
	Lng float64
}

type Location struct {
	address     string
	district    string
	subDistrict string
	coordinates *Coordinates
}

func NewLocation(address, district, subDistrict string, coords *Coordinates) (Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Location{}, ErrAddressRequired
	}
	if len([]rune(address)) > MaxAddressLength {
		return Location{}, ErrAddressTooLong
	}
	if coords != nil {
		if math.IsNaN(coords.Lat) || math.IsNaN(coords.Lng) ||
			coords.Lat < -90 || coords.Lat > 90 || coords.Lng < -180 || coords.Lng > 180 {
			return Location{}, ErrInvalidCoordinates
		}
		c := *coords
		coords = &c
	}
	return Location{
		address:     address,
		district:    strings.TrimSpace(district),
		subDistrict: strings.TrimSpace(subDistrict),
		coordinates: coords,
	}, nil
}

func (l Location) Address() string           { return l.address }
func (l Location) District() string          { return l.district }
func (l Location) SubDistrict() string       { return l.subDistrict }
func (l Location) Coordinates() *Coordinates { return l.coordinates }

type SpecialRequirements struct {
	text string
}

func NewSpecialRequirements(s string) (SpecialRequirements, error) {
	s = strings.TrimSpace(s)
	if len([]rune(s)) > MaxSpecialRequirementsLength {
		return SpecialRequirements{}, ErrRequirementsTooLong
	}
	return SpecialRequirements{text: s}, nil
}

func (r SpecialRequirements) String() string { return r.text }

// Money is an amount in minor units (cents/poisha).
type Money struct {
	cents int64
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromAmount converts a decimal major-unit amount, rounding half away from zero.
func NewMoneyFromAmount(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrInvalidAmount
	}
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	// float64(math.MaxInt64) is 2^63, which does not fit in an int64.
	cents := math.Round(amount * 100)
	if cents >= math.MaxInt64 {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: int64(cents)}, nil
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Amount() float64 { return float64(m.cents) / 100 }

// MulRate returns m*rate rounded to the nearest minor unit.
func (m Money) MulRate(rate float64) Money {
	return Money{cents: int64(math.Round(float64(m.cents) * rate))}
}

func (m Money) Add(o Money) Money { return Money{cents: m.cents + o.cents} }

type Duration struct {
	hours int
}

func NewDuration(hours int) (Duration, error) {
	if hours <= 0 {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{hours: hours}, nil
}

func (d Duration) Hours() int { return d.hours }
