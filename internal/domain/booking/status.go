package booking

import (
	"decor-booking/internal/pkg/errs"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions is the exhaustive set of legal status changes. Assignment of a
// decorator is governed separately by assignableFrom.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusAssigned, StatusInProgress, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

var assignableFrom = map[Status]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusAssigned:  true,
}

// Statuses during which a decorator is considered booked for the day.
var BlockingStatuses = []Status{StatusConfirmed, StatusAssigned, StatusInProgress}

func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", errs.Validationf("invalid booking status: %q", s)
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) AllowsAssignment() bool {
	return assignableFrom[s]
}

func TransitionError(from, to Status) error {
	return errs.Mark(errs.Newf("cannot change status from %s to %s", from, to), errs.ErrInvalidTransition)
}
