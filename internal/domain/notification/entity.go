package notification

import (
	"strings"
	"time"

	"decor-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired   = errs.Validation("notification title is required")
	ErrMessageRequired = errs.Validation("notification message is required")
)

type Notification struct {
	id        uuid.UUID
	userID    uuid.UUID
	title     string
	message   string
	bookingID *uuid.UUID
	isRead    bool
	createdAt time.Time
}

func NewNotification(userID uuid.UUID, title, message string, bookingID *uuid.UUID, now time.Time) (*Notification, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	return &Notification{
		id:        uuid.New(),
		userID:    userID,
		title:     title,
		message:   message,
		bookingID: bookingID,
		createdAt: now,
	}, nil
}

func (n *Notification) ID() uuid.UUID         { return n.id }
func (n *Notification) UserID() uuid.UUID     { return n.userID }
func (n *Notification) Title() string         { return n.title }
func (n *Notification) Message() string       { return n.message }
func (n *Notification) BookingID() *uuid.UUID { return n.bookingID }
func (n *Notification) IsRead() bool          { return n.isRead }
func (n *Notification) CreatedAt() time.Time  { return n.createdAt }
