package response

import (
	"time"

	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	BookingID *uuid.UUID `json:"bookingId,omitempty"`
	IsRead    bool       `json:"isRead"`
	CreatedAt time.Time  `json:"createdAt"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	TotalCount    int64                   `json:"totalCount"`
	UnreadCount   int64                   `json:"unreadCount"`
	Page          int                     `json:"page"`
	TotalPages    int                     `json:"totalPages"`
}

func FromNotificationPage(p *queries.NotificationPage) *NotificationListResponse {
	items := make([]*NotificationResponse, 0, len(p.Items))
	_ = copier.Copy(&items, p.Items)
	return &NotificationListResponse{
		Notifications: items,
		TotalCount:    p.TotalCount,
		UnreadCount:   p.UnreadCount,
		Page:          p.Page,
		TotalPages:    p.TotalPages,
	}
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
