package queries

import (
	"context"

	"decor-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type NotificationFilter struct {
	IsRead *bool
	Page   int
	Limit  int
}

type NotificationPage struct {
	Items       []*NotificationView
	TotalCount  int64
	UnreadCount int64
	Page        int
	TotalPages  int
}

type NotificationReadStore interface {
	List(ctx context.Context, userID uuid.UUID, isRead *bool, limit, offset int) ([]*NotificationView, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type NotificationQueries interface {
	List(ctx context.Context, actor booking.Actor, filter NotificationFilter) (*NotificationPage, error)
}

type notificationQueriesImpl struct {
	store NotificationReadStore
}

func NewNotificationQueries(store NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{store: store}
}

func (q *notificationQueriesImpl) List(ctx context.Context, actor booking.Actor, filter NotificationFilter) (*NotificationPage, error) {
	page := NormalizePage(filter.Page, filter.Limit, DefaultNotificationLimit)

	items, total, err := q.store.List(ctx, actor.ID, filter.IsRead, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	unread, err := q.store.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return &NotificationPage{
		Items:       items,
		TotalCount:  total,
		UnreadCount: unread,
		Page:        page.Page,
		TotalPages:  TotalPages(total, page.Limit),
	}, nil
}
