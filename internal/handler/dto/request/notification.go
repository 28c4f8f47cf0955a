package request

import "decor-booking/internal/usecase/queries"

type NotificationListQuery struct {
	IsRead *bool `form:"isRead"`
	Page   int   `form:"page" binding:"omitempty,min=1"`
	Limit  int   `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q *NotificationListQuery) ToFilter() queries.NotificationFilter {
	return queries.NotificationFilter{IsRead: q.IsRead, Page: q.Page, Limit: q.Limit}
}
