package readstore

import (
	"context"

	"decor-booking/internal/infra"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/pkg/pgconv"
	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// $2 is NULL when the read-state filter is absent.
const (
	countNotificationsSQL = `SELECT count(*) FROM notifications
WHERE user_id = $1 AND ($2::boolean IS NULL OR is_read = $2)`
	listNotificationsSQL = `SELECT id, user_id, title, message, booking_id, is_read, created_at
FROM notifications
WHERE user_id = $1 AND ($2::boolean IS NULL OR is_read = $2)
ORDER BY created_at DESC, id DESC
LIMIT $3 OFFSET $4`
	countUnreadSQL = `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`
)

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(db db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: db}
}

func (s *NotificationReadStore) List(ctx context.Context, userID uuid.UUID, isRead *bool, limit, offset int) ([]*queries.NotificationView, int64, error) {
	filter := pgtype.Bool{}
	if isRead != nil {
		filter = pgtype.Bool{Bool: *isRead, Valid: true}
	}

	var total int64
	if err := s.db.QueryRow(ctx, countNotificationsSQL, userID, filter).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count notifications", err)
	}

	rows, err := s.db.Query(ctx, listNotificationsSQL, userID, filter, limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	items := make([]*queries.NotificationView, 0, limit)
	for rows.Next() {
		var (
			v         queries.NotificationView
			bookingID pgtype.UUID
		)
		if err := rows.Scan(&v.ID, &v.UserID, &v.Title, &v.Message, &bookingID, &v.IsRead, &v.CreatedAt); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan notification", err)
		}
		v.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
		items = append(items, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate notifications", err)
	}
	return items, total, nil
}

func (s *NotificationReadStore) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, countUnreadSQL, userID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count unread notifications", err)
	}
	return n, nil
}
