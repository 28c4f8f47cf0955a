package repository

import (
	"context"

	"decor-booking/internal/domain/notification"
	"decor-booking/internal/infra"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertNotificationSQL = `INSERT INTO notifications (id, user_id, title, message, booking_id, is_read, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	markNotificationReadSQL     = `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	markAllNotificationsReadSQL = `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`
	deleteNotificationSQL       = `DELETE FROM notifications WHERE id = $1 AND user_id = $2`
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	_, err := r.db.Exec(ctx, insertNotificationSQL,
		n.ID(),
		n.UserID(),
		n.Title(),
		n.Message(),
		pgconv.UUIDPtrToPgtype(n.BookingID()),
		n.IsRead(),
		n.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification", err)
	}
	return nil
}

// MarkRead reports false when no notification with id belongs to userID.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, markNotificationReadSQL, id, userID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark notification read", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, markAllNotificationsReadSQL, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark notifications read", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteNotificationSQL, id, userID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete notification", err)
	}
	return tag.RowsAffected() > 0, nil
}
