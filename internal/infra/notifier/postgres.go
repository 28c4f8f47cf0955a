package notifier

import (
	"context"

	"decor-booking/internal/domain/notification"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/infra/repository"
)

// PostgresSink writes notifications outside the booking transaction, after it commits.
type PostgresSink struct {
	repo *repository.NotificationRepository
}

func NewPostgresSink(dbtx db.DBTX) *PostgresSink {
	return &PostgresSink{repo: repository.NewNotificationRepository(dbtx)}
}

func (s *PostgresSink) Emit(ctx context.Context, n *notification.Notification) error {
	return s.repo.Create(ctx, n)
}
