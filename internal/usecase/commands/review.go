package commands

import (
	"context"

	"decor-booking/internal/domain/booking"
	domreview "decor-booking/internal/domain/review"
	"decor-booking/internal/infra"
	"decor-booking/internal/pkg/clock"
	"decor-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

type ReviewCommands interface {
	CreateReview(ctx context.Context, actor booking.Actor, req CreateReviewRequest) (*domreview.Review, error)
}

type reviewUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewUseCase(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow, clock: clk}
}

func (uc *reviewUseCaseImpl) CreateReview(ctx context.Context, actor booking.Actor, req CreateReviewRequest) (*domreview.Review, error) {
	if _, err := domreview.NewRating(req.Rating); err != nil {
		return nil, err
	}
	if _, err := domreview.NewComment(req.Comment); err != nil {
		return nil, err
	}

	var created *domreview.Review
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := loadBooking(ctx, tx, req.BookingID)
		if derr != nil {
			return derr
		}

		exists, derr := tx.Reads().ReviewExistsForBooking(ctx, b.ID())
		if derr != nil {
			return derr
		}
		derr = domreview.CheckEligibility(domreview.EligibilityInput{
			ActorID:       actor.ID,
			CustomerID:    b.CustomerID(),
			BookingStatus: b.Status(),
			AlreadyExists: exists,
		})
		if derr != nil {
			return derr
		}

		rev, derr := domreview.NewReview(domreview.NewReviewInput{
			BookingID:   b.ID(),
			ServiceID:   b.ServiceID(),
			CustomerID:  actor.ID,
			DecoratorID: b.DecoratorID(),
			Rating:      req.Rating,
			Comment:     req.Comment,
		}, uc.clock.Now())
		if derr != nil {
			return derr
		}

		if derr = tx.Reviews().Create(ctx, rev); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return domreview.ErrReviewAlreadyExists
			}
			return derr
		}
		created = rev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
