//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"

	"decor-booking/internal/domain/booking"
	domreview "decor-booking/internal/domain/review"
	"decor-booking/internal/pkg/errs"
	"decor-booking/internal/usecase/commands"
	"decor-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fixture, commands.ReviewCommands) {
		f := newFixture()
		return f, commands.NewReviewUseCase(f.store, f.clock)
	}

	t.Run("success: completed booking owned by the customer", func(t *testing.T) {
		f, uc := setup()
		decoratorID := f.decorator.ID
		seeded := f.seedBooking(func(b *builder.BookingBuilder) { b.AsCompleted().WithDecoratorID(decoratorID) })

		rev, err := uc.CreateReview(ctx, f.customer, commands.CreateReviewRequest{BookingID: seeded.ID(), Rating: 4, Comment: " Lovely "})
		require.NoError(t, err)
		assert.Equal(t, 4, rev.Rating().Value())
		assert.Equal(t, "Lovely", rev.Comment().String())
		assert.Equal(t, seeded.ServiceID(), rev.ServiceID())
		require.NotNil(t, rev.DecoratorID())
		assert.Equal(t, decoratorID, *rev.DecoratorID())
		assert.Equal(t, f.clock.Now(), rev.CreatedAt())
		assert.NotNil(t, f.store.ReviewFor(seeded.ID()))
	})

	t.Run("success: comment is optional", func(t *testing.T) {
		f, uc := setup()
		seeded := f.seedBooking(func(b *builder.BookingBuilder) { b.AsCompleted() })
		rev, err := uc.CreateReview(ctx, f.customer, commands.CreateReviewRequest{BookingID: seeded.ID(), Rating: 5})
		require.NoError(t, err)
		assert.Empty(t, rev.Comment().String())
		assert.Nil(t, rev.DecoratorID())
	})

	t.Run("error: one review per booking", func(t *testing.T) {
		f, uc := setup()
		seeded := f.seedBooking(func(b *builder.BookingBuilder) { b.AsCompleted() })
		req := commands.CreateReviewRequest{BookingID: seeded.ID(), Rating: 5}

		_, err := uc.CreateReview(ctx, f.customer, req)
		require.NoError(t, err)
		_, err = uc.CreateReview(ctx, f.customer, req)
		assert.ErrorIs(t, err, domreview.ErrReviewAlreadyExists)
	})

	t.Run("error: mapped failures", func(t *testing.T) {
		f, uc := setup()
		completed := f.seedBooking(func(b *builder.BookingBuilder) { b.AsCompleted() })
		pending := f.seedBooking(nil)
		stranger := f.addUser(builder.NewUserBuilder().WithEmail("stranger@example.com"))

		cases := []struct {
			name  string
			actor booking.Actor
			req   commands.CreateReviewRequest
			errIs error
			kind  string
		}{
			{
				name:  "rating out of range",
				actor: f.customer,
				req:   commands.CreateReviewRequest{BookingID: completed.ID(), Rating: 6},
				errIs: domreview.ErrInvalidRating,
				kind:  "VALIDATION_ERROR",
			},
			{
				name:  "comment too long",
				actor: f.customer,
				req:   commands.CreateReviewRequest{BookingID: completed.ID(), Rating: 3, Comment: strings.Repeat("c", domreview.MaxCommentLength+1)},
				errIs: domreview.ErrCommentTooLong,
				kind:  "VALIDATION_ERROR",
			},
			{
				name:  "unknown booking",
				actor: f.customer,
				req:   commands.CreateReviewRequest{BookingID: uuid.New(), Rating: 3},
				errIs: commands.ErrBookingNotFound,
				kind:  "NOT_FOUND",
			},
			{
				name:  "not the booking customer",
				actor: stranger,
				req:   commands.CreateReviewRequest{BookingID: pending.ID(), Rating: 3},
				errIs: domreview.ErrNotBookingCustomer,
				kind:  "FORBIDDEN",
			},
			{
				name:  "booking not completed",
				actor: f.customer,
				req:   commands.CreateReviewRequest{BookingID: pending.ID(), Rating: 3},
				errIs: domreview.ErrBookingNotCompleted,
				kind:  "VALIDATION_ERROR",
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := uc.CreateReview(ctx, tc.actor, tc.req)
				assert.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.kind, errs.Kind(err))
			})
		}
		assert.Nil(t, f.store.ReviewFor(completed.ID()))
	})
}
