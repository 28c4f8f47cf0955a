//go:build unit

package queries_test

import (
	"context"
	"testing"

	"decor-booking/internal/infra"
	"decor-booking/internal/usecase/queries"
	"decor-booking/tests/common/builder"
	queriesmock "decor-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetCurrentUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		stored  *queries.AuthorizedUserView
		repoErr error
		wantErr error
	}{
		{name: "active user", stored: builder.NewUserBuilder().BuildReadModel()},
		{name: "decorator", stored: builder.NewUserBuilder().AsDecorator().BuildReadModel()},
		{name: "inactive user", stored: builder.NewUserBuilder().AsInactive().BuildReadModel(), wantErr: queries.ErrUserInactive},
		{name: "missing user", repoErr: infra.WrapRepoErr("user not found", nil, infra.KindNotFound), wantErr: queries.ErrUserNotFound},
		{name: "store failure", repoErr: assert.AnError, wantErr: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockUserReadStore(ctrl)
			id := uuid.New()
			if tt.stored != nil {
				id = tt.stored.ID
			}
			store.EXPECT().FindByID(gomock.Any(), id).Return(tt.stored, tt.repoErr)

			got, err := queries.NewUserQueries(store).GetCurrentUser(ctx, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stored, got)
		})
	}
}
