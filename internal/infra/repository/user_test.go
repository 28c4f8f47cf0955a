//go:build unit

package repository

import (
	"context"
	"testing"

	"decor-booking/internal/domain/user"
	"decor-booking/internal/infra"
	"decor-booking/tests/common/builder"
	dbmock "decor-booking/tests/mock/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	u, err := builder.NewUserBuilder().WithEmail("repo@example.com").BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name     string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "duplicate email", mockErr: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindDuplicateKey},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(dbmock.MockDBTX)
			db.On("Exec", mock.Anything, insertUserSQL, mock.MatchedBy(func(args []interface{}) bool {
				return len(args) == 8 && args[0] == u.ID() && args[1] == "repo@example.com" && args[4] == "customer"
			})).Return(pgconn.NewCommandTag("INSERT 0 1"), tt.mockErr)

			err := NewUserRepository(db).Create(context.Background(), u)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestUpdateLastLogin(t *testing.T) {
	testUserID := uuid.New()

	tests := []struct {
		name     string
		tag      string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", tag: "UPDATE 1"},
		{name: "user missing", tag: "UPDATE 0", wantKind: infra.KindNotFound},
		{name: "database error", tag: "", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(dbmock.MockDBTX)
			db.On("Exec", mock.Anything, updateLastLoginSQL, []interface{}{testUserID}).
				Return(pgconn.NewCommandTag(tt.tag), tt.mockErr)

			err := NewUserRepository(db).UpdateLastLogin(context.Background(), testUserID)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestUserUpdateRoleAndSetActive(t *testing.T) {
	testUserID := uuid.New()

	tests := []struct {
		name     string
		sql      string
		args     []interface{}
		run      func(r *UserRepository) error
		tag      string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{
			name: "role: success",
			sql:  updateUserRoleSQL,
			args: []interface{}{testUserID, "decorator"},
			run: func(r *UserRepository) error {
				return r.UpdateRole(context.Background(), testUserID, user.RoleDecorator)
			},
			tag: "UPDATE 1",
		},
		{
			name: "role: user missing",
			sql:  updateUserRoleSQL,
			args: []interface{}{testUserID, "admin"},
			run: func(r *UserRepository) error {
				return r.UpdateRole(context.Background(), testUserID, user.RoleAdmin)
			},
			tag:      "UPDATE 0",
			wantKind: infra.KindNotFound,
		},
		{
			name: "active: success",
			sql:  setUserActiveSQL,
			args: []interface{}{testUserID, false},
			run: func(r *UserRepository) error {
				return r.SetActive(context.Background(), testUserID, false)
			},
			tag: "UPDATE 1",
		},
		{
			name: "active: database error",
			sql:  setUserActiveSQL,
			args: []interface{}{testUserID, true},
			run: func(r *UserRepository) error {
				return r.SetActive(context.Background(), testUserID, true)
			},
			mockErr:  assert.AnError,
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(dbmock.MockDBTX)
			db.On("Exec", mock.Anything, tt.sql, tt.args).Return(pgconn.NewCommandTag(tt.tag), tt.mockErr)

			err := tt.run(NewUserRepository(db))

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			db.AssertExpectations(t)
		})
	}
}
