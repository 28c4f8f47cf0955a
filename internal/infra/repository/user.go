package repository

import (
	"context"

	"decor-booking/internal/domain/user"
	"decor-booking/internal/infra"
	"decor-booking/internal/infra/db"

	"github.com/google/uuid"
)

const insertUserSQL = `INSERT INTO users (id, email, password_hash, name, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const updateLastLoginSQL = `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`

const updateUserRoleSQL = `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`

const setUserActiveSQL = `UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, insertUserSQL,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Name().Value(),
		u.Role().String(),
		u.IsActive(),
		u.CreatedAt(),
		u.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, updateLastLoginSQL, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role user.Role) error {
	tag, err := r.db.Exec(ctx, updateUserRoleSQL, userID, role.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update user role", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx, setUserActiveSQL, userID, active)
	if err != nil {
		return infra.WrapRepoErr("failed to update user status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
