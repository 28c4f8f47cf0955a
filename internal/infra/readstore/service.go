package readstore

import (
	"context"

	"decor-booking/internal/infra"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/pkg/pgconv"
	"decor-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

const findServiceSQL = `SELECT id, name, category, cost_cents, unit, is_active FROM services WHERE id = $1`

type ServiceReadStore struct {
	db db.DBTX
}

func NewServiceReadStore(db db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{db: db}
}

func (r *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	var v queries.ServiceView
	err := r.db.QueryRow(ctx, findServiceSQL, id).Scan(&v.ID, &v.Name, &v.Category, &v.CostCents, &v.Unit, &v.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}
	return &v, nil
}
