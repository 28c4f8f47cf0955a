package request

import "decor-booking/internal/usecase/queries"

type UserListQuery struct {
	Role     string `form:"role" binding:"omitempty,oneof=customer decorator admin"`
	IsActive *bool  `form:"isActive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q *UserListQuery) ToFilter() queries.UserListFilter {
	return queries.UserListFilter{Role: q.Role, IsActive: q.IsActive, Page: q.Page, Limit: q.Limit}
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=customer decorator admin"`
}
