package api

import (
	"net/http"

	"decor-booking/internal/domain/booking"
	reqdto "decor-booking/internal/handler/dto/request"
	resdto "decor-booking/internal/handler/dto/response"
	"decor-booking/internal/handler/httperr"
	"decor-booking/internal/handler/middleware"
	"decor-booking/internal/pkg/errs"
	"decor-booking/internal/usecase/commands"
	"decor-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidUserID = errs.Validation("Invalid user ID")

type AdminHandler struct {
	cmds commands.UserAdminCommands
	q    queries.AdminQueries
}

func NewAdminHandler(cmds commands.UserAdminCommands, q queries.AdminQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q}
}

// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "customer, decorator or admin"
// @Param isActive query bool false "Filter by account state"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} resdto.UserListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Unauthorized(c, errUnauthenticated, "User not authenticated")
		return
	}
	var query reqdto.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}

	page, err := h.q.ListUsers(c.Request.Context(), actor, query.ToFilter())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserPage(page))
}

// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body reqdto.UpdateRoleRequest true "New role"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Unauthorized(c, errUnauthenticated, "User not authenticated")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Respond(c, errInvalidUserID)
		return
	}
	var req reqdto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	if err := h.cmds.UpdateRole(c.Request.Context(), actor, id, req.Role); err != nil {
		httperr.Respond(c, err)
		return
	}
	h.respondUser(c, actor, id)
}

// @Summary Activate or deactivate a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/users/{id}/toggle-active [patch]
func (h *AdminHandler) ToggleActive(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Unauthorized(c, errUnauthenticated, "User not authenticated")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Respond(c, errInvalidUserID)
		return
	}

	if _, err := h.cmds.ToggleActive(c.Request.Context(), actor, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	h.respondUser(c, actor, id)
}

// @Summary Booking and revenue analytics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AnalyticsResponse
// @Failure 403 {object} httperr.Response
// @Router /api/admin/analytics [get]
func (h *AdminHandler) Analytics(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Unauthorized(c, errUnauthenticated, "User not authenticated")
		return
	}

	a, err := h.q.Analytics(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAnalytics(a))
}

func (h *AdminHandler) respondUser(c *gin.Context, actor booking.Actor, id uuid.UUID) {
	v, err := h.q.GetUser(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserView(v))
}
