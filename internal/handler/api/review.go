package api

import (
	"net/http"

	reqdto "decor-booking/internal/handler/dto/request"
	resdto "decor-booking/internal/handler/dto/response"
	"decor-booking/internal/handler/httperr"
	"decor-booking/internal/handler/middleware"
	"decor-booking/internal/usecase/commands"
	"decor-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	cmds commands.ReviewCommands
	q    queries.ReviewQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, q queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{cmds: cmds, q: q}
}

// @Summary Create review
// @Description Review a completed booking; one review per booking
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReviewRequest true "Create review request"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Unauthorized(c, errUnauthenticated, "User not authenticated")
		return
	}
	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	rev, err := h.cmds.CreateReview(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReview(rev))
}

// @Summary List my reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReviewListResponse
// @Failure 401 {object} httperr.Response
// @Router /api/reviews/me [get]
func (h *ReviewHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Unauthorized(c, errUnauthenticated, "User not authenticated")
		return
	}

	list, err := h.q.ListMine(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewList(list))
}

// @Summary List service reviews
// @Tags reviews
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.ReviewListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/services/{id}/reviews [get]
func (h *ReviewHandler) ListByService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid service ID")
		return
	}

	list, err := h.q.ListByService(c.Request.Context(), serviceID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewList(list))
}

// @Summary List decorator reviews
// @Tags reviews
// @Produce json
// @Param id path string true "Decorator ID"
// @Success 200 {object} resdto.ReviewListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/decorators/{id}/reviews [get]
func (h *ReviewHandler) ListByDecorator(c *gin.Context) {
	decoratorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid decorator ID")
		return
	}

	list, err := h.q.ListByDecorator(c.Request.Context(), decoratorID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewList(list))
}
