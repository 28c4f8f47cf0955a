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

var errInvalidBookingID = errs.Validation("Invalid booking ID")

type BookingHandler struct {
	cmds     commands.BookingCommands
	payments commands.PaymentCommands
	q        queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, payments commands.PaymentCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, payments: payments, q: q}
}

// @Summary Create booking
// @Description Book a decoration service for a future event
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Unauthorized(c, errUnauthenticated, "User not authenticated")
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	b, err := h.cmds.Create(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.renderBooking(c, http.StatusCreated, b.ID())
}

// @Summary List bookings
// @Description Customers see their own bookings, decorators their assignments, admins everything
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Booking status"
// @Param customerId query string false "Customer ID (admin only)"
// @Param decoratorId query string false "Decorator ID (admin only)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Unauthorized(c, errUnauthenticated, "User not authenticated")
		return
	}
	var query reqdto.BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, err, "Invalid query parameters")
		return
	}

	page, err := h.q.List(c.Request.Context(), actor, query.ToFilter())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Check decorator availability
// @Description A decorator is unavailable on a day holding a confirmed, assigned or in-progress booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param decoratorId query string true "Decorator ID"
// @Param date query string true "YYYY-MM-DD or RFC3339"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /api/bookings/availability [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.BadRequest(c, err, "decoratorId and date are required")
		return
	}
	decoratorID, err := uuid.Parse(query.DecoratorID)
	if err != nil {
		httperr.BadRequest(c, err, "Invalid decorator ID")
		return
	}

	availability, err := h.q.CheckAvailability(c.Request.Context(), decoratorID, query.Date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(availability))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, id, ok := actorAndBookingID(c)
	if !ok {
		return
	}

	v, err := h.q.Get(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(v))
}

// @Summary Get booking price summary
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingSummaryResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/summary [get]
func (h *BookingHandler) Summary(c *gin.Context) {
	actor, id, ok := actorAndBookingID(c)
	if !ok {
		return
	}

	s, err := h.q.Summary(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingSummary(s))
}

// @Summary Update booking status
// @Description Customers may only cancel their own bookings
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateStatusRequest true "Status change"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, id, ok := actorAndBookingID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	b, err := h.cmds.UpdateStatus(c.Request.Context(), id, actor, req.ToCommand())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.renderBooking(c, http.StatusOK, b.ID())
}

// @Summary Assign decorator
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AssignDecoratorRequest true "Decorator"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/assign [patch]
func (h *BookingHandler) AssignDecorator(c *gin.Context) {
	actor, id, ok := actorAndBookingID(c)
	if !ok {
		return
	}
	var req reqdto.AssignDecoratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	b, err := h.cmds.AssignDecorator(c.Request.Context(), id, req.DecoratorID, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.renderBooking(c, http.StatusOK, b.ID())
}

// @Summary Record payment status
// @Description Marking a pending booking paid also confirms it
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RecordPaymentRequest true "Payment status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/payment [patch]
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	actor, id, ok := actorAndBookingID(c)
	if !ok {
		return
	}
	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return
	}

	b, err := h.payments.RecordPayment(c.Request.Context(), id, actor, req.PaymentStatus)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.renderBooking(c, http.StatusOK, b.ID())
}

// renderBooking loads the joined view without the read guard; the write
// already authorized the caller.
func (h *BookingHandler) renderBooking(c *gin.Context, status int, id uuid.UUID) {
	v, err := h.q.GetByIDSystem(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(status, resdto.FromBookingView(v))
}

func actorAndBookingID(c *gin.Context) (actor booking.Actor, id uuid.UUID, ok bool) {
	actor, ok = middleware.GetActor(c)
	if !ok {
		httperr.Unauthorized(c, errUnauthenticated, "User not authenticated")
		return actor, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Respond(c, errInvalidBookingID)
		return actor, uuid.Nil, false
	}
	return actor, id, true
}
