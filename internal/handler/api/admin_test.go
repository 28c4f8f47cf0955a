//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/handler/api"
	resdto "decor-booking/internal/handler/dto/response"
	"decor-booking/internal/usecase/commands"
	"decor-booking/internal/usecase/queries"
	"decor-booking/tests/common/httptest"
	commandsmock "decor-booking/tests/mock/commands"
	queriesmock "decor-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserAdminCommands
	mockQueries  *queriesmock.MockAdminQueries
	actor        booking.Actor
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserAdminCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAdminQueries(s.mockCtrl)
	s.actor = booking.Actor{ID: uuid.New(), Role: user.RoleAdmin}

	h := api.NewAdminHandler(s.mockCommands, s.mockQueries)
	g := s.router.Group("/admin", fakeAuth(&s.actor))
	g.GET("/users", h.ListUsers)
	g.PUT("/users/:id/role", h.UpdateRole)
	g.PATCH("/users/:id/toggle-active", h.ToggleActive)
	g.GET("/analytics", h.Analytics)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AdminHandlerTestSuite) userView(id uuid.UUID, role string, active bool) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        id,
		Email:     "rahim@example.com",
		Name:      "Rahim Uddin",
		Role:      role,
		IsActive:  active,
		CreatedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
	}
}

func (s *AdminHandlerTestSuite) TestListUsers() {
	s.Run("success: filters are forwarded", func() {
		active := true
		want := queries.UserListFilter{Role: "decorator", IsActive: &active, Page: 2, Limit: 5}
		s.mockQueries.EXPECT().ListUsers(gomock.Any(), s.actor, want).Return(&queries.UserPage{
			Items:      []*queries.AuthorizedUserView{s.userView(uuid.New(), "decorator", true)},
			TotalCount: 6,
			TotalPages: 2,
			Page:       2,
			Limit:      5,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/users?role=decorator&isActive=true&page=2&limit=5", nil, bearer)

		var body resdto.UserListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(6), body.TotalCount)
		s.Equal(2, body.TotalPages)
		s.Require().Len(body.Users, 1)
		s.Equal("decorator", body.Users[0].Role)
		s.NotContains(rec.Body.String(), "password")
	})

	s.Run("success: empty list renders as array", func() {
		s.mockQueries.EXPECT().ListUsers(gomock.Any(), s.actor, queries.UserListFilter{}).
			Return(&queries.UserPage{Page: 1, Limit: 20}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/users", nil, bearer)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"users":[]`)
	})

	s.Run("error: 400 Bad Request on invalid query", func() {
		for _, q := range []string{"role=owner", "isActive=maybe", "limit=500"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/users?"+q, nil, bearer)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
		}
	})

	s.Run("error: 403 Forbidden for non-admins", func() {
		s.mockQueries.EXPECT().ListUsers(gomock.Any(), s.actor, gomock.Any()).Return(nil, booking.ErrAdminOnly)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/users", nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "only admins")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/users", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "User not authenticated")
	})
}

func (s *AdminHandlerTestSuite) TestUpdateRole() {
	id := uuid.New()
	url := "/admin/users/" + id.String() + "/role"

	s.Run("success: returns the updated user", func() {
		gomock.InOrder(
			s.mockCommands.EXPECT().UpdateRole(gomock.Any(), s.actor, id, "decorator").Return(nil),
			s.mockQueries.EXPECT().GetUser(gomock.Any(), s.actor, id).Return(s.userView(id, "decorator", true), nil),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"role": "decorator"}, bearer)

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id, body.ID)
		s.Equal("decorator", body.Role)
	})

	s.Run("error: 400 Bad Request on invalid body", func() {
		for _, body := range []map[string]any{{}, {"role": "owner"}} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, bearer)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		}
	})

	s.Run("error: 400 Bad Request on invalid ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/users/nope/role", map[string]any{"role": "admin"}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid user ID")
	})

	s.Run("error: use case failures", func() {
		tests := []struct {
			name           string
			err            error
			expectedStatus int
		}{
			{name: "self modification", err: commands.ErrCannotModifySelf, expectedStatus: http.StatusBadRequest},
			{name: "unknown user", err: commands.ErrUserNotFound, expectedStatus: http.StatusNotFound},
			{name: "not admin", err: booking.ErrAdminOnly, expectedStatus: http.StatusForbidden},
		}
		for _, tt := range tests {
			s.Run(tt.name, func() {
				s.mockCommands.EXPECT().UpdateRole(gomock.Any(), s.actor, id, "admin").Return(tt.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"role": "admin"}, bearer)

				httptest.AssertErrorResponse(s.T(), rec, tt.expectedStatus, tt.err.Error())
			})
		}
	})
}

func (s *AdminHandlerTestSuite) TestToggleActive() {
	id := uuid.New()
	url := "/admin/users/" + id.String() + "/toggle-active"

	s.Run("success: returns the new state", func() {
		gomock.InOrder(
			s.mockCommands.EXPECT().ToggleActive(gomock.Any(), s.actor, id).Return(false, nil),
			s.mockQueries.EXPECT().GetUser(gomock.Any(), s.actor, id).Return(s.userView(id, "customer", false), nil),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, bearer)

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.IsActive)
	})

	s.Run("error: 404 Not Found", func() {
		s.mockCommands.EXPECT().ToggleActive(gomock.Any(), s.actor, id).Return(false, commands.ErrUserNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})

	s.Run("error: 400 Bad Request on invalid ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/admin/users/123/toggle-active", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid user ID")
	})
}

func (s *AdminHandlerTestSuite) TestAnalytics() {
	s.Run("success: amounts in currency units", func() {
		s.mockQueries.EXPECT().Analytics(gomock.Any(), s.actor).Return(&queries.Analytics{
			TotalBookings:    3,
			BookingsByStatus: map[string]int64{"pending": 1, "completed": 2},
			UsersByRole:      map[string]int64{"customer": 5, "decorator": 2, "admin": 1},
			PaidCents:        1525050,
			RefundedCents:    10000,
			Revenue: []queries.MonthlyRevenue{
				{Month: "2026-02"},
				{Month: "2026-03", RevenueCents: 1525050, Bookings: 2},
			},
			Currency: "BDT",
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/analytics", nil, bearer)

		var body resdto.AnalyticsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(3), body.TotalBookings)
		s.Equal(int64(2), body.BookingsByStatus["completed"])
		s.Equal(int64(2), body.UsersByRole["decorator"])
		s.InDelta(15250.50, body.TotalRevenue, 1e-9)
		s.InDelta(100.0, body.TotalRefunded, 1e-9)
		s.Require().Len(body.MonthlyRevenue, 2)
		s.Equal("2026-03", body.MonthlyRevenue[1].Month)
		s.InDelta(15250.50, body.MonthlyRevenue[1].Revenue, 1e-9)
		s.Equal("BDT", body.Currency)
	})

	s.Run("error: 403 Forbidden", func() {
		s.mockQueries.EXPECT().Analytics(gomock.Any(), s.actor).Return(nil, booking.ErrAdminOnly)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/analytics", nil, bearer)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})
}
