//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"decor-booking/internal/domain/booking"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/handler/api"
	resdto "decor-booking/internal/handler/dto/response"
	"decor-booking/internal/pkg/config"
	"decor-booking/internal/pkg/cookie"
	"decor-booking/internal/pkg/errs"
	"decor-booking/internal/pkg/jwt"
	"decor-booking/internal/usecase/commands"
	"decor-booking/internal/usecase/queries"
	"decor-booking/tests/common/builder"
	"decor-booking/tests/common/httptest"
	"decor-booking/tests/common/testutil"
	commandsmock "decor-booking/tests/mock/commands"
	queriesmock "decor-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	actor        booking.Actor
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.actor = booking.Actor{ID: uuid.New(), Role: user.RoleCustomer}

	jwtService := jwt.NewService("unit-test-secret", 15*time.Minute, time.Hour)
	h := api.NewAuthHandler(s.mockCommands, s.mockQueries, jwtService, config.NewTestConfig())

	s.router.POST("/auth/register", h.Register)
	s.router.POST("/auth/login", h.Login)
	s.router.POST("/auth/refresh", h.Refresh)
	s.router.POST("/auth/logout", fakeAuth(&s.actor), h.Logout)
	s.router.GET("/auth/me", fakeAuth(&s.actor), h.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func tokenPair() *commands.TokenPair {
	return &commands.TokenPair{AccessToken: "test-jwt-token", RefreshToken: "test-refresh-token"}
}

// ================================================================================
// TestRegister
// ================================================================================

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	ab := builder.NewAuthBuilder()
	reqBody := ab.BuildRegisterDTO()

	s.Run("success: returns 201 Created with the new id", func() {
		id := uuid.New()
		want := commands.RegisterRequest{Email: ab.Email, Password: ab.Password, Name: ab.Name}
		s.mockCommands.EXPECT().Register(gomock.Any(), want).Return(id, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.RegisterResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(id, body.ID)
	})

	s.Run("error: 400 Bad Request on binding errors", func() {
		cases := []testCaseAuth{
			{name: "invalid email", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "password boundary invalid (7 chars)", mutate: testutil.Field("password", "passwor"), expectCode: http.StatusBadRequest},
			{name: "missing field: name (required)", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request format")
			})
		}
	})

	s.Run("error: 400 Bad Request when the email is taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(uuid.Nil, commands.ErrEmailTaken)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Email already registered")
	})
}

// ================================================================================
// TestLogin
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()
	returnUser := builder.NewUserBuilder().BuildReadModel()

	s.Run("success: returns tokens, user and cookies", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), builder.NewAuthBuilder().BuildCommand()).
			Return(&commands.LoginResult{UserID: returnUser.ID, Role: user.RoleCustomer, TokenPair: tokenPair()}, nil)
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), returnUser.ID).Return(returnUser, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("test-jwt-token", response.AccessToken)
		s.Equal("test-refresh-token", response.RefreshToken)
		s.Equal(returnUser.Email, response.User.Email)
		s.Equal("customer", response.User.Role)

		access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Equal("test-jwt-token", access.Value)
		s.True(access.HttpOnly)
		s.Equal(int((15 * time.Minute).Seconds()), access.MaxAge)

		refresh := httptest.ExtractCookie(rec, cookie.RefreshTokenCookieName)
		s.Require().NotNil(refresh)
		s.Equal(int(time.Hour.Seconds()), refresh.MaxAge)
	})

	s.Run("error: 400 Bad Request on binding errors", func() {
		cases := []testCaseAuth{
			{name: "email boundary invalid (invalid email)", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "empty password", mutate: testutil.Field("password", ""), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "invalid credentials", commandsError: commands.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized, expectedMsg: "Invalid email or password"},
			{name: "inactive account", commandsError: commands.ErrUserInactive, expectedStatus: http.StatusForbidden, expectedMsg: "inactive"},
			{name: "token generation", commandsError: commands.ErrTokenGeneration, expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.Nil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
			})
		}
	})
}

// ================================================================================
// TestRefresh
// ================================================================================

func (s *AuthHandlerTestSuite) TestRefresh() {
	url := "/auth/refresh"

	s.Run("success: refresh cookie takes precedence", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "cookie-token").Return(tokenPair(), nil)

		cookies := []*http.Cookie{{Name: cookie.RefreshTokenCookieName, Value: "cookie-token"}}
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, url,
			map[string]string{"refreshToken": "body-token"}, cookies, "")

		var body resdto.TokenResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("test-jwt-token", body.AccessToken)
		s.NotNil(httptest.ExtractCookie(rec, cookie.RefreshTokenCookieName))
	})

	s.Run("success: token from body", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "body-token").Return(tokenPair(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{"refreshToken": "body-token"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Refresh token required")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "invalid token", commandsError: commands.ErrTokenValidation, expectedStatus: http.StatusUnauthorized, expectedMsg: "Invalid or expired refresh token"},
			{name: "wrapped validation failure", commandsError: errs.Mark(errors.New("token is expired"), commands.ErrTokenValidation), expectedStatus: http.StatusUnauthorized, expectedMsg: "Invalid or expired refresh token"},
			{name: "deactivated user", commandsError: commands.ErrUserInactive, expectedStatus: http.StatusForbidden, expectedMsg: "inactive"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "stale").Return(nil, tc.commandsError)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{"refreshToken": "stale"}, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestLogout / TestMe
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, bearer)

	s.Equal(http.StatusNoContent, rec.Code)
	access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
	s.Require().NotNil(access)
	s.Empty(access.Value)
	s.Negative(access.MaxAge)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success: returns the current user", func() {
		view := builder.NewUserBuilder().WithID(s.actor.ID).BuildReadModel()
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.actor.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, bearer)

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.Name, body.Name)
		s.True(body.IsActive)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "User not authenticated")
	})

	s.Run("error: 403 Forbidden for a deactivated account", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.actor.ID).Return(nil, queries.ErrUserInactive)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "user inactive")
	})
}
