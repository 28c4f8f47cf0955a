//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"decor-booking/internal/domain/user"
	"decor-booking/internal/pkg/errs"
	"decor-booking/internal/pkg/jwt"
	"decor-booking/internal/pkg/password"
	"decor-booking/internal/usecase/commands"
	"decor-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "password123"

type AuthCommandsSuite struct {
	suite.Suite
	f      *fixture
	jwtSvc *jwt.Service
	uc     commands.AuthCommands
	hash   string
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsSuite))
}

func (s *AuthCommandsSuite) SetupSuite() {
	hash, err := password.HashPasswordWithCost(testPassword, bcrypt.MinCost)
	s.Require().NoError(err)
	s.hash = hash
}

func (s *AuthCommandsSuite) SetupTest() {
	s.f = newFixture()
	s.jwtSvc = jwt.NewService("unit-test-secret", 15*time.Minute, time.Hour)
	s.uc = commands.NewAuthCommands(s.f.store, s.jwtSvc, s.f.clock)
}

func (s *AuthCommandsSuite) addLoginUser(b *builder.UserBuilder) uuid.UUID {
	actor := s.f.addUser(b.WithPasswordHash(s.hash))
	return actor.ID
}

func (s *AuthCommandsSuite) TestRegister() {
	ctx := context.Background()

	s.Run("success: always a customer", func() {
		id, err := s.uc.Register(ctx, commands.RegisterRequest{Email: "New.User@Example.com", Password: testPassword, Name: "New User"})
		s.Require().NoError(err)

		stored := s.f.store.User(id)
		s.Require().NotNil(stored)
		s.Equal("new.user@example.com", stored.Email)
		s.Equal("customer", stored.Role)
		s.True(stored.IsActive)
		s.NoError(password.ComparePassword(stored.PasswordHash, testPassword))
	})

	s.Run("error: email taken case-insensitively", func() {
		_, err := s.uc.Register(ctx, commands.RegisterRequest{Email: "CUSTOMER@example.com", Password: testPassword, Name: "Dup"})
		s.ErrorIs(err, commands.ErrEmailTaken)
	})

	s.Run("error: invalid input", func() {
		cases := []struct {
			name  string
			req   commands.RegisterRequest
			errIs error
		}{
			{name: "bad email", req: commands.RegisterRequest{Email: "nope", Password: testPassword, Name: "A"}, errIs: user.ErrInvalidEmail},
			{name: "short password", req: commands.RegisterRequest{Email: "a@example.com", Password: "short", Name: "A"}, errIs: user.ErrPasswordTooWeak},
			{name: "blank name", req: commands.RegisterRequest{Email: "a@example.com", Password: testPassword, Name: " "}, errIs: user.ErrInvalidName},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				_, err := s.uc.Register(ctx, tc.req)
				s.ErrorIs(err, tc.errIs)
				s.Equal("VALIDATION_ERROR", errs.Kind(err))
			})
		}
	})
}

func (s *AuthCommandsSuite) TestLogin() {
	ctx := context.Background()

	s.Run("success: issues access and refresh tokens", func() {
		id := s.addLoginUser(builder.NewUserBuilder().WithEmail("login@example.com").AsDecorator())

		res, err := s.uc.Login(ctx, commands.LoginRequest{Email: "LOGIN@example.com", Password: testPassword})
		s.Require().NoError(err)
		s.Equal(id, res.UserID)
		s.Equal(user.RoleDecorator, res.Role)

		access, err := s.jwtSvc.ValidateToken(res.TokenPair.AccessToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeAccess, access.TokenType)
		s.Equal(id, access.UserID)
		s.Equal("decorator", access.Role)

		refresh, err := s.jwtSvc.ValidateToken(res.TokenPair.RefreshToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeRefresh, refresh.TokenType)
	})

	s.Run("error: same error for unknown email and wrong password", func() {
		s.addLoginUser(builder.NewUserBuilder().WithEmail("known@example.com"))

		_, err := s.uc.Login(ctx, commands.LoginRequest{Email: "unknown@example.com", Password: testPassword})
		s.ErrorIs(err, commands.ErrInvalidCredentials)

		_, err = s.uc.Login(ctx, commands.LoginRequest{Email: "known@example.com", Password: "wrong-password"})
		s.ErrorIs(err, commands.ErrInvalidCredentials)

		_, err = s.uc.Login(ctx, commands.LoginRequest{Email: "not-an-email", Password: testPassword})
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: inactive user with correct password", func() {
		s.addLoginUser(builder.NewUserBuilder().WithEmail("inactive@example.com").AsInactive())

		_, err := s.uc.Login(ctx, commands.LoginRequest{Email: "inactive@example.com", Password: testPassword})
		s.ErrorIs(err, commands.ErrUserInactive)

		_, err = s.uc.Login(ctx, commands.LoginRequest{Email: "inactive@example.com", Password: "wrong-password"})
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})
}

func (s *AuthCommandsSuite) TestRefreshToken() {
	ctx := context.Background()

	s.Run("success: role is re-read from the store", func() {
		id := s.f.admin.ID
		token, err := s.jwtSvc.GenerateRefreshToken(id, user.RoleCustomer)
		s.Require().NoError(err)

		pair, err := s.uc.RefreshToken(ctx, token)
		s.Require().NoError(err)
		claims, err := s.jwtSvc.ValidateToken(pair.AccessToken)
		s.Require().NoError(err)
		s.Equal("admin", claims.Role)
	})

	s.Run("error: access token cannot refresh", func() {
		token, err := s.jwtSvc.GenerateAccessToken(s.f.customer.ID, user.RoleCustomer)
		s.Require().NoError(err)
		_, err = s.uc.RefreshToken(ctx, token)
		s.ErrorIs(err, commands.ErrTokenValidation)
	})

	s.Run("error: garbage token", func() {
		_, err := s.uc.RefreshToken(ctx, "not-a-jwt")
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("error: unknown user", func() {
		token, err := s.jwtSvc.GenerateRefreshToken(uuid.New(), user.RoleCustomer)
		s.Require().NoError(err)
		_, err = s.uc.RefreshToken(ctx, token)
		s.ErrorIs(err, commands.ErrTokenValidation)
	})

	s.Run("error: deactivated user", func() {
		id := s.addLoginUser(builder.NewUserBuilder().WithEmail("later-inactive@example.com").AsInactive())
		token, err := s.jwtSvc.GenerateRefreshToken(id, user.RoleCustomer)
		s.Require().NoError(err)
		_, err = s.uc.RefreshToken(ctx, token)
		s.ErrorIs(err, commands.ErrUserInactive)
	})
}
