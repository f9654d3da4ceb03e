//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"mokka-api/internal/handler/api"
	resdto "mokka-api/internal/handler/dto/response"
	"mokka-api/internal/pkg/config"
	"mokka-api/internal/pkg/cookie"
	"mokka-api/internal/pkg/jwt"
	"mokka-api/internal/usecase/commands"
	"mokka-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// stubAuthCommands accepts one fixed credential pair.
type stubAuthCommands struct {
	username string
	password string
	token    string
}

func (s *stubAuthCommands) Login(_ context.Context, username, plainPassword string) (string, error) {
	if username != s.username || plainPassword != s.password {
		return "", commands.ErrInvalidCredentials
	}
	return s.token, nil
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	stub := &stubAuthCommands{username: "admin", password: "correct-horse", token: "test-jwt-token"}
	handler := api.NewAuthHandler(stub, config.NewTestConfig())

	s.router.POST("/auth/login", handler.Login)
	s.router.POST("/auth/logout", handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		c.Set("admin_username", "admin")
		handler.Me(c)
	})
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	s.Run("valid credentials set the session cookie", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login",
			map[string]any{"username": "admin", "password": "correct-horse"}, "")

		var body resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal("admin", body.Username)
		s.Equal(jwt.RoleAdmin, body.Role)

		sessionCookie := httptest.ExtractCookie(w, cookie.SessionCookieName)
		s.Require().NotNil(sessionCookie)
		s.Equal("test-jwt-token", sessionCookie.Value)
		s.True(sessionCookie.HttpOnly)
	})

	s.Run("wrong password", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login",
			map[string]any{"username": "admin", "password": "wrong"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid credentials")
	})

	s.Run("missing fields", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login",
			map[string]any{"username": "admin"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")

	var body resdto.MessageResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
	s.Equal("Logged out", body.Message)

	sessionCookie := httptest.ExtractCookie(w, cookie.SessionCookieName)
	s.Require().NotNil(sessionCookie)
	s.Empty(sessionCookie.Value)
	s.Negative(sessionCookie.MaxAge)
}

func (s *AuthHandlerTestSuite) TestMe() {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")

	var body resdto.LoginResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
	s.Equal("admin", body.Username)
	s.Equal(jwt.RoleAdmin, body.Role)
}
