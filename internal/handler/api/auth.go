package api

import (
	"errors"
	"net/http"

	reqdto "mokka-api/internal/handler/dto/request"
	resdto "mokka-api/internal/handler/dto/response"
	"mokka-api/internal/handler/middleware"
	"mokka-api/internal/pkg/config"
	"mokka-api/internal/pkg/cookie"
	"mokka-api/internal/pkg/jwt"
	"mokka-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase commands.AuthCommands
	cfg         config.Config
}

func NewAuthHandler(authUseCase commands.AuthCommands, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cfg:         cfg,
	}
}

// @Summary Admin login
// @Description Authenticate the admin account and set a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	token, err := h.authUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	cookie.SetSessionCookie(c, h.cfg.Cookie, token, h.cfg.JWT.Duration)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		Username: req.Username,
		Role:     jwt.RoleAdmin,
	})
}

// @Summary Admin logout
// @Tags auth
// @Produce json
// @Success 200 {object} resdto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearSessionCookie(c, h.cfg.Cookie)
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Logged out"})
}

// @Summary Current admin
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.LoginResponse{
		Username: middleware.GetAdminUsername(c),
		Role:     jwt.RoleAdmin,
	})
}
