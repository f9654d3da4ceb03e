package handler

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mokka-api/internal/handler/api"
	"mokka-api/internal/handler/middleware"
	"mokka-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return hhmmPattern.MatchString(fl.Field().String())
		})
	}
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	rsvpHandler *api.RSVPHandler,
	eventHandler *api.EventHandler,
	catalogHandler *api.CatalogHandler,
	leadHandler *api.LeadHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	registerValidators()
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, rsvpHandler, eventHandler, catalogHandler, leadHandler, authMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	rsvpHandler *api.RSVPHandler,
	eventHandler *api.EventHandler,
	catalogHandler *api.CatalogHandler,
	leadHandler *api.LeadHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/events", Handler: eventHandler.List},
			{Method: http.MethodGet, Path: "/events/:id", Handler: eventHandler.Get},
			{Method: http.MethodGet, Path: "/menu", Handler: catalogHandler.Menu},
			{Method: http.MethodGet, Path: "/hours", Handler: catalogHandler.Hours},
			{Method: http.MethodGet, Path: "/settings", Handler: catalogHandler.Settings},
			{Method: http.MethodPost, Path: "/leads", Handler: leadHandler.Create},
		})

		rsvp := apiGroup.Group("/rsvp")
		{
			addRoutes(rsvp, []route{
				{Method: http.MethodPost, Path: "", Handler: rsvpHandler.Create},
				{Method: http.MethodPost, Path: "/resolve", Handler: rsvpHandler.Resolve},
				{Method: http.MethodPost, Path: "/modify", Handler: rsvpHandler.SelfModify},
				{Method: http.MethodPost, Path: "/cancel", Handler: rsvpHandler.SelfCancelAll},
				// Throttled: each request costs an outbound email.
				{Method: http.MethodPost, Path: "/verify/request", Handler: rsvpHandler.RequestVerification, Mw: []gin.HandlerFunc{rateLimiter.Limit("verify")}},
				{Method: http.MethodPost, Path: "/verify/cancel", Handler: rsvpHandler.VerifiedCancel},
				{Method: http.MethodPost, Path: "/verify/modify", Handler: rsvpHandler.VerifiedModify},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/events", Handler: eventHandler.Create},
				{Method: http.MethodPut, Path: "/events/:id", Handler: eventHandler.Update},
				{Method: http.MethodDelete, Path: "/events/:id", Handler: eventHandler.Delete},

				{Method: http.MethodGet, Path: "/rsvps", Handler: rsvpHandler.AdminList},
				{Method: http.MethodGet, Path: "/rsvps/summary", Handler: rsvpHandler.AdminSummary},
				{Method: http.MethodPut, Path: "/rsvps/:id", Handler: rsvpHandler.AdminUpdate},
				{Method: http.MethodDelete, Path: "/rsvps/:id", Handler: rsvpHandler.AdminDelete},

				{Method: http.MethodPost, Path: "/menu", Handler: catalogHandler.CreateMenuItem},
				{Method: http.MethodPut, Path: "/menu/:id", Handler: catalogHandler.UpdateMenuItem},
				{Method: http.MethodDelete, Path: "/menu/:id", Handler: catalogHandler.DeleteMenuItem},

				{Method: http.MethodPut, Path: "/hours", Handler: catalogHandler.ReplaceWeek},
				{Method: http.MethodPost, Path: "/holidays", Handler: catalogHandler.AddHoliday},
				{Method: http.MethodDelete, Path: "/holidays/:id", Handler: catalogHandler.RemoveHoliday},
				{Method: http.MethodPut, Path: "/settings", Handler: catalogHandler.SetSetting},

				{Method: http.MethodGet, Path: "/leads", Handler: leadHandler.List},
				{Method: http.MethodGet, Path: "/leads/export", Handler: leadHandler.Export},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
