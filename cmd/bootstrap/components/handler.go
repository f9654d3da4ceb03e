package components

import (
	"mokka-api/internal/handler"
	"mokka-api/internal/handler/api"
	"mokka-api/internal/handler/middleware"
	"mokka-api/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRSVPHandler,
		api.NewEventHandler,
		api.NewCatalogHandler,
		api.NewLeadHandler,
		middleware.NewAuthMiddleware,
		func(client *redis.Client, cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(client, cfg.Redis)
		},
	),
	fx.Invoke(handler.NewRouter),
)
