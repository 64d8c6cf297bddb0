package handler

import (
	"vending-machine/internal/adapter/http/middleware"
	redisStore "vending-machine/internal/adapter/storage/redis"
	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Inventory      ports.InventoryReader
	Coins          []domain.Denomination
	HealthCheckers []ports.HealthChecker
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	RateLimit      int64                      // requests per client per minute
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine of the read-only status server.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	v1 := r.Group("/api/v1")
	if deps.RateLimitStore != nil && deps.RateLimit > 0 {
		v1.Use(middleware.RateLimiter(deps.RateLimitStore, "status", middleware.PerMinute(deps.RateLimit), deps.Logger))
	}

	itemHandler := NewItemHandler(deps.Inventory)
	items := v1.Group("/items")
	{
		items.GET("", itemHandler.List)
		items.GET("/:name", itemHandler.Get)
	}

	coinHandler := NewCoinHandler(deps.Coins)
	v1.GET("/coins", coinHandler.List)

	return r
}
