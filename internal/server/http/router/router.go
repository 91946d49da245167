package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ordersvc/internal/server/http/dto"
	"github.com/polkiloo/ordersvc/internal/server/http/handlers"
	"github.com/polkiloo/ordersvc/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ServiceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/health", healthHandler.Health)

	orders := engine.Group("/api/orders")
	orders.POST("", middleware.CredentialRequired(), orderHandler.Create)
	orders.GET("/user/:userId", orderHandler.ListByUser)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/:id/events", orderHandler.Events)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)
	orders.POST("/:id/cancel", orderHandler.Cancel)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Fail("Route not found"))
	})

	return engine
}
