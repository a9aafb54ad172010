package router

import (
	"net/http"

	"meetingbot/internal/handler"
	"meetingbot/internal/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRoutes(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	responseHandler *handler.ResponseHandler,
	eventHandler *handler.EventHandler,
	jobHandler *handler.JobHandler,
) {
	// Public routes
	e.GET("/auth/:provider", authHandler.BeginAuthHandler)
	e.GET("/auth/:provider/callback", authHandler.CallbackHandler)
	e.GET("/auth/logout", authHandler.LogoutHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Protected API routes
	protected := e.Group("/api")
	protected.Use(middleware.AuthMiddleware(authHandler))

	protected.GET("/me", authHandler.Me)

	// Scheduled response routes
	protected.GET("/responses", responseHandler.GetResponses)
	protected.GET("/responses/:id", responseHandler.GetResponse)
	protected.PUT("/responses/:id", responseHandler.UpdateResponse)
	protected.DELETE("/responses/:id", responseHandler.CancelResponse)
	protected.POST("/responses/:id/reschedule", responseHandler.RescheduleResponse)

	// Booked event routes
	protected.GET("/events", eventHandler.GetEvents)
	protected.POST("/events/:id/confirm", eventHandler.ConfirmEvent)
	protected.POST("/events/:id/cancel", eventHandler.CancelEvent)

	// Background job routes
	protected.GET("/jobs", jobHandler.GetJobs)
	protected.POST("/jobs/:name/run", jobHandler.RunJob)
	protected.GET("/stats", jobHandler.GetStats)
}
