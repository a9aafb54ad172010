package middleware

import (
	"net/http"

	"meetingbot/internal/handler"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware checks if the user is authenticated
func AuthMiddleware(authHandler *handler.AuthHandler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, err := authHandler.GetCurrentUser(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Unauthorized",
				})
			}

			return next(c)
		}
	}
}
