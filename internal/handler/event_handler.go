package handler

import (
	"net/http"

	"meetingbot/internal/service"

	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	eventService service.EventService
	authHandler  *AuthHandler
	logger       echo.Logger
}

func NewEventHandler(eventService service.EventService, authHandler *AuthHandler, logger echo.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		authHandler:  authHandler,
		logger:       logger,
	}
}

// GetEvents retrieves all booked events for the authenticated user
func (h *EventHandler) GetEvents(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	events, err := h.eventService.GetEventsByUser(c.Request().Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to get events:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get events",
		})
	}

	return c.JSON(http.StatusOK, events)
}

// ConfirmEvent marks a booked event as confirmed by the attendee
func (h *EventHandler) ConfirmEvent(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	event, err := h.eventService.ConfirmEvent(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		h.logger.Error("Failed to confirm event:", err)
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Event not found",
		})
	}

	return c.JSON(http.StatusOK, event)
}

// CancelEvent marks a booked event as cancelled
func (h *EventHandler) CancelEvent(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	event, err := h.eventService.CancelEvent(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		h.logger.Error("Failed to cancel event:", err)
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Event not found",
		})
	}

	return c.JSON(http.StatusOK, event)
}
