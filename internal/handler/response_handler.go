package handler

import (
	"errors"
	"net/http"
	"time"

	"meetingbot/internal/model"
	"meetingbot/internal/service"

	"github.com/labstack/echo/v4"
)

type ResponseHandler struct {
	responseService service.ResponseService
	authHandler     *AuthHandler
	logger          echo.Logger
}

func NewResponseHandler(responseService service.ResponseService, authHandler *AuthHandler, logger echo.Logger) *ResponseHandler {
	return &ResponseHandler{
		responseService: responseService,
		authHandler:     authHandler,
		logger:          logger,
	}
}

// GetResponses retrieves all scheduled responses for the authenticated user
func (h *ResponseHandler) GetResponses(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	responses, err := h.responseService.GetResponsesByUser(c.Request().Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to get responses:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get responses",
		})
	}

	return c.JSON(http.StatusOK, responses)
}

// GetResponse retrieves a single scheduled response
func (h *ResponseHandler) GetResponse(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	response, err := h.responseService.GetResponse(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Response not found",
		})
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateResponse edits the text, slots or send time of a pending response
func (h *ResponseHandler) UpdateResponse(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	var req struct {
		Subject     string           `json:"subject"`
		Body        string           `json:"body"`
		Slots       []model.TimeSlot `json:"slots"`
		ScheduledAt time.Time        `json:"scheduled_at"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	response, err := h.responseService.UpdateResponse(
		c.Request().Context(), c.Param("id"), user.ID,
		req.Subject, req.Body, req.Slots, req.ScheduledAt, user.Email,
	)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "Response can no longer be edited",
			})
		}
		h.logger.Error("Failed to update response:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update response",
		})
	}

	return c.JSON(http.StatusOK, response)
}

// CancelResponse withdraws a response before it is sent
func (h *ResponseHandler) CancelResponse(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	if err := h.responseService.CancelResponse(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		if errors.Is(err, model.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "Response can no longer be cancelled",
			})
		}
		h.logger.Error("Failed to cancel response:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to cancel response",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Response cancelled",
	})
}

// RescheduleResponse moves the send time, or revives a failed response
func (h *ResponseHandler) RescheduleResponse(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	var req struct {
		ScheduledAt time.Time `json:"scheduled_at"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	if req.ScheduledAt.IsZero() {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "scheduled_at is required",
		})
	}

	response, err := h.responseService.RescheduleResponse(c.Request().Context(), c.Param("id"), user.ID, req.ScheduledAt)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "Response cannot be rescheduled",
			})
		}
		h.logger.Error("Failed to reschedule response:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to reschedule response",
		})
	}

	return c.JSON(http.StatusOK, response)
}
