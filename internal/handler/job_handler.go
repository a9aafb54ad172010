package handler

import (
	"net/http"
	"time"

	"meetingbot/internal/repository"
	"meetingbot/internal/scheduler"

	"github.com/labstack/echo/v4"
)

// JobHandler exposes the background job runners for inspection and
// manual triggering.
type JobHandler struct {
	runners      map[string]*scheduler.Runner
	emailRepo    repository.EmailRecordRepository
	responseRepo repository.ScheduledResponseRepository
	authHandler  *AuthHandler
	logger       echo.Logger
}

func NewJobHandler(runners []*scheduler.Runner, emailRepo repository.EmailRecordRepository, responseRepo repository.ScheduledResponseRepository, authHandler *AuthHandler, logger echo.Logger) *JobHandler {
	byName := make(map[string]*scheduler.Runner, len(runners))
	for _, r := range runners {
		byName[r.Name()] = r
	}
	return &JobHandler{
		runners:      byName,
		emailRepo:    emailRepo,
		responseRepo: responseRepo,
		authHandler:  authHandler,
		logger:       logger,
	}
}

// GetJobs reports the status of every registered runner
func (h *JobHandler) GetJobs(c echo.Context) error {
	if _, err := h.authHandler.GetCurrentUser(c); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	type jobStatus struct {
		Name      string `json:"name"`
		Interval  string `json:"interval"`
		IsRunning bool   `json:"is_running"`
	}

	statuses := make([]jobStatus, 0, len(h.runners))
	for _, r := range h.runners {
		statuses = append(statuses, jobStatus{
			Name:      r.Name(),
			Interval:  r.Interval().String(),
			IsRunning: r.IsRunning(),
		})
	}

	return c.JSON(http.StatusOK, statuses)
}

// RunJob triggers a runner outside its normal schedule
func (h *JobHandler) RunJob(c echo.Context) error {
	if _, err := h.authHandler.GetCurrentUser(c); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	name := c.Param("name")
	runner, ok := h.runners[name]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Unknown job",
		})
	}

	if !runner.TriggerNow() {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "Job already running",
		})
	}

	h.logger.Info("Manually triggered job:", name)
	return c.JSON(http.StatusAccepted, map[string]string{
		"message": "Job triggered",
	})
}

// GetStats reports processing counts for the authenticated user over the
// last 24 hours
func (h *JobHandler) GetStats(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	since := time.Now().Add(-24 * time.Hour)
	ctx := c.Request().Context()

	emailCounts, err := h.emailRepo.CountByStatusSince(ctx, user.ID, since)
	if err != nil {
		h.logger.Error("Failed to count emails:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to compute stats",
		})
	}

	responseCounts, err := h.responseRepo.CountByStatusSince(ctx, user.ID, since)
	if err != nil {
		h.logger.Error("Failed to count responses:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to compute stats",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"since":     since,
		"emails":    emailCounts,
		"responses": responseCounts,
	})
}
