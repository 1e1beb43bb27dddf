package handlers

import (
	"eksporyuk-api/internal/core/services"
	"eksporyuk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CronHandler exposes scheduled jobs to an external scheduler.
// Routes using it must sit behind the CronAuth middleware.
type CronHandler struct {
	locker services.AccessLocker
}

// NewCronHandler creates a new cron handler
func NewCronHandler(locker services.AccessLocker) *CronHandler {
	return &CronHandler{
		locker: locker,
	}
}

// LockExpired handles the lock-expired sweep trigger
// @Summary Lock expired access
// @Description Lock all expired membership grants and course enrollments
// @Tags Cron
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /cron/lock-expired [post]
func (h *CronHandler) LockExpired(c *fiber.Ctx) error {
	result, err := h.locker.LockExpired(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to run lock sweep")
	}

	return response.Success(c, "Lock sweep completed", result)
}
