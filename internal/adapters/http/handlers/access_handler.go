package handlers

import (
	"errors"
	"strconv"

	"eksporyuk-api/internal/core/services"
	"eksporyuk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccessHandler handles membership grant and course enrollment endpoints
type AccessHandler struct {
	accessService *services.AccessLockService
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(accessService *services.AccessLockService) *AccessHandler {
	return &AccessHandler{
		accessService: accessService,
	}
}

// ============================================================
// Membership Grants (Admin)
// ============================================================

// CreateGrantRequest represents create grant request body
type CreateGrantRequest struct {
	UserID       uint `json:"user_id"`
	MembershipID uint `json:"membership_id"`
}

// CreateGrant handles creating a membership grant (Admin only)
// @Summary Create membership grant
// @Description Grant a user access to a membership plan (Admin only)
// @Tags Access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateGrantRequest true "Grant data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/grants [post]
func (h *AccessHandler) CreateGrant(c *fiber.Ctx) error {
	var req CreateGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.UserID == 0 {
		return response.BadRequest(c, "User ID is required")
	}
	if req.MembershipID == 0 {
		return response.BadRequest(c, "Membership ID is required")
	}

	input := &services.CreateGrantInput{
		UserID:       req.UserID,
		MembershipID: req.MembershipID,
	}

	grant, err := h.accessService.CreateGrant(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrMembershipNotFound) {
			return response.NotFound(c, "Membership not found")
		}
		return response.InternalServerError(c, "Failed to create grant")
	}

	return response.Created(c, "Grant created successfully", fiber.Map{
		"grant": grant,
	})
}

// ListGrants handles listing membership grants (Admin only)
// @Summary List membership grants
// @Description Get a paginated list of membership grants (Admin only)
// @Tags Access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/grants [get]
func (h *AccessHandler) ListGrants(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	input := &services.ListGrantsInput{
		Page:  page,
		Limit: limit,
	}

	result, err := h.accessService.ListGrants(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list grants")
	}

	return response.Success(c, "Grants retrieved successfully", result)
}

// RestoreGrant handles restoring a locked grant (Admin only)
// @Summary Restore membership grant
// @Description Restore a locked membership grant to active (Admin only)
// @Tags Access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grant ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/grants/{id}/restore [post]
func (h *AccessHandler) RestoreGrant(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid grant ID")
	}

	grant, err := h.accessService.RestoreGrant(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGrantNotFound):
			return response.NotFound(c, "Grant not found")
		case errors.Is(err, services.ErrNotLocked):
			return response.BadRequest(c, "Grant is not locked")
		default:
			return response.InternalServerError(c, "Failed to restore grant")
		}
	}

	return response.Success(c, "Grant restored successfully", fiber.Map{
		"grant": grant,
	})
}

// ============================================================
// Course Enrollments (Admin)
// ============================================================

// CreateEnrollmentRequest represents create enrollment request body
type CreateEnrollmentRequest struct {
	UserID       uint `json:"user_id"`
	CourseID     uint `json:"course_id"`
	DurationDays int  `json:"duration_days"`
}

// CreateEnrollment handles creating a course enrollment (Admin only)
// @Summary Create course enrollment
// @Description Enroll a user in a course (Admin only)
// @Tags Access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEnrollmentRequest true "Enrollment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/enrollments [post]
func (h *AccessHandler) CreateEnrollment(c *fiber.Ctx) error {
	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.UserID == 0 {
		return response.BadRequest(c, "User ID is required")
	}
	if req.CourseID == 0 {
		return response.BadRequest(c, "Course ID is required")
	}
	if req.DurationDays < 0 {
		return response.BadRequest(c, "Duration days cannot be negative")
	}

	input := &services.CreateEnrollmentInput{
		UserID:       req.UserID,
		CourseID:     req.CourseID,
		DurationDays: req.DurationDays,
	}

	enrollment, err := h.accessService.CreateEnrollment(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to create enrollment")
	}

	return response.Created(c, "Enrollment created successfully", fiber.Map{
		"enrollment": enrollment,
	})
}

// ListEnrollments handles listing course enrollments (Admin only)
// @Summary List course enrollments
// @Description Get a paginated list of course enrollments (Admin only)
// @Tags Access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/enrollments [get]
func (h *AccessHandler) ListEnrollments(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	input := &services.ListGrantsInput{
		Page:  page,
		Limit: limit,
	}

	result, err := h.accessService.ListEnrollments(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list enrollments")
	}

	return response.Success(c, "Enrollments retrieved successfully", result)
}

// RestoreEnrollment handles restoring a locked enrollment (Admin only)
// @Summary Restore course enrollment
// @Description Restore a locked course enrollment to active (Admin only)
// @Tags Access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/enrollments/{id}/restore [post]
func (h *AccessHandler) RestoreEnrollment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment ID")
	}

	enrollment, err := h.accessService.RestoreEnrollment(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEnrollmentNotFound):
			return response.NotFound(c, "Enrollment not found")
		case errors.Is(err, services.ErrNotLocked):
			return response.BadRequest(c, "Enrollment is not locked")
		default:
			return response.InternalServerError(c, "Failed to restore enrollment")
		}
	}

	return response.Success(c, "Enrollment restored successfully", fiber.Map{
		"enrollment": enrollment,
	})
}

// ============================================================
// Member self-service
// ============================================================

// MyAccess handles listing the current user's grants and enrollments
// @Summary Get own access
// @Description Get the current user's membership grants and course enrollments
// @Tags Access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /my-access [get]
func (h *AccessHandler) MyAccess(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.accessService.GetMyAccess(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get access")
	}

	return response.Success(c, "Access retrieved successfully", result)
}
