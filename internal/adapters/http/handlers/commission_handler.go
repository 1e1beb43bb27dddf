package handlers

import (
	"errors"
	"strconv"
	"time"

	"eksporyuk-api/internal/core/services"
	"eksporyuk-api/internal/pkg/pagination"
	"eksporyuk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CommissionHandler handles commission rate and event endpoints
type CommissionHandler struct {
	commissionService *services.CommissionService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(commissionService *services.CommissionService) *CommissionHandler {
	return &CommissionHandler{
		commissionService: commissionService,
	}
}

// ============================================================
// Rate CRUD (Admin)
// ============================================================

// CreateRateRequest represents create rate request body
type CreateRateRequest struct {
	ScopeType string  `json:"scope_type"`
	ScopeID   *uint   `json:"scope_id"`
	RateType  string  `json:"rate_type"`
	Value     float64 `json:"value"`
}

// CreateRate handles creating a commission rate (Admin only)
// @Summary Create commission rate
// @Description Create a scoped commission rate (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRateRequest true "Rate data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/commission-rates [post]
func (h *CommissionHandler) CreateRate(c *fiber.Ctx) error {
	var req CreateRateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.CreateRateInput{
		ScopeType: req.ScopeType,
		ScopeID:   req.ScopeID,
		RateType:  req.RateType,
		Value:     req.Value,
	}

	rate, err := h.commissionService.CreateRate(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidScope):
			return response.BadRequest(c, "Invalid scope type or missing scope ID")
		case errors.Is(err, services.ErrInvalidRateType):
			return response.BadRequest(c, "Rate type must be PERCENT or FIXED")
		case errors.Is(err, services.ErrInvalidRateValue):
			return response.BadRequest(c, "Invalid rate value")
		case errors.Is(err, services.ErrRateAlreadyExists):
			return response.Conflict(c, "A rate already exists for this scope")
		default:
			return response.InternalServerError(c, "Failed to create rate")
		}
	}

	return response.Created(c, "Rate created successfully", fiber.Map{
		"rate": rate,
	})
}

// ListRates handles listing all commission rates (Admin only)
// @Summary List commission rates
// @Description Get all configured commission rates (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/commission-rates [get]
func (h *CommissionHandler) ListRates(c *fiber.Ctx) error {
	rates, err := h.commissionService.ListRates(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list rates")
	}

	return response.Success(c, "Rates retrieved successfully", fiber.Map{
		"rates": rates,
	})
}

// GetRate handles getting a commission rate by ID (Admin only)
// @Summary Get commission rate
// @Description Get a commission rate by ID (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rate ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/commission-rates/{id} [get]
func (h *CommissionHandler) GetRate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid rate ID")
	}

	rate, err := h.commissionService.GetRate(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRateNotFound) {
			return response.NotFound(c, "Rate not found")
		}
		return response.InternalServerError(c, "Failed to get rate")
	}

	return response.Success(c, "Rate retrieved successfully", fiber.Map{
		"rate": rate,
	})
}

// UpdateRateRequest represents update rate request body
type UpdateRateRequest struct {
	RateType string  `json:"rate_type"`
	Value    float64 `json:"value"`
}

// UpdateRate handles updating a commission rate (Admin only)
// @Summary Update commission rate
// @Description Update a commission rate's type and value (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rate ID"
// @Param body body UpdateRateRequest true "Rate data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/commission-rates/{id} [put]
func (h *CommissionHandler) UpdateRate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid rate ID")
	}

	var req UpdateRateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateRateInput{
		RateType: req.RateType,
		Value:    req.Value,
	}

	rate, err := h.commissionService.UpdateRate(c.Context(), uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRateNotFound):
			return response.NotFound(c, "Rate not found")
		case errors.Is(err, services.ErrInvalidRateType):
			return response.BadRequest(c, "Rate type must be PERCENT or FIXED")
		case errors.Is(err, services.ErrInvalidRateValue):
			return response.BadRequest(c, "Invalid rate value")
		default:
			return response.InternalServerError(c, "Failed to update rate")
		}
	}

	return response.Success(c, "Rate updated successfully", fiber.Map{
		"rate": rate,
	})
}

// DeleteRate handles deleting a commission rate (Admin only)
// @Summary Delete commission rate
// @Description Delete a commission rate (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rate ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/commission-rates/{id} [delete]
func (h *CommissionHandler) DeleteRate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid rate ID")
	}

	if err := h.commissionService.DeleteRate(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrRateNotFound) {
			return response.NotFound(c, "Rate not found")
		}
		return response.InternalServerError(c, "Failed to delete rate")
	}

	return response.Success(c, "Rate deleted successfully", nil)
}

// ResolveRate handles previewing the effective rate for a scope (Admin only)
// @Summary Resolve effective rate
// @Description Preview the effective commission rate for a scope (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scope_type query string true "Scope type (MEMBERSHIP or PRODUCT)"
// @Param scope_id query int true "Scope ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/commission-rates/resolve [get]
func (h *CommissionHandler) ResolveRate(c *fiber.Ctx) error {
	scopeType := c.Query("scope_type")
	scopeID, err := strconv.ParseUint(c.Query("scope_id", "0"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid scope ID")
	}

	rate, err := h.commissionService.Resolve(c.Context(), scopeType, uint(scopeID))
	if err != nil {
		return response.InternalServerError(c, "Failed to resolve rate")
	}

	return response.Success(c, "Rate resolved successfully", fiber.Map{
		"rate": rate,
	})
}

// ============================================================
// Events (Admin)
// ============================================================

// ListEvents handles listing commission events (Admin only)
// @Summary List commission events
// @Description Get a filtered, paginated list of commission events (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param affiliate_user_id query int false "Filter by affiliate user ID"
// @Param payout_status query string false "Filter by payout status"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/commissions [get]
func (h *CommissionHandler) ListEvents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	input := &services.ListEventsInput{
		PayoutStatus: c.Query("payout_status"),
		Page:         page,
		Limit:        limit,
	}

	if raw := c.Query("affiliate_user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid affiliate user ID")
		}
		affiliateID := uint(id)
		input.AffiliateUserID = &affiliateID
	}

	result, err := h.commissionService.ListEvents(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}

	return response.Success(c, "Events retrieved successfully", result)
}

// GetStats handles getting commission statistics (Admin only)
// @Summary Commission statistics
// @Description Get commission event counts and amounts per payout status (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param days query int false "Restrict to events created in the last N days"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/commissions/stats [get]
func (h *CommissionHandler) GetStats(c *fiber.Ctx) error {
	var since *time.Time
	if days, err := strconv.Atoi(c.Query("days", "0")); err == nil && days > 0 {
		t := time.Now().AddDate(0, 0, -days)
		since = &t
	}

	stats, err := h.commissionService.GetStats(c.Context(), since)
	if err != nil {
		return response.InternalServerError(c, "Failed to get stats")
	}

	return response.Success(c, "Stats retrieved successfully", stats)
}

// EventIDsRequest represents a batch of event IDs
type EventIDsRequest struct {
	IDs []uint `json:"ids"`
}

// MarkAvailable handles advancing events to AVAILABLE (Admin only)
// @Summary Mark commissions available
// @Description Advance PENDING commission events to AVAILABLE (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventIDsRequest true "Event IDs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/commissions/mark-available [post]
func (h *CommissionHandler) MarkAvailable(c *fiber.Ctx) error {
	var req EventIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	affected, err := h.commissionService.MarkAvailable(c.Context(), req.IDs)
	if err != nil {
		if errors.Is(err, services.ErrNoEventsMatched) {
			return response.BadRequest(c, "No pending events matched the given IDs")
		}
		return response.InternalServerError(c, "Failed to mark events available")
	}

	return response.Success(c, "Events marked available", fiber.Map{
		"affected": affected,
	})
}

// MarkPaid handles advancing events to PAID (Admin only)
// @Summary Mark commissions paid
// @Description Advance AVAILABLE commission events to PAID and record payouts (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventIDsRequest true "Event IDs"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/commissions/mark-paid [post]
func (h *CommissionHandler) MarkPaid(c *fiber.Ctx) error {
	var req EventIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	affected, err := h.commissionService.MarkPaid(c.Context(), req.IDs)
	if err != nil {
		if errors.Is(err, services.ErrNoEventsMatched) {
			return response.BadRequest(c, "No available events matched the given IDs")
		}
		return response.InternalServerError(c, "Failed to mark events paid")
	}

	return response.Success(c, "Events marked paid", fiber.Map{
		"affected": affected,
	})
}

// RecordSaleRequest represents a sale attribution request body
type RecordSaleRequest struct {
	AffiliateUserID uint    `json:"affiliate_user_id"`
	SourceType      string  `json:"source_type"`
	SourceID        uint    `json:"source_id"`
	Total           float64 `json:"total"`
}

// RecordSale handles recording an attributed sale (Admin only)
// @Summary Record attributed sale
// @Description Record a sale attributed to an affiliate and create a commission event (Admin only)
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RecordSaleRequest true "Sale data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/commissions [post]
func (h *CommissionHandler) RecordSale(c *fiber.Ctx) error {
	var req RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.AffiliateUserID == 0 {
		return response.BadRequest(c, "Affiliate user ID is required")
	}
	if req.Total <= 0 {
		return response.BadRequest(c, "Total must be positive")
	}

	input := &services.RecordSaleInput{
		AffiliateUserID: req.AffiliateUserID,
		SourceType:      req.SourceType,
		SourceID:        req.SourceID,
		Total:           req.Total,
	}

	event, err := h.commissionService.RecordSale(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidScope) {
			return response.BadRequest(c, "Source type must be MEMBERSHIP or PRODUCT")
		}
		return response.InternalServerError(c, "Failed to record sale")
	}

	return response.Created(c, "Sale recorded successfully", fiber.Map{
		"event": event,
	})
}

// MyCommissions handles listing the current affiliate's own events
// @Summary List own commissions
// @Description Get a paginated list of the current user's commission events
// @Tags Commissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payout_status query string false "Filter by payout status"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /commissions [get]
func (h *CommissionHandler) MyCommissions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	input := &services.ListEventsInput{
		AffiliateUserID: &userID,
		PayoutStatus:    c.Query("payout_status"),
		Page:            params.Page,
		Limit:           params.Limit,
	}

	result, err := h.commissionService.ListEvents(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list commissions")
	}

	return response.Paginated(c, "Commissions retrieved successfully", "events",
		result.Events, pagination.GetMeta(params, result.Total))
}

// ============================================================
// Public
// ============================================================

// PublicSettings handles the public commission settings endpoint
// @Summary Public commission settings
// @Description Get the platform-wide commission settings
// @Tags Public
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /public/commission-settings [get]
func (h *CommissionHandler) PublicSettings(c *fiber.Ctx) error {
	settings := h.commissionService.GetPublicSettings(c.Context())
	return response.Success(c, "Commission settings retrieved successfully", settings)
}
