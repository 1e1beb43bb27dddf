package handlers

import (
	"eksporyuk-api/internal/core/services"
	"eksporyuk-api/internal/pkg/pagination"
	"eksporyuk-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler handles affiliate wallet endpoints
type WalletHandler struct {
	walletService *services.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *services.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetWallet handles getting the current user's wallet summary
// @Summary Get wallet summary
// @Description Get the current user's commission balance breakdown
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /wallet [get]
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	summary, err := h.walletService.GetSummary(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get wallet summary")
	}

	return response.Success(c, "Wallet retrieved successfully", fiber.Map{
		"wallet": summary,
	})
}

// ListTransactions handles listing the current user's wallet transactions
// @Summary List wallet transactions
// @Description Get a paginated list of the current user's wallet transactions
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /wallet/transactions [get]
func (h *WalletHandler) ListTransactions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	input := &services.ListTransactionsInput{
		UserID: userID,
		Page:   params.Page,
		Limit:  params.Limit,
	}

	result, err := h.walletService.ListTransactions(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list transactions")
	}

	return response.Paginated(c, "Transactions retrieved successfully", "transactions",
		result.Transactions, pagination.GetMeta(params, result.Total))
}
