package services

import (
	"context"

	"eksporyuk-api/internal/adapters/persistence/models"
	"eksporyuk-api/internal/adapters/persistence/repositories"
	"eksporyuk-api/internal/core/domain"
)

// WalletService derives wallet balances from the commission event and
// wallet transaction stores. There is no stored balance row: every read
// recomputes the summary from the underlying facts, so the numbers can
// never drift from the events that produced them.
type WalletService struct {
	eventRepo repositories.CommissionEventRepository
	txRepo    repositories.WalletTransactionRepository
}

// NewWalletService creates a new wallet service
func NewWalletService(
	eventRepo repositories.CommissionEventRepository,
	txRepo repositories.WalletTransactionRepository,
) *WalletService {
	return &WalletService{
		eventRepo: eventRepo,
		txRepo:    txRepo,
	}
}

// GetSummary computes the wallet summary for one affiliate.
// Available and pending come straight from the per-status sums. Total
// withdrawn is the PAID sum, and total earned is everything the
// affiliate was ever credited: available + pending + withdrawn. A user
// with no events gets an all-zero summary, not an error.
func (s *WalletService) GetSummary(ctx context.Context, userID uint) (*domain.WalletSummary, error) {
	sums, err := s.eventRepo.SumByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	available := sums[models.PayoutStatusAvailable]
	pending := sums[models.PayoutStatusPending]
	withdrawn := sums[models.PayoutStatusPaid]

	return &domain.WalletSummary{
		Available:      available,
		Pending:        pending,
		TotalEarned:    available + pending + withdrawn,
		TotalWithdrawn: withdrawn,
	}, nil
}

// ListTransactionsInput represents wallet transaction list input
type ListTransactionsInput struct {
	UserID uint
	Page   int
	Limit  int
}

// ListTransactionsOutput represents wallet transaction list output
type ListTransactionsOutput struct {
	Transactions []*models.WalletTransaction `json:"transactions"`
	Total        int64                       `json:"total"`
	Page         int                         `json:"page"`
	Limit        int                         `json:"limit"`
	TotalPages   int                         `json:"total_pages"`
}

// ListTransactions lists an affiliate's wallet transactions, newest first
func (s *WalletService) ListTransactions(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit
	transactions, total, err := s.txRepo.ListByUser(ctx, input.UserID, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Total:        total,
		Page:         input.Page,
		Limit:        input.Limit,
		TotalPages:   totalPages,
	}, nil
}
