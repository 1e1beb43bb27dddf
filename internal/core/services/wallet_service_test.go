package services

import (
	"context"
	"testing"

	"eksporyuk-api/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvent(repo *fakeEventRepo, userID uint, amount float64, status string) *models.CommissionEvent {
	event := &models.CommissionEvent{
		AffiliateUserID: userID,
		SourceType:      models.SourceTypeProduct,
		SourceID:        1,
		Amount:          amount,
		Rate:            10,
		RateType:        models.RateTypePercent,
		PayoutStatus:    status,
	}
	_ = repo.Create(context.Background(), event)
	return event
}

func TestGetSummary(t *testing.T) {
	eventRepo := newFakeEventRepo()
	txRepo := newFakeWalletTxRepo()
	service := NewWalletService(eventRepo, txRepo)
	ctx := context.Background()

	seedEvent(eventRepo, 1, 100, models.PayoutStatusAvailable)
	seedEvent(eventRepo, 1, 50, models.PayoutStatusPending)
	seedEvent(eventRepo, 1, 200, models.PayoutStatusPaid)
	// another affiliate's event must not leak in
	seedEvent(eventRepo, 2, 999, models.PayoutStatusAvailable)

	summary, err := service.GetSummary(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 100.0, summary.Available)
	assert.Equal(t, 50.0, summary.Pending)
	assert.Equal(t, 200.0, summary.TotalWithdrawn)
	assert.Equal(t, 350.0, summary.TotalEarned)
}

func TestGetSummaryNoEvents(t *testing.T) {
	service := NewWalletService(newFakeEventRepo(), newFakeWalletTxRepo())

	summary, err := service.GetSummary(context.Background(), 42)
	require.NoError(t, err)

	assert.Zero(t, summary.Available)
	assert.Zero(t, summary.Pending)
	assert.Zero(t, summary.TotalEarned)
	assert.Zero(t, summary.TotalWithdrawn)
}

func TestGetSummaryEarnedIdentity(t *testing.T) {
	eventRepo := newFakeEventRepo()
	service := NewWalletService(eventRepo, newFakeWalletTxRepo())

	seedEvent(eventRepo, 1, 10.5, models.PayoutStatusPending)
	seedEvent(eventRepo, 1, 20.25, models.PayoutStatusPending)
	seedEvent(eventRepo, 1, 30, models.PayoutStatusAvailable)
	seedEvent(eventRepo, 1, 40, models.PayoutStatusPaid)

	summary, err := service.GetSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, summary.Available+summary.Pending+summary.TotalWithdrawn, summary.TotalEarned)
}

func TestListTransactions(t *testing.T) {
	txRepo := newFakeWalletTxRepo()
	service := NewWalletService(newFakeEventRepo(), txRepo)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_ = txRepo.Create(ctx, &models.WalletTransaction{
			UserID: 1,
			Amount: -10,
			Type:   models.WalletTxTypePayout,
		})
	}
	_ = txRepo.Create(ctx, &models.WalletTransaction{UserID: 2, Amount: -5, Type: models.WalletTxTypePayout})

	out, err := service.ListTransactions(ctx, &ListTransactionsInput{UserID: 1, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 10)
	assert.Equal(t, int64(15), out.Total)
	assert.Equal(t, 2, out.TotalPages)

	out, err = service.ListTransactions(ctx, &ListTransactionsInput{UserID: 1, Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 5)
}
