package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eksporyuk-api/internal/adapters/persistence/models"
	"eksporyuk-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommissionFixture() (*CommissionService, *fakeRateRepo, *fakeEventRepo, *fakeWalletTxRepo) {
	rateRepo := newFakeRateRepo()
	eventRepo := newFakeEventRepo()
	txRepo := newFakeWalletTxRepo()
	return NewCommissionService(rateRepo, eventRepo, txRepo), rateRepo, eventRepo, txRepo
}

func uintPtr(v uint) *uint {
	return &v
}

// ============================================================
// Rate Resolution
// ============================================================

func TestResolveExactScopeWins(t *testing.T) {
	service, rateRepo, _, _ := newCommissionFixture()
	ctx := context.Background()

	_ = rateRepo.Create(ctx, &models.CommissionRate{
		ScopeType: models.ScopeTypeGlobal, RateType: models.RateTypePercent, Value: 10,
	})
	_ = rateRepo.Create(ctx, &models.CommissionRate{
		ScopeType: models.ScopeTypeProduct, ScopeID: uintPtr(5), RateType: models.RateTypeFixed, Value: 25000,
	})

	rate, err := service.Resolve(ctx, models.ScopeTypeProduct, 5)
	require.NoError(t, err)

	assert.Equal(t, domain.ScopeProduct, rate.ScopeType)
	assert.Equal(t, domain.RateFixed, rate.RateType)
	assert.Equal(t, 25000.0, rate.Value)
	assert.False(t, rate.IsDefault)
}

func TestResolveFallsBackToGlobal(t *testing.T) {
	service, rateRepo, _, _ := newCommissionFixture()
	ctx := context.Background()

	_ = rateRepo.Create(ctx, &models.CommissionRate{
		ScopeType: models.ScopeTypeGlobal, RateType: models.RateTypePercent, Value: 15,
	})

	rate, err := service.Resolve(ctx, models.ScopeTypeProduct, 5)
	require.NoError(t, err)

	assert.Equal(t, domain.ScopeGlobal, rate.ScopeType)
	assert.Equal(t, 15.0, rate.Value)
	assert.False(t, rate.IsDefault)
}

func TestResolveFallsBackToPlatformDefault(t *testing.T) {
	service, _, _, _ := newCommissionFixture()

	rate, err := service.Resolve(context.Background(), models.ScopeTypeMembership, 3)
	require.NoError(t, err)

	assert.Equal(t, domain.ScopeGlobal, rate.ScopeType)
	assert.Equal(t, domain.DefaultCommissionType, rate.RateType)
	assert.Equal(t, domain.DefaultCommissionValue, rate.Value)
	assert.True(t, rate.IsDefault)
}

func TestResolvePropagatesStoreErrors(t *testing.T) {
	service, rateRepo, _, _ := newCommissionFixture()
	rateRepo.findErr = errors.New("connection refused")

	_, err := service.Resolve(context.Background(), models.ScopeTypeProduct, 5)
	assert.Error(t, err)
}

func TestCalculate(t *testing.T) {
	percent := &domain.ResolvedRate{RateType: domain.RatePercent, Value: 10}
	fixed := &domain.ResolvedRate{RateType: domain.RateFixed, Value: 50000}

	assert.Equal(t, 10000.0, Calculate(percent, 100000))
	assert.Equal(t, 50000.0, Calculate(fixed, 100000))
	// fixed rates never exceed the transaction total
	assert.Equal(t, 30000.0, Calculate(fixed, 30000))
	assert.Equal(t, 0.0, Calculate(percent, 0))
	assert.Equal(t, 0.0, Calculate(fixed, -100))
}

// ============================================================
// Sale Recording
// ============================================================

func TestRecordSale(t *testing.T) {
	service, rateRepo, eventRepo, _ := newCommissionFixture()
	ctx := context.Background()

	_ = rateRepo.Create(ctx, &models.CommissionRate{
		ScopeType: models.ScopeTypeProduct, ScopeID: uintPtr(5), RateType: models.RateTypePercent, Value: 20,
	})

	event, err := service.RecordSale(ctx, &RecordSaleInput{
		AffiliateUserID: 9,
		SourceType:      models.SourceTypeProduct,
		SourceID:        5,
		Total:           100000,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(9), event.AffiliateUserID)
	assert.Equal(t, 20000.0, event.Amount)
	assert.Equal(t, 20.0, event.Rate)
	assert.Equal(t, models.RateTypePercent, event.RateType)
	assert.Equal(t, models.PayoutStatusPending, event.PayoutStatus)

	stored, err := eventRepo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.Amount, stored.Amount)
}

func TestRecordSaleUsesDefaultWhenUnconfigured(t *testing.T) {
	service, _, _, _ := newCommissionFixture()

	event, err := service.RecordSale(context.Background(), &RecordSaleInput{
		AffiliateUserID: 9,
		SourceType:      models.SourceTypeMembership,
		SourceID:        1,
		Total:           200000,
	})
	require.NoError(t, err)

	assert.Equal(t, 20000.0, event.Amount) // 10% platform default
	assert.Equal(t, domain.DefaultCommissionValue, event.Rate)
}

func TestRecordSaleInvalidSource(t *testing.T) {
	service, _, _, _ := newCommissionFixture()

	_, err := service.RecordSale(context.Background(), &RecordSaleInput{
		AffiliateUserID: 9,
		SourceType:      "VOUCHER",
		SourceID:        1,
		Total:           100,
	})
	assert.ErrorIs(t, err, ErrInvalidScope)
}

// ============================================================
// Payout Lifecycle
// ============================================================

func TestMarkAvailable(t *testing.T) {
	service, _, eventRepo, _ := newCommissionFixture()
	ctx := context.Background()

	pending := seedEvent(eventRepo, 1, 100, models.PayoutStatusPending)
	alreadyPaid := seedEvent(eventRepo, 1, 50, models.PayoutStatusPaid)

	affected, err := service.MarkAvailable(ctx, []uint{pending.ID, alreadyPaid.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(1), affected)
	assert.Equal(t, models.PayoutStatusAvailable, pending.PayoutStatus)
	// PAID never moves backwards
	assert.Equal(t, models.PayoutStatusPaid, alreadyPaid.PayoutStatus)
}

func TestMarkAvailableNoMatches(t *testing.T) {
	service, _, eventRepo, _ := newCommissionFixture()
	ctx := context.Background()

	paid := seedEvent(eventRepo, 1, 100, models.PayoutStatusPaid)

	_, err := service.MarkAvailable(ctx, []uint{paid.ID})
	assert.ErrorIs(t, err, ErrNoEventsMatched)

	_, err = service.MarkAvailable(ctx, nil)
	assert.ErrorIs(t, err, ErrNoEventsMatched)
}

func TestMarkPaid(t *testing.T) {
	service, _, eventRepo, txRepo := newCommissionFixture()
	ctx := context.Background()

	first := seedEvent(eventRepo, 1, 100, models.PayoutStatusAvailable)
	second := seedEvent(eventRepo, 1, 50, models.PayoutStatusAvailable)
	other := seedEvent(eventRepo, 2, 75, models.PayoutStatusAvailable)
	stillPending := seedEvent(eventRepo, 1, 999, models.PayoutStatusPending)

	affected, err := service.MarkPaid(ctx, []uint{first.ID, second.ID, other.ID, stillPending.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(3), affected)
	assert.Equal(t, models.PayoutStatusPaid, first.PayoutStatus)
	assert.NotNil(t, first.PaidAt)
	// PENDING events cannot skip straight to PAID
	assert.Equal(t, models.PayoutStatusPending, stillPending.PayoutStatus)
	assert.Nil(t, stillPending.PaidAt)

	// one negative wallet transaction per affiliate
	require.Len(t, txRepo.transactions, 2)
	byUser := make(map[uint]float64)
	for _, tx := range txRepo.transactions {
		assert.Equal(t, models.WalletTxTypePayout, tx.Type)
		assert.NotEmpty(t, tx.Reference)
		byUser[tx.UserID] = tx.Amount
	}
	assert.Equal(t, -150.0, byUser[1])
	assert.Equal(t, -75.0, byUser[2])
}

func TestMarkPaidNoMatches(t *testing.T) {
	service, _, eventRepo, txRepo := newCommissionFixture()
	ctx := context.Background()

	pending := seedEvent(eventRepo, 1, 100, models.PayoutStatusPending)

	_, err := service.MarkPaid(ctx, []uint{pending.ID})
	assert.ErrorIs(t, err, ErrNoEventsMatched)
	assert.Empty(t, txRepo.transactions)
}

func TestGetStats(t *testing.T) {
	service, _, eventRepo, _ := newCommissionFixture()
	ctx := context.Background()

	seedEvent(eventRepo, 1, 100, models.PayoutStatusPending)
	seedEvent(eventRepo, 2, 200, models.PayoutStatusPending)
	seedEvent(eventRepo, 1, 300, models.PayoutStatusAvailable)
	seedEvent(eventRepo, 1, 400, models.PayoutStatusPaid)

	stats, err := service.GetStats(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Pending.Count)
	assert.Equal(t, 300.0, stats.Pending.Amount)
	assert.Equal(t, int64(1), stats.Available.Count)
	assert.Equal(t, 300.0, stats.Available.Amount)
	assert.Equal(t, int64(1), stats.Paid.Count)
	assert.Equal(t, 400.0, stats.Paid.Amount)
}

func TestGetStatsSince(t *testing.T) {
	service, _, eventRepo, _ := newCommissionFixture()
	ctx := context.Background()

	old := seedEvent(eventRepo, 1, 100, models.PayoutStatusPending)
	old.CreatedAt = time.Now().AddDate(0, 0, -60)
	seedEvent(eventRepo, 1, 200, models.PayoutStatusPending)

	since := time.Now().AddDate(0, 0, -30)
	stats, err := service.GetStats(ctx, &since)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Pending.Count)
	assert.Equal(t, 200.0, stats.Pending.Amount)
}

// ============================================================
// Rate CRUD
// ============================================================

func TestCreateRate(t *testing.T) {
	service, _, _, _ := newCommissionFixture()
	ctx := context.Background()

	rate, err := service.CreateRate(ctx, &CreateRateInput{
		ScopeType: models.ScopeTypeMembership,
		ScopeID:   uintPtr(3),
		RateType:  models.RateTypePercent,
		Value:     12.5,
	})
	require.NoError(t, err)
	assert.NotZero(t, rate.ID)
	assert.Equal(t, 12.5, rate.Value)
}

func TestCreateRateGlobalIgnoresScopeID(t *testing.T) {
	service, _, _, _ := newCommissionFixture()

	rate, err := service.CreateRate(context.Background(), &CreateRateInput{
		ScopeType: models.ScopeTypeGlobal,
		ScopeID:   uintPtr(99),
		RateType:  models.RateTypePercent,
		Value:     10,
	})
	require.NoError(t, err)
	assert.Nil(t, rate.ScopeID)
}

func TestCreateRateDuplicateScope(t *testing.T) {
	service, _, _, _ := newCommissionFixture()
	ctx := context.Background()

	input := &CreateRateInput{
		ScopeType: models.ScopeTypeProduct,
		ScopeID:   uintPtr(5),
		RateType:  models.RateTypePercent,
		Value:     10,
	}
	_, err := service.CreateRate(ctx, input)
	require.NoError(t, err)

	_, err = service.CreateRate(ctx, input)
	assert.ErrorIs(t, err, ErrRateAlreadyExists)
}

func TestCreateRateValidation(t *testing.T) {
	service, _, _, _ := newCommissionFixture()
	ctx := context.Background()

	// scoped rates require a scope id
	_, err := service.CreateRate(ctx, &CreateRateInput{
		ScopeType: models.ScopeTypeProduct, RateType: models.RateTypePercent, Value: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidScope)

	_, err = service.CreateRate(ctx, &CreateRateInput{
		ScopeType: "CHANNEL", RateType: models.RateTypePercent, Value: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidScope)

	_, err = service.CreateRate(ctx, &CreateRateInput{
		ScopeType: models.ScopeTypeGlobal, RateType: "BONUS", Value: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidRateType)

	_, err = service.CreateRate(ctx, &CreateRateInput{
		ScopeType: models.ScopeTypeGlobal, RateType: models.RateTypePercent, Value: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidRateValue)

	_, err = service.CreateRate(ctx, &CreateRateInput{
		ScopeType: models.ScopeTypeGlobal, RateType: models.RateTypePercent, Value: 150,
	})
	assert.ErrorIs(t, err, ErrInvalidRateValue)

	// fixed rates may exceed 100
	_, err = service.CreateRate(ctx, &CreateRateInput{
		ScopeType: models.ScopeTypeGlobal, RateType: models.RateTypeFixed, Value: 50000,
	})
	assert.NoError(t, err)
}

func TestUpdateRate(t *testing.T) {
	service, _, _, _ := newCommissionFixture()
	ctx := context.Background()

	created, err := service.CreateRate(ctx, &CreateRateInput{
		ScopeType: models.ScopeTypeGlobal, RateType: models.RateTypePercent, Value: 10,
	})
	require.NoError(t, err)

	updated, err := service.UpdateRate(ctx, created.ID, &UpdateRateInput{
		RateType: models.RateTypeFixed, Value: 25000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RateTypeFixed, updated.RateType)
	assert.Equal(t, 25000.0, updated.Value)

	_, err = service.UpdateRate(ctx, 999, &UpdateRateInput{RateType: models.RateTypePercent, Value: 5})
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestDeleteRateFallsThrough(t *testing.T) {
	service, _, _, _ := newCommissionFixture()
	ctx := context.Background()

	created, err := service.CreateRate(ctx, &CreateRateInput{
		ScopeType: models.ScopeTypeProduct, ScopeID: uintPtr(5),
		RateType: models.RateTypeFixed, Value: 99000,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteRate(ctx, created.ID))

	rate, err := service.Resolve(ctx, models.ScopeTypeProduct, 5)
	require.NoError(t, err)
	assert.True(t, rate.IsDefault)

	assert.ErrorIs(t, service.DeleteRate(ctx, created.ID), ErrRateNotFound)
}

// ============================================================
// Public Settings
// ============================================================

func TestGetPublicSettings(t *testing.T) {
	service, rateRepo, _, _ := newCommissionFixture()
	ctx := context.Background()

	_ = rateRepo.Create(ctx, &models.CommissionRate{
		ScopeType: models.ScopeTypeGlobal, RateType: models.RateTypePercent, Value: 15,
	})

	settings := service.GetPublicSettings(ctx)
	assert.Equal(t, models.RateTypePercent, settings.RateType)
	assert.Equal(t, 15.0, settings.Value)
	assert.False(t, settings.IsDefault)
}

func TestGetPublicSettingsDegradesToDefault(t *testing.T) {
	service, rateRepo, _, _ := newCommissionFixture()

	// no GLOBAL row configured
	settings := service.GetPublicSettings(context.Background())
	assert.True(t, settings.IsDefault)
	assert.Equal(t, domain.DefaultCommissionValue, settings.Value)

	// store outage still renders the default
	rateRepo.findErr = errors.New("connection refused")
	settings = service.GetPublicSettings(context.Background())
	assert.True(t, settings.IsDefault)
}
