package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eksporyuk-api/internal/adapters/persistence/models"
	"eksporyuk-api/internal/adapters/persistence/repositories"
	"eksporyuk-api/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Commission errors
var (
	ErrRateNotFound      = errors.New("commission rate not found")
	ErrRateAlreadyExists = errors.New("commission rate already exists for this scope")
	ErrInvalidScope      = errors.New("invalid commission scope")
	ErrInvalidRateType   = errors.New("invalid rate type")
	ErrInvalidRateValue  = errors.New("rate value must be non-negative")
	ErrNoEventsMatched   = errors.New("no commission events matched the requested transition")
)

// CommissionService resolves commission rates, records commission
// events at sale time, and advances events through the payout
// lifecycle. Rate resolution walks a fixed precedence: the exact scope
// row first, then the GLOBAL row, then the platform default.
type CommissionService struct {
	rateRepo  repositories.CommissionRateRepository
	eventRepo repositories.CommissionEventRepository
	txRepo    repositories.WalletTransactionRepository
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	rateRepo repositories.CommissionRateRepository,
	eventRepo repositories.CommissionEventRepository,
	txRepo repositories.WalletTransactionRepository,
) *CommissionService {
	return &CommissionService{
		rateRepo:  rateRepo,
		eventRepo: eventRepo,
		txRepo:    txRepo,
	}
}

// ============================================================
// Rate Resolution
// ============================================================

// Resolve returns the effective commission rate for a scope.
// Precedence: exact (scope_type, scope_id) row, then the GLOBAL row,
// then the built-in platform default. The default is a constant, so
// resolution always succeeds.
func (s *CommissionService) Resolve(ctx context.Context, scopeType string, scopeID uint) (*domain.ResolvedRate, error) {
	if scopeType != models.ScopeTypeGlobal {
		rate, err := s.rateRepo.FindByScope(ctx, scopeType, &scopeID)
		if err == nil {
			return &domain.ResolvedRate{
				ScopeType: domain.ScopeType(rate.ScopeType),
				RateType:  domain.RateType(rate.RateType),
				Value:     rate.Value,
			}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	global, err := s.rateRepo.FindByScope(ctx, models.ScopeTypeGlobal, nil)
	if err == nil {
		return &domain.ResolvedRate{
			ScopeType: domain.ScopeGlobal,
			RateType:  domain.RateType(global.RateType),
			Value:     global.Value,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &domain.ResolvedRate{
		ScopeType: domain.ScopeGlobal,
		RateType:  domain.DefaultCommissionType,
		Value:     domain.DefaultCommissionValue,
		IsDefault: true,
	}, nil
}

// Calculate applies a resolved rate to a transaction total.
// PERCENT rates are a fraction of the total. FIXED rates pay their
// value but never more than the total itself.
func Calculate(rate *domain.ResolvedRate, total float64) float64 {
	if total <= 0 {
		return 0
	}
	switch rate.RateType {
	case domain.RateFixed:
		if rate.Value > total {
			return total
		}
		return rate.Value
	default:
		return total * rate.Value / 100
	}
}

// ============================================================
// Sale Recording
// ============================================================

// RecordSaleInput represents a completed sale attributed to an affiliate
type RecordSaleInput struct {
	AffiliateUserID uint    `json:"affiliate_user_id" validate:"required"`
	SourceType      string  `json:"source_type" validate:"required"` // MEMBERSHIP or PRODUCT
	SourceID        uint    `json:"source_id" validate:"required"`
	Total           float64 `json:"total" validate:"required"`
}

// RecordSale resolves the rate for the sold item, computes the
// commission, and appends a PENDING commission event. The event stores
// the rate that applied at sale time so later rate changes never touch
// recorded history.
func (s *CommissionService) RecordSale(ctx context.Context, input *RecordSaleInput) (*models.CommissionEvent, error) {
	scopeType, err := scopeForSource(input.SourceType)
	if err != nil {
		return nil, err
	}

	rate, err := s.Resolve(ctx, scopeType, input.SourceID)
	if err != nil {
		return nil, err
	}

	event := &models.CommissionEvent{
		AffiliateUserID: input.AffiliateUserID,
		SourceType:      input.SourceType,
		SourceID:        input.SourceID,
		Amount:          Calculate(rate, input.Total),
		Rate:            rate.Value,
		RateType:        string(rate.RateType),
		PayoutStatus:    models.PayoutStatusPending,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	log.Printf("💰 Commission %.2f recorded for affiliate %d (%s %d)",
		event.Amount, event.AffiliateUserID, event.SourceType, event.SourceID)
	return event, nil
}

func scopeForSource(sourceType string) (string, error) {
	switch sourceType {
	case models.SourceTypeMembership:
		return models.ScopeTypeMembership, nil
	case models.SourceTypeProduct:
		return models.ScopeTypeProduct, nil
	default:
		return "", ErrInvalidScope
	}
}

// ============================================================
// Payout Lifecycle
// ============================================================

// MarkAvailable advances PENDING events to AVAILABLE. Events not in
// PENDING are skipped, never failed: re-submitting ids is harmless.
func (s *CommissionService) MarkAvailable(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoEventsMatched
	}

	affected, err := s.eventRepo.AdvanceStatus(ctx, ids, models.PayoutStatusPending, models.PayoutStatusAvailable, nil)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNoEventsMatched
	}
	return affected, nil
}

// MarkPaid advances AVAILABLE events to PAID, stamps paid_at, and
// writes one negative wallet transaction per affiliate covering the
// amounts paid out. The status check happens before the transition, so
// events that were never AVAILABLE are simply not part of the payout.
func (s *CommissionService) MarkPaid(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoEventsMatched
	}

	events, err := s.eventRepo.GetByIDsAndStatus(ctx, ids, models.PayoutStatusAvailable)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, ErrNoEventsMatched
	}

	paidAt := time.Now()
	payable := make([]uint, 0, len(events))
	totals := make(map[uint]float64)
	for _, event := range events {
		payable = append(payable, event.ID)
		totals[event.AffiliateUserID] += event.Amount
	}

	affected, err := s.eventRepo.AdvanceStatus(ctx, payable, models.PayoutStatusAvailable, models.PayoutStatusPaid, &paidAt)
	if err != nil {
		return 0, err
	}

	for userID, amount := range totals {
		tx := &models.WalletTransaction{
			UserID:      userID,
			Amount:      -amount,
			Type:        models.WalletTxTypePayout,
			Description: fmt.Sprintf("Commission payout (%d events)", len(payable)),
			Reference:   uuid.New().String(),
		}
		if err := s.txRepo.Create(ctx, tx); err != nil {
			log.Printf("❌ Payout transaction for user %d error: %v", userID, err)
		}
	}

	log.Printf("💸 Paid out %d commission events", affected)
	return affected, nil
}

// ============================================================
// Event Listing
// ============================================================

// ListEventsInput represents commission event list input
type ListEventsInput struct {
	AffiliateUserID *uint
	PayoutStatus    string
	Since           *time.Time
	Page            int
	Limit           int
}

// ListEventsOutput represents commission event list output
type ListEventsOutput struct {
	Events     []*models.CommissionEvent `json:"events"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}

// ListEvents lists commission events with optional filters
func (s *CommissionService) ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	filter := repositories.CommissionEventFilter{
		AffiliateUserID: input.AffiliateUserID,
		PayoutStatus:    input.PayoutStatus,
		Since:           input.Since,
	}

	offset := (input.Page - 1) * input.Limit
	events, total, err := s.eventRepo.List(ctx, filter, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListEventsOutput{
		Events:     events,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// StatsBucket is one payout status slice of the commission stats
type StatsBucket struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// StatsOutput aggregates commission events by payout status
type StatsOutput struct {
	Pending   StatsBucket `json:"pending"`
	Available StatsBucket `json:"available"`
	Paid      StatsBucket `json:"paid"`
}

// GetStats aggregates commission events by payout status, optionally
// restricted to events created since a time
func (s *CommissionService) GetStats(ctx context.Context, since *time.Time) (*StatsOutput, error) {
	buckets, err := s.eventRepo.Buckets(ctx, since)
	if err != nil {
		return nil, err
	}

	out := &StatsOutput{}
	if b, ok := buckets[models.PayoutStatusPending]; ok {
		out.Pending = StatsBucket{Count: b.Count, Amount: b.Amount}
	}
	if b, ok := buckets[models.PayoutStatusAvailable]; ok {
		out.Available = StatsBucket{Count: b.Count, Amount: b.Amount}
	}
	if b, ok := buckets[models.PayoutStatusPaid]; ok {
		out.Paid = StatsBucket{Count: b.Count, Amount: b.Amount}
	}
	return out, nil
}

// ============================================================
// Rate CRUD
// ============================================================

// CreateRateInput represents create rate input
type CreateRateInput struct {
	ScopeType string  `json:"scope_type" validate:"required"`
	ScopeID   *uint   `json:"scope_id"`
	RateType  string  `json:"rate_type" validate:"required"`
	Value     float64 `json:"value"`
}

// CreateRate creates a scoped commission rate. GLOBAL rates carry no
// scope id; MEMBERSHIP and PRODUCT rates require one. One rate row per
// scope: a second row for the same scope is rejected.
func (s *CommissionService) CreateRate(ctx context.Context, input *CreateRateInput) (*models.CommissionRate, error) {
	if err := validateScope(input.ScopeType, input.ScopeID); err != nil {
		return nil, err
	}
	if err := validateRate(input.RateType, input.Value); err != nil {
		return nil, err
	}

	scopeID := input.ScopeID
	if input.ScopeType == models.ScopeTypeGlobal {
		scopeID = nil
	}

	if _, err := s.rateRepo.FindByScope(ctx, input.ScopeType, scopeID); err == nil {
		return nil, ErrRateAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rate := &models.CommissionRate{
		ScopeType: input.ScopeType,
		ScopeID:   scopeID,
		RateType:  input.RateType,
		Value:     input.Value,
	}
	if err := s.rateRepo.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// UpdateRateInput represents update rate input
type UpdateRateInput struct {
	RateType string  `json:"rate_type" validate:"required"`
	Value    float64 `json:"value"`
}

// UpdateRate changes the type and value of an existing rate.
// Scope is immutable: delete and recreate to move a rate.
func (s *CommissionService) UpdateRate(ctx context.Context, id uint, input *UpdateRateInput) (*models.CommissionRate, error) {
	rate, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}

	if err := validateRate(input.RateType, input.Value); err != nil {
		return nil, err
	}

	rate.RateType = input.RateType
	rate.Value = input.Value
	if err := s.rateRepo.Update(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// DeleteRate removes a rate row. Resolution for its scope falls through
// to GLOBAL (or the platform default) afterwards.
func (s *CommissionService) DeleteRate(ctx context.Context, id uint) error {
	if _, err := s.rateRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRateNotFound
		}
		return err
	}
	return s.rateRepo.Delete(ctx, id)
}

// GetRate fetches a rate row by id
func (s *CommissionService) GetRate(ctx context.Context, id uint) (*models.CommissionRate, error) {
	rate, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}
	return rate, nil
}

// ListRates lists all configured rates
func (s *CommissionService) ListRates(ctx context.Context) ([]*models.CommissionRate, error) {
	return s.rateRepo.List(ctx)
}

func validateScope(scopeType string, scopeID *uint) error {
	switch scopeType {
	case models.ScopeTypeGlobal:
		return nil
	case models.ScopeTypeMembership, models.ScopeTypeProduct:
		if scopeID == nil || *scopeID == 0 {
			return ErrInvalidScope
		}
		return nil
	default:
		return ErrInvalidScope
	}
}

func validateRate(rateType string, value float64) error {
	if rateType != models.RateTypePercent && rateType != models.RateTypeFixed {
		return ErrInvalidRateType
	}
	if value < 0 {
		return ErrInvalidRateValue
	}
	if rateType == models.RateTypePercent && value > 100 {
		return ErrInvalidRateValue
	}
	return nil
}

// ============================================================
// Public Settings
// ============================================================

// PublicSettings is the public-facing commission configuration
type PublicSettings struct {
	RateType  string  `json:"rate_type"`
	Value     float64 `json:"value"`
	IsDefault bool    `json:"is_default"`
}

// GetPublicSettings returns the GLOBAL commission settings for public
// display. A store failure degrades to the platform default instead of
// erroring: this endpoint feeds marketing pages that must always render.
func (s *CommissionService) GetPublicSettings(ctx context.Context) *PublicSettings {
	global, err := s.rateRepo.FindByScope(ctx, models.ScopeTypeGlobal, nil)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("❌ Load public commission settings error: %v", err)
		}
		return &PublicSettings{
			RateType:  string(domain.DefaultCommissionType),
			Value:     domain.DefaultCommissionValue,
			IsDefault: true,
		}
	}
	return &PublicSettings{
		RateType: global.RateType,
		Value:    global.Value,
	}
}
