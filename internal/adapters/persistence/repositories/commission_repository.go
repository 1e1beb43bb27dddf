package repositories

import (
	"context"
	"time"

	"eksporyuk-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Commission Events
// ============================================================

// commissionEventRepository implements CommissionEventRepository interface
type commissionEventRepository struct {
	db *gorm.DB
}

// NewCommissionEventRepository creates a new commission event repository
func NewCommissionEventRepository(db *gorm.DB) CommissionEventRepository {
	return &commissionEventRepository{db: db}
}

// Create appends a new commission event
func (r *commissionEventRepository) Create(ctx context.Context, event *models.CommissionEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID gets a commission event by ID
func (r *commissionEventRepository) GetByID(ctx context.Context, id uint) (*models.CommissionEvent, error) {
	var event models.CommissionEvent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *commissionEventRepository) filtered(ctx context.Context, filter CommissionEventFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.CommissionEvent{})
	if filter.AffiliateUserID != nil {
		query = query.Where("affiliate_user_id = ?", *filter.AffiliateUserID)
	}
	if filter.PayoutStatus != "" {
		query = query.Where("payout_status = ?", filter.PayoutStatus)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}
	return query
}

// List lists commission events newest first
func (r *commissionEventRepository) List(ctx context.Context, filter CommissionEventFilter, offset, limit int) ([]*models.CommissionEvent, int64, error) {
	var events []*models.CommissionEvent
	var total int64

	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.filtered(ctx, filter).
		Preload("Affiliate").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// SumByStatus returns SUM(amount) per payout_status for one affiliate
func (r *commissionEventRepository) SumByStatus(ctx context.Context, affiliateUserID uint) (map[string]float64, error) {
	var rows []struct {
		PayoutStatus string
		Total        float64
	}

	err := r.db.WithContext(ctx).Model(&models.CommissionEvent{}).
		Select("payout_status, COALESCE(SUM(amount), 0) AS total").
		Where("affiliate_user_id = ?", affiliateUserID).
		Group("payout_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]float64, len(rows))
	for _, row := range rows {
		sums[row.PayoutStatus] = row.Total
	}
	return sums, nil
}

// Buckets returns count and amount per payout_status across all affiliates
func (r *commissionEventRepository) Buckets(ctx context.Context, since *time.Time) (map[string]PayoutBucket, error) {
	var rows []struct {
		PayoutStatus string
		Count        int64
		Total        float64
	}

	query := r.db.WithContext(ctx).Model(&models.CommissionEvent{}).
		Select("payout_status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("payout_status")
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make(map[string]PayoutBucket, len(rows))
	for _, row := range rows {
		buckets[row.PayoutStatus] = PayoutBucket{Count: row.Count, Amount: row.Total}
	}
	return buckets, nil
}

// GetByIDsAndStatus returns the subset of the given events in one status
func (r *commissionEventRepository) GetByIDsAndStatus(ctx context.Context, ids []uint, status string) ([]*models.CommissionEvent, error) {
	var events []*models.CommissionEvent
	err := r.db.WithContext(ctx).
		Where("id IN ? AND payout_status = ?", ids, status).
		Find(&events).Error
	return events, err
}

// AdvanceStatus moves events from one payout status to the next
func (r *commissionEventRepository) AdvanceStatus(ctx context.Context, ids []uint, from, to string, paidAt *time.Time) (int64, error) {
	updates := map[string]interface{}{
		"payout_status": to,
	}
	if paidAt != nil {
		updates["paid_at"] = *paidAt
	}

	result := r.db.WithContext(ctx).Model(&models.CommissionEvent{}).
		Where("id IN ? AND payout_status = ?", ids, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// ============================================================
// Commission Rates
// ============================================================

// commissionRateRepository implements CommissionRateRepository interface
type commissionRateRepository struct {
	db *gorm.DB
}

// NewCommissionRateRepository creates a new commission rate repository
func NewCommissionRateRepository(db *gorm.DB) CommissionRateRepository {
	return &commissionRateRepository{db: db}
}

// Create creates a new commission rate
func (r *commissionRateRepository) Create(ctx context.Context, rate *models.CommissionRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

// GetByID gets a commission rate by ID
func (r *commissionRateRepository) GetByID(ctx context.Context, id uint) (*models.CommissionRate, error) {
	var rate models.CommissionRate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// FindByScope finds the rate for an exact (scope_type, scope_id) pair
func (r *commissionRateRepository) FindByScope(ctx context.Context, scopeType string, scopeID *uint) (*models.CommissionRate, error) {
	var rate models.CommissionRate
	query := r.db.WithContext(ctx).Where("scope_type = ?", scopeType)
	if scopeID == nil {
		query = query.Where("scope_id IS NULL")
	} else {
		query = query.Where("scope_id = ?", *scopeID)
	}

	if err := query.First(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

// List lists all commission rates
func (r *commissionRateRepository) List(ctx context.Context) ([]*models.CommissionRate, error) {
	var rates []*models.CommissionRate
	err := r.db.WithContext(ctx).Order("scope_type, scope_id").Find(&rates).Error
	return rates, err
}

// Update updates a commission rate
func (r *commissionRateRepository) Update(ctx context.Context, rate *models.CommissionRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

// Delete soft deletes a commission rate
func (r *commissionRateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CommissionRate{}, id).Error
}
