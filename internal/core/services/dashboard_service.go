package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User Statistics
	TotalUsers      int64 `json:"total_users"`
	TotalAdmins     int64 `json:"total_admins"`
	TotalAffiliates int64 `json:"total_affiliates"`
	TotalMembers    int64 `json:"total_members"`

	// Access Statistics
	ActiveGrants      int64 `json:"active_grants"`
	LockedGrants      int64 `json:"locked_grants"`
	ActiveEnrollments int64 `json:"active_enrollments"`
	LockedEnrollments int64 `json:"locked_enrollments"`

	// Commission Statistics
	PendingCommission   float64 `json:"pending_commission"`
	AvailableCommission float64 `json:"available_commission"`
	PaidCommission      float64 `json:"paid_commission"`

	// Monthly Statistics
	EventsThisMonth     int64   `json:"events_this_month"`
	CommissionThisMonth float64 `json:"commission_this_month"`

	// Recent Activity
	RecentEvents []CommissionEventSummary `json:"recent_events"`

	// Top Affiliates
	TopAffiliates []AffiliateStats `json:"top_affiliates"`
}

// CommissionEventSummary represents commission event summary
type CommissionEventSummary struct {
	ID           uint      `json:"id"`
	Affiliate    string    `json:"affiliate"`
	SourceType   string    `json:"source_type"`
	Amount       float64   `json:"amount"`
	PayoutStatus string    `json:"payout_status"`
	CreatedAt    time.Time `json:"created_at"`
}

// AffiliateStats represents affiliate statistics
type AffiliateStats struct {
	AffiliateUserID uint    `json:"affiliate_user_id"`
	Username        string  `json:"username"`
	TotalEvents     int64   `json:"total_events"`
	TotalEarned     float64 `json:"total_earned"`
	TotalPaid       float64 `json:"total_paid"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// User counts by role
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", "ADMIN").Count(&data.TotalAdmins)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", "AFFILIATE").Count(&data.TotalAffiliates)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", "MEMBER").Count(&data.TotalMembers)

	// Access counts by status
	s.db.WithContext(ctx).Table("membership_grants").Where("status = ?", "ACTIVE").Count(&data.ActiveGrants)
	s.db.WithContext(ctx).Table("membership_grants").Where("status = ?", "LOCKED").Count(&data.LockedGrants)
	s.db.WithContext(ctx).Table("course_enrollments").Where("status = ?", "ACTIVE").Count(&data.ActiveEnrollments)
	s.db.WithContext(ctx).Table("course_enrollments").Where("status = ?", "LOCKED").Count(&data.LockedEnrollments)

	// Commission amounts by payout status
	s.db.WithContext(ctx).Table("commission_events").
		Where("payout_status = ?", "PENDING").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.PendingCommission)

	s.db.WithContext(ctx).Table("commission_events").
		Where("payout_status = ?", "AVAILABLE").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.AvailableCommission)

	s.db.WithContext(ctx).Table("commission_events").
		Where("payout_status = ?", "PAID").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.PaidCommission)

	// This month statistics
	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("commission_events").
		Where("created_at >= ?", startOfMonth).
		Count(&data.EventsThisMonth)

	s.db.WithContext(ctx).Table("commission_events").
		Where("created_at >= ?", startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.CommissionThisMonth)

	// Recent commission events
	var recentEvents []struct {
		ID           uint
		Affiliate    string
		SourceType   string
		Amount       float64
		PayoutStatus string
		CreatedAt    time.Time
	}
	s.db.WithContext(ctx).Table("commission_events").
		Select("commission_events.id, users.username as affiliate, commission_events.source_type, commission_events.amount, commission_events.payout_status, commission_events.created_at").
		Joins("LEFT JOIN users ON commission_events.affiliate_user_id = users.id").
		Order("commission_events.created_at DESC").
		Limit(10).
		Scan(&recentEvents)

	data.RecentEvents = make([]CommissionEventSummary, len(recentEvents))
	for i, e := range recentEvents {
		data.RecentEvents[i] = CommissionEventSummary{
			ID:           e.ID,
			Affiliate:    e.Affiliate,
			SourceType:   e.SourceType,
			Amount:       e.Amount,
			PayoutStatus: e.PayoutStatus,
			CreatedAt:    e.CreatedAt,
		}
	}

	// Top affiliates
	var topAffiliates []struct {
		AffiliateUserID uint
		Username        string
		TotalEvents     int64
		TotalEarned     float64
		TotalPaid       float64
	}
	s.db.WithContext(ctx).Table("commission_events").
		Select(`
			commission_events.affiliate_user_id,
			users.username,
			COUNT(*) as total_events,
			COALESCE(SUM(commission_events.amount), 0) as total_earned,
			COALESCE(SUM(CASE WHEN commission_events.payout_status = 'PAID' THEN commission_events.amount ELSE 0 END), 0) as total_paid
		`).
		Joins("LEFT JOIN users ON commission_events.affiliate_user_id = users.id").
		Group("commission_events.affiliate_user_id, users.username").
		Order("total_earned DESC").
		Limit(5).
		Scan(&topAffiliates)

	data.TopAffiliates = make([]AffiliateStats, len(topAffiliates))
	for i, a := range topAffiliates {
		data.TopAffiliates[i] = AffiliateStats{
			AffiliateUserID: a.AffiliateUserID,
			Username:        a.Username,
			TotalEvents:     a.TotalEvents,
			TotalEarned:     a.TotalEarned,
			TotalPaid:       a.TotalPaid,
		}
	}

	return data, nil
}

// ============================================================
// Affiliate Dashboard
// ============================================================

// AffiliateDashboardData represents affiliate dashboard data
type AffiliateDashboardData struct {
	// My Statistics
	TotalEvents     int64   `json:"total_events"`
	PendingEvents   int64   `json:"pending_events"`
	AvailableEvents int64   `json:"available_events"`
	PaidEvents      int64   `json:"paid_events"`
	TotalEarned     float64 `json:"total_earned"`

	// This Month
	EventsThisMonth     int64   `json:"events_this_month"`
	CommissionThisMonth float64 `json:"commission_this_month"`

	// Recent Activity
	RecentEvents []CommissionEventSummary `json:"recent_events"`
}

// GetAffiliateDashboard returns affiliate dashboard data
func (s *DashboardService) GetAffiliateDashboard(ctx context.Context, affiliateUserID uint) (*AffiliateDashboardData, error) {
	data := &AffiliateDashboardData{}

	// My statistics
	s.db.WithContext(ctx).Table("commission_events").
		Where("affiliate_user_id = ?", affiliateUserID).
		Count(&data.TotalEvents)

	s.db.WithContext(ctx).Table("commission_events").
		Where("affiliate_user_id = ? AND payout_status = ?", affiliateUserID, "PENDING").
		Count(&data.PendingEvents)

	s.db.WithContext(ctx).Table("commission_events").
		Where("affiliate_user_id = ? AND payout_status = ?", affiliateUserID, "AVAILABLE").
		Count(&data.AvailableEvents)

	s.db.WithContext(ctx).Table("commission_events").
		Where("affiliate_user_id = ? AND payout_status = ?", affiliateUserID, "PAID").
		Count(&data.PaidEvents)

	s.db.WithContext(ctx).Table("commission_events").
		Where("affiliate_user_id = ?", affiliateUserID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalEarned)

	// This month statistics
	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("commission_events").
		Where("affiliate_user_id = ? AND created_at >= ?", affiliateUserID, startOfMonth).
		Count(&data.EventsThisMonth)

	s.db.WithContext(ctx).Table("commission_events").
		Where("affiliate_user_id = ? AND created_at >= ?", affiliateUserID, startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.CommissionThisMonth)

	// Recent events
	var recentEvents []struct {
		ID           uint
		Affiliate    string
		SourceType   string
		Amount       float64
		PayoutStatus string
		CreatedAt    time.Time
	}
	s.db.WithContext(ctx).Table("commission_events").
		Select("commission_events.id, users.username as affiliate, commission_events.source_type, commission_events.amount, commission_events.payout_status, commission_events.created_at").
		Joins("LEFT JOIN users ON commission_events.affiliate_user_id = users.id").
		Where("commission_events.affiliate_user_id = ?", affiliateUserID).
		Order("commission_events.created_at DESC").
		Limit(10).
		Scan(&recentEvents)

	data.RecentEvents = make([]CommissionEventSummary, len(recentEvents))
	for i, e := range recentEvents {
		data.RecentEvents[i] = CommissionEventSummary{
			ID:           e.ID,
			Affiliate:    e.Affiliate,
			SourceType:   e.SourceType,
			Amount:       e.Amount,
			PayoutStatus: e.PayoutStatus,
			CreatedAt:    e.CreatedAt,
		}
	}

	return data, nil
}
