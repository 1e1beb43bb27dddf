package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Username      string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email         string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password      string         `gorm:"size:255;not null" json:"-"`
	Role          string         `gorm:"size:20;default:'MEMBER'" json:"role"`
	AffiliateCode string         `gorm:"size:30;index" json:"affiliate_code,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	AffiliateCode string    `json:"affiliate_code,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Email:         u.Email,
		Role:          u.Role,
		AffiliateCode: u.AffiliateCode,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog Tables (Master)
// ============================================================

// Membership represents a membership plan (Master)
type Membership struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Slug         string         `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	DurationDays int            `gorm:"not null;default:0" json:"duration_days"` // 0 = lifetime
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Membership) TableName() string {
	return "memberships"
}

// Product represents a sellable product (Master)
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// Course represents a course (Master)
type Course struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// ============================================================
// Access Tables
// ============================================================

// Grant statuses
const (
	GrantStatusActive    = "ACTIVE"
	GrantStatusLocked    = "LOCKED"
	GrantStatusCancelled = "CANCELLED"
)

// MembershipGrant is a user's time-bounded entitlement to a membership.
// Rows are never hard-deleted: expiry flips status to LOCKED, admin
// restore flips it back.
type MembershipGrant struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	MembershipID uint       `gorm:"not null;index" json:"membership_id"`
	StartedAt    time.Time  `gorm:"not null" json:"started_at"`
	ExpiresAt    *time.Time `gorm:"index" json:"expires_at"` // nil = lifetime
	Status       string     `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Membership *Membership `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
}

func (MembershipGrant) TableName() string {
	return "membership_grants"
}

// IsExpired reports whether the grant's validity window has elapsed
func (g *MembershipGrant) IsExpired(now time.Time) bool {
	return g.ExpiresAt != nil && !g.ExpiresAt.After(now)
}

// CourseEnrollment is a user's time-bounded access to a single course
type CourseEnrollment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	CourseID  uint       `gorm:"not null;index" json:"course_id"`
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at"`
	Status    string     `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}

// ============================================================
// Commission Tables
// ============================================================

// Payout statuses
const (
	PayoutStatusPending   = "PENDING"
	PayoutStatusAvailable = "AVAILABLE"
	PayoutStatusPaid      = "PAID"
)

// Commission source types
const (
	SourceTypeMembership = "MEMBERSHIP"
	SourceTypeProduct    = "PRODUCT"
)

// CommissionEvent is one commission-earning transaction for an affiliate.
// Append-only: everything except payout_status and paid_at is immutable.
type CommissionEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	AffiliateUserID uint       `gorm:"not null;index" json:"affiliate_user_id"`
	SourceType      string     `gorm:"size:20;not null" json:"source_type"`
	SourceID        uint       `gorm:"not null" json:"source_id"`
	Amount          float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Rate            float64    `gorm:"type:decimal(10,2);not null" json:"rate"`
	RateType        string     `gorm:"size:20;not null;default:'PERCENT'" json:"rate_type"`
	PayoutStatus    string     `gorm:"size:20;not null;default:'PENDING';index" json:"payout_status"`
	PaidAt          *time.Time `json:"paid_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relations
	Affiliate *User `gorm:"foreignKey:AffiliateUserID" json:"affiliate,omitempty"`
}

func (CommissionEvent) TableName() string {
	return "commission_events"
}

// Commission rate scopes
const (
	ScopeTypeGlobal     = "GLOBAL"
	ScopeTypeMembership = "MEMBERSHIP"
	ScopeTypeProduct    = "PRODUCT"
)

// Rate types
const (
	RateTypePercent = "PERCENT"
	RateTypeFixed   = "FIXED"
)

// CommissionRate is a configured rate for a scope. The unique index keeps
// at most one row per (scope_type, scope_id) pair.
type CommissionRate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ScopeType string         `gorm:"size:20;not null;uniqueIndex:idx_rate_scope" json:"scope_type"`
	ScopeID   *uint          `gorm:"uniqueIndex:idx_rate_scope" json:"scope_id"` // nil for GLOBAL
	RateType  string         `gorm:"size:20;not null;default:'PERCENT'" json:"rate_type"`
	Value     float64        `gorm:"type:decimal(10,2);not null" json:"value"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CommissionRate) TableName() string {
	return "commission_rates"
}

// ============================================================
// Wallet Tables
// ============================================================

// Wallet transaction types
const (
	WalletTxTypePayout = "PAYOUT"
)

// WalletTransaction is the payout audit trail. Amounts are negative for
// deductions (payouts).
type WalletTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
	Reference   string    `gorm:"size:64;uniqueIndex" json:"reference"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Catalog (Master)
		&Membership{},
		&Product{},
		&Course{},
		// Access
		&MembershipGrant{},
		&CourseEnrollment{},
		// Commission
		&CommissionEvent{},
		&CommissionRate{},
		// Wallet
		&WalletTransaction{},
	)
}
