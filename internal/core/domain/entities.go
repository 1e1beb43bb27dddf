package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleMember    Role = "MEMBER"
	RoleAffiliate Role = "AFFILIATE"
	RoleAdmin     Role = "ADMIN"
)

// GrantStatus represents the lifecycle of a membership grant or course enrollment
type GrantStatus string

const (
	GrantActive    GrantStatus = "ACTIVE"
	GrantLocked    GrantStatus = "LOCKED"
	GrantCancelled GrantStatus = "CANCELLED"
)

// PayoutStatus is the lifecycle stage of a commission amount.
// Transitions are monotonic: PENDING -> AVAILABLE -> PAID.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "PENDING"
	PayoutAvailable PayoutStatus = "AVAILABLE"
	PayoutPaid      PayoutStatus = "PAID"
)

// ScopeType identifies what a commission rate applies to
type ScopeType string

const (
	ScopeGlobal     ScopeType = "GLOBAL"
	ScopeMembership ScopeType = "MEMBERSHIP"
	ScopeProduct    ScopeType = "PRODUCT"
)

// RateType distinguishes percentage rates from fixed amounts
type RateType string

const (
	RatePercent RateType = "PERCENT"
	RateFixed   RateType = "FIXED"
)

// Platform default commission, applied when no rate row is configured
const (
	DefaultCommissionValue = 10.0
	DefaultCommissionType  = RatePercent
)

// WalletSummary is the derived per-affiliate balance breakdown.
// Never stored: always recomputed from commission events.
type WalletSummary struct {
	Available      float64 `json:"available"`
	Pending        float64 `json:"pending"`
	TotalEarned    float64 `json:"total_earned"`
	TotalWithdrawn float64 `json:"total_withdrawn"`
}

// ResolvedRate is the outcome of commission rate resolution for a scope
type ResolvedRate struct {
	ScopeType ScopeType `json:"scope_type"`
	RateType  RateType  `json:"rate_type"`
	Value     float64   `json:"value"`
	IsDefault bool      `json:"is_default"` // true when the platform default applied
}

// User represents a user in the domain layer
type User struct {
	ID            uint
	Name          string
	Username      string
	Email         string
	Password      string // Hashed
	Role          Role
	AffiliateCode string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
