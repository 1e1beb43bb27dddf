package repositories

import (
	"context"
	"time"

	"eksporyuk-api/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// MembershipGrantRepository defines membership grant repository interface.
// Grants are soft-lifecycle only: status changes, never deletes.
type MembershipGrantRepository interface {
	Create(ctx context.Context, grant *models.MembershipGrant) error
	GetByID(ctx context.Context, id uint) (*models.MembershipGrant, error)
	List(ctx context.Context, offset, limit int) ([]*models.MembershipGrant, int64, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.MembershipGrant, error)
	// FindActiveExpired returns ACTIVE grants whose expires_at is non-null
	// and at or before now.
	FindActiveExpired(ctx context.Context, now time.Time) ([]*models.MembershipGrant, error)
	// SetStatus transitions a single grant from one status to another.
	// The update is conditional on the current status, so it is atomic
	// per row and idempotent: a row already transitioned matches nothing
	// and false is returned.
	SetStatus(ctx context.Context, id uint, from, to string) (bool, error)
}

// CourseEnrollmentRepository defines course enrollment repository interface
type CourseEnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.CourseEnrollment) error
	GetByID(ctx context.Context, id uint) (*models.CourseEnrollment, error)
	List(ctx context.Context, offset, limit int) ([]*models.CourseEnrollment, int64, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.CourseEnrollment, error)
	FindActiveExpired(ctx context.Context, now time.Time) ([]*models.CourseEnrollment, error)
	SetStatus(ctx context.Context, id uint, from, to string) (bool, error)
}

// CommissionEventFilter narrows commission event listings
type CommissionEventFilter struct {
	AffiliateUserID *uint
	PayoutStatus    string
	Since           *time.Time
}

// PayoutBucket aggregates commission events sharing a payout status
type PayoutBucket struct {
	Count  int64
	Amount float64
}

// CommissionEventRepository defines commission event repository interface.
// Events are append-only facts; only payout_status (and paid_at) may advance.
type CommissionEventRepository interface {
	Create(ctx context.Context, event *models.CommissionEvent) error
	GetByID(ctx context.Context, id uint) (*models.CommissionEvent, error)
	List(ctx context.Context, filter CommissionEventFilter, offset, limit int) ([]*models.CommissionEvent, int64, error)
	// SumByStatus returns SUM(amount) per payout_status for one affiliate.
	// Statuses with no rows are absent from the map.
	SumByStatus(ctx context.Context, affiliateUserID uint) (map[string]float64, error)
	// Buckets returns count and amount per payout_status across all
	// affiliates, optionally restricted to events created since a time.
	Buckets(ctx context.Context, since *time.Time) (map[string]PayoutBucket, error)
	GetByIDsAndStatus(ctx context.Context, ids []uint, status string) ([]*models.CommissionEvent, error)
	// AdvanceStatus moves the given events from one payout status to the
	// next. Conditional on the current status: rows not in `from` are
	// left untouched. Returns the number of rows transitioned.
	AdvanceStatus(ctx context.Context, ids []uint, from, to string, paidAt *time.Time) (int64, error)
}

// CommissionRateRepository defines commission rate repository interface
type CommissionRateRepository interface {
	Create(ctx context.Context, rate *models.CommissionRate) error
	GetByID(ctx context.Context, id uint) (*models.CommissionRate, error)
	// FindByScope returns the rate row for an exact (scope_type, scope_id)
	// pair; scopeID must be nil for GLOBAL.
	FindByScope(ctx context.Context, scopeType string, scopeID *uint) (*models.CommissionRate, error)
	List(ctx context.Context) ([]*models.CommissionRate, error)
	Update(ctx context.Context, rate *models.CommissionRate) error
	Delete(ctx context.Context, id uint) error
}

// WalletTransactionRepository defines wallet transaction repository interface
type WalletTransactionRepository interface {
	Create(ctx context.Context, tx *models.WalletTransaction) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.WalletTransaction, int64, error)
}
