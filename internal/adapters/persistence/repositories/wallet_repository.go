package repositories

import (
	"context"

	"eksporyuk-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// walletTransactionRepository implements WalletTransactionRepository interface
type walletTransactionRepository struct {
	db *gorm.DB
}

// NewWalletTransactionRepository creates a new wallet transaction repository
func NewWalletTransactionRepository(db *gorm.DB) WalletTransactionRepository {
	return &walletTransactionRepository{db: db}
}

// Create creates a new wallet transaction
func (r *walletTransactionRepository) Create(ctx context.Context, tx *models.WalletTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// ListByUser lists a user's wallet transactions newest first
func (r *walletTransactionRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.WalletTransaction, int64, error) {
	var txs []*models.WalletTransaction
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.WalletTransaction{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}
