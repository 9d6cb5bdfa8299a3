package repositories

import (
	"errors"
	"fmt"

	"tembo/internal/models"

	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	result := r.db.Create(wallet)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) Get(ownerID uint, name string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("owner_id = ? AND name = ?", ownerID, name).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) UpdateVersioned(wallet *models.Wallet) error {
	result := r.db.Model(&models.Wallet{}).
		Where("id = ? AND version = ?", wallet.ID, wallet.Version).
		Updates(map[string]interface{}{
			"balance":               wallet.Balance,
			"daily_spent":           wallet.DailySpent,
			"frozen":                wallet.Frozen,
			"last_transaction_date": wallet.LastTransactionDate,
			"version":               wallet.Version + 1,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	wallet.Version++
	return nil
}

func (r *walletRepository) SetBlacklisted(ownerID uint, blacklisted bool) error {
	result := r.db.Model(&models.Wallet{}).
		Where("owner_id = ?", ownerID).
		Update("blacklisted", blacklisted)
	if result.Error != nil {
		return fmt.Errorf("failed to update blacklist flag: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(tx *models.Transaction) error {
	result := r.db.Create(tx)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to create transaction: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetTransactionByToken(token string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("token = ?", token).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *walletRepository) ListTransactions(ownerID uint, walletName string, limit, offset int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.
		Where("owner_id = ? AND wallet_name = ?", ownerID, walletName).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &walletRepository{db: tx}
		return fn(txRepo)
	})
}
