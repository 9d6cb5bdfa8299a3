package repositories

import (
	"errors"

	"tembo/internal/models"
)

var (
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrDuplicateWallet      = errors.New("wallet already exists")
	ErrVersionConflict      = errors.New("wallet version conflict")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("transaction already recorded")
)

// WalletRepository defines the storage contract for wallets and their
// ledger entries. Every balance-affecting write goes through
// ExecuteInTransaction so wallet updates and ledger appends commit as
// one atomic unit.
type WalletRepository interface {
	// Wallet rows
	Create(wallet *models.Wallet) error
	Get(ownerID uint, name string) (*models.Wallet, error)
	// UpdateVersioned persists the wallet only if the stored version still
	// matches wallet.Version, incrementing it on success. A stale version
	// yields ErrVersionConflict.
	UpdateVersioned(wallet *models.Wallet) error
	// SetBlacklisted flips the administrative block on every wallet of an
	// owner. It touches no balance or version state.
	SetBlacklisted(ownerID uint, blacklisted bool) error

	// Ledger
	CreateTransaction(tx *models.Transaction) error
	GetTransactionByToken(token string) (*models.Transaction, error)
	ListTransactions(ownerID uint, walletName string, limit, offset int) ([]models.Transaction, error)

	// Atomic unit
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
