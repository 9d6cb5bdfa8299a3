package wallet

import (
	"errors"
	"time"

	"tembo/internal/models"
	"tembo/internal/repositories"

	"github.com/shopspring/decimal"
)

func newWallet(ownerID uint, name string) *models.Wallet {
	return &models.Wallet{
		OwnerID:             ownerID,
		Name:                name,
		Balance:             decimal.Zero,
		DailySpent:          decimal.Zero,
		LastTransactionDate: dateOf(time.Now()),
	}
}

// getOrCreate returns the wallet for (ownerID, name), inserting a zeroed
// row on first reference. Losing the insert race falls back to a fresh
// read; the store's unique constraint guarantees exactly one row.
func getOrCreate(repo repositories.WalletRepository, ownerID uint, name string) (*models.Wallet, error) {
	w, err := repo.Get(ownerID, name)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repositories.ErrWalletNotFound) {
		return nil, err
	}

	w = newWallet(ownerID, name)
	if err := repo.Create(w); err != nil {
		if errors.Is(err, repositories.ErrDuplicateWallet) {
			return repo.Get(ownerID, name)
		}
		return nil, err
	}
	return w, nil
}

// getExisting returns the wallet or ErrWalletNotFound. Used where an
// uncreated wallet is a caller error, e.g. the debit side of a transfer.
func getExisting(repo repositories.WalletRepository, ownerID uint, name string) (*models.Wallet, error) {
	w, err := repo.Get(ownerID, name)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return w, nil
}

// createExplicit inserts a new wallet, failing when the (owner, name)
// pair is already taken.
func createExplicit(repo repositories.WalletRepository, ownerID uint, name string) (*models.Wallet, error) {
	w := newWallet(ownerID, name)
	if err := repo.Create(w); err != nil {
		if errors.Is(err, repositories.ErrDuplicateWallet) {
			return nil, ErrWalletExists
		}
		return nil, err
	}
	return w, nil
}
