package wallet

import (
	"context"

	"tembo/internal/models"

	"github.com/shopspring/decimal"
)

// Service defines the wallet transaction engine.
type Service interface {
	// Deposits
	LoadMoney(ctx context.Context, ownerID uint, walletName string, amount decimal.Decimal, token string) (*OperationResult, error)

	// Transfers
	Transfer(ctx context.Context, senderID uint, senderWallet string, receiverID uint, receiverWallet string, amount decimal.Decimal, token string) (*OperationResult, error)
	InternalTransfer(ctx context.Context, ownerID uint, fromWallet, toWallet string, amount decimal.Decimal, token string) (*OperationResult, error)

	// Wallet management
	CreateWallet(ctx context.Context, ownerID uint, name string) (*models.Wallet, error)
	GetWallet(ctx context.Context, ownerID uint, name string) (*models.Wallet, error)
	GetBalance(ctx context.Context, ownerID uint, name string) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, ownerID uint, name string, limit, offset int) ([]models.Transaction, error)
}

// UserResolver is the narrow contract for resolving a transfer receiver
// through the user directory. Implementations map a missing user to
// repositories.ErrUserNotFound.
type UserResolver interface {
	ResolveUser(ctx context.Context, userID uint) (*models.User, error)
}

// Cache is the read-path wallet cache consumed by the engine. Entries are
// only ever written from freshly loaded rows and invalidated after every
// committed mutation.
type Cache interface {
	GetWallet(ctx context.Context, ownerID uint, name string) (*models.Wallet, error)
	SetWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, ownerID uint, name string) error
}
