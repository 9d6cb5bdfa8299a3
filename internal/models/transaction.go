package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeCredit     = "CREDIT"
	TransactionTypeDebit      = "DEBIT"
	TransactionTypeInternal   = "INTERNAL"
	TransactionTypeSelfCredit = "SELF_CREDIT"
)

// Transaction is an immutable ledger entry for a balance-affecting
// operation. Entries are never updated or deleted.
//
// Token is the caller-supplied idempotency token. The two legs of a
// transfer share one token, so uniqueness is enforced on (token, type):
// a replayed operation collides, a transfer's DEBIT/CREDIT pair does not.
type Transaction struct {
	ID                 uint            `gorm:"primarykey"`
	Token              string          `gorm:"size:64;not null;uniqueIndex:idx_transactions_token_type"`
	Type               string          `gorm:"size:16;not null;uniqueIndex:idx_transactions_token_type"`
	OwnerID            uint            `gorm:"not null;index"`
	WalletName         string          `gorm:"size:64;not null"`
	CounterpartyWallet string          `gorm:"size:64"`
	Amount             decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	CreatedAt          time.Time
}
