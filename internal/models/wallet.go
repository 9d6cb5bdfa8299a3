package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet is a named balance bucket owned by one user. A user may hold
// several wallets; the (owner, name) pair is unique.
type Wallet struct {
	ID                  uint            `gorm:"primarykey"`
	OwnerID             uint            `gorm:"not null;uniqueIndex:idx_wallets_owner_name"`
	Name                string          `gorm:"size:64;not null;uniqueIndex:idx_wallets_owner_name"`
	Balance             decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	DailySpent          decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Frozen              bool            `gorm:"not null;default:false"`
	Blacklisted         bool            `gorm:"not null;default:false"`
	LastTransactionDate time.Time       `gorm:"type:date;not null"`
	Version             uint64          `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.LastTransactionDate.IsZero() {
		y, m, d := time.Now().UTC().Date()
		w.LastTransactionDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return nil
}
