package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the engine's limits and retry policy. It is immutable
// after construction; zero fields are filled with defaults by NewService.
type Config struct {
	MinAmount    decimal.Decimal
	MaxAmount    decimal.Decimal
	DailyLimit   decimal.Decimal
	MaxRetries   int
	RetryBackoff time.Duration
}

// OperationResult describes the acting wallet after a committed operation.
type OperationResult struct {
	OwnerID        uint            `json:"owner_id"`
	WalletName     string          `json:"wallet_name"`
	Balance        decimal.Decimal `json:"balance"`
	DailySpent     decimal.Decimal `json:"daily_spent"`
	RemainingDaily decimal.Decimal `json:"remaining_daily"`
	Frozen         bool            `json:"frozen"`
}
