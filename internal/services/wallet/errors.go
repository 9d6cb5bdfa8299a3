package wallet

import "errors"

// Service errors. All of them are terminal for the operation that raised
// them; only store-level version conflicts are retried, and those stay
// internal to the engine unless retries run out.
var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrWalletFrozen         = errors.New("wallet is frozen")
	ErrWalletBlacklisted    = errors.New("wallet is blacklisted")
	ErrDailyLimitExceeded   = errors.New("daily limit exceeded")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrWalletExists         = errors.New("wallet already exists")
	ErrDuplicateOperation   = errors.New("duplicate operation")
	ErrMissingToken         = errors.New("missing idempotency token")
	ErrSelfTransfer         = errors.New("cannot transfer to the same wallet")
	ErrCounterpartyNotFound = errors.New("counterparty not found")
	ErrRetriesExhausted     = errors.New("operation retries exhausted")
)
