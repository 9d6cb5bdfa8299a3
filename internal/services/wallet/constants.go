package wallet

import "time"

// Operation labels used in validation errors and metrics.
const (
	OpLoad             = "load"
	OpTransfer         = "transfer"
	OpInternalTransfer = "internal_transfer"
)

// Default configuration values.
const (
	DefaultMinAmount    = "0.01"
	DefaultMaxAmount    = "100000.00"
	DefaultDailyLimit   = "5000.00"
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 50 * time.Millisecond
)
