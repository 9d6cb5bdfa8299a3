package wallet

import (
	"fmt"

	"tembo/internal/models"

	"github.com/shopspring/decimal"
)

// Validator holds the pure rule checks applied before any mutation.
// None of its methods touch state.
//
// The check order for a mutating operation is fixed:
// amount, blacklist, frozen, (for debits) balance, daily limit.
// The first violated rule wins.
type Validator struct {
	config Config
}

func NewValidator(config Config) *Validator {
	return &Validator{config: config}
}

// ValidateAmount fails when the amount is non-positive or outside the
// configured [min, max] window.
func (v *Validator) ValidateAmount(amount decimal.Decimal, operation string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %s amount must be positive", ErrInvalidAmount, operation)
	}
	if amount.LessThan(v.config.MinAmount) || amount.GreaterThan(v.config.MaxAmount) {
		return fmt.Errorf("%w: %s amount must be between %s and %s",
			ErrInvalidAmount, operation, v.config.MinAmount, v.config.MaxAmount)
	}
	return nil
}

func (v *Validator) ValidateBlacklisted(w *models.Wallet) error {
	if w.Blacklisted {
		return ErrWalletBlacklisted
	}
	return nil
}

func (v *Validator) ValidateFrozen(w *models.Wallet) error {
	if w.Frozen {
		return ErrWalletFrozen
	}
	return nil
}

func (v *Validator) ValidateBalance(w *models.Wallet, amount decimal.Decimal) error {
	if w.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

func (v *Validator) ValidateDailyLimit(w *models.Wallet, amount decimal.Decimal) error {
	if amount.GreaterThan(v.config.DailyLimit.Sub(w.DailySpent)) {
		return ErrDailyLimitExceeded
	}
	return nil
}

// ValidateCredit runs the pipeline for a crediting operation on the
// acting wallet (deposits count toward the daily window).
func (v *Validator) ValidateCredit(w *models.Wallet, amount decimal.Decimal, operation string) error {
	if err := v.ValidateAmount(amount, operation); err != nil {
		return err
	}
	if err := v.ValidateBlacklisted(w); err != nil {
		return err
	}
	if err := v.ValidateFrozen(w); err != nil {
		return err
	}
	return v.ValidateDailyLimit(w, amount)
}

// ValidateDebit runs the full pipeline for a debiting operation.
func (v *Validator) ValidateDebit(w *models.Wallet, amount decimal.Decimal, operation string) error {
	if err := v.ValidateAmount(amount, operation); err != nil {
		return err
	}
	if err := v.ValidateBlacklisted(w); err != nil {
		return err
	}
	if err := v.ValidateFrozen(w); err != nil {
		return err
	}
	if err := v.ValidateBalance(w, amount); err != nil {
		return err
	}
	return v.ValidateDailyLimit(w, amount)
}
