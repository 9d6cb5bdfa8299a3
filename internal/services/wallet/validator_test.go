package wallet

import (
	"testing"

	"tembo/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testValidator() *Validator {
	return NewValidator(testConfig())
}

func healthyWallet(balance string) *models.Wallet {
	w := newWallet(1, "Primary")
	w.Balance = dec(balance)
	return w
}

func TestValidateAmount(t *testing.T) {
	v := testValidator()

	assert.NoError(t, v.ValidateAmount(dec("1.00"), OpLoad))
	assert.NoError(t, v.ValidateAmount(dec("100000.00"), OpLoad))

	assert.ErrorIs(t, v.ValidateAmount(decimal.Zero, OpLoad), ErrInvalidAmount)
	assert.ErrorIs(t, v.ValidateAmount(dec("-1.00"), OpLoad), ErrInvalidAmount)
	assert.ErrorIs(t, v.ValidateAmount(dec("0.99"), OpLoad), ErrInvalidAmount)
	assert.ErrorIs(t, v.ValidateAmount(dec("100000.01"), OpLoad), ErrInvalidAmount)
}

func TestValidateBlacklisted(t *testing.T) {
	v := testValidator()
	w := healthyWallet("100.00")

	assert.NoError(t, v.ValidateBlacklisted(w))
	w.Blacklisted = true
	assert.ErrorIs(t, v.ValidateBlacklisted(w), ErrWalletBlacklisted)
}

func TestValidateFrozen(t *testing.T) {
	v := testValidator()
	w := healthyWallet("100.00")

	assert.NoError(t, v.ValidateFrozen(w))
	w.Frozen = true
	assert.ErrorIs(t, v.ValidateFrozen(w), ErrWalletFrozen)
}

func TestValidateBalance(t *testing.T) {
	v := testValidator()
	w := healthyWallet("100.00")

	assert.NoError(t, v.ValidateBalance(w, dec("100.00")), "spending the full balance is allowed")
	assert.ErrorIs(t, v.ValidateBalance(w, dec("100.01")), ErrInsufficientBalance)
}

func TestValidateDailyLimit(t *testing.T) {
	v := testValidator()
	w := healthyWallet("10000.00")
	w.DailySpent = dec("4999.99")

	assert.NoError(t, v.ValidateDailyLimit(w, dec("0.01")), "exhausting the window is allowed")
	assert.ErrorIs(t, v.ValidateDailyLimit(w, dec("0.02")), ErrDailyLimitExceeded)
}

func TestValidateDebitOrder(t *testing.T) {
	v := testValidator()

	// All rules violated at once: the amount check wins.
	w := healthyWallet("0.00")
	w.Blacklisted = true
	w.Frozen = true
	w.DailySpent = dec("5000.00")
	assert.ErrorIs(t, v.ValidateDebit(w, dec("0.50"), OpTransfer), ErrInvalidAmount)

	// Valid amount: blacklist wins over frozen.
	assert.ErrorIs(t, v.ValidateDebit(w, dec("10.00"), OpTransfer), ErrWalletBlacklisted)

	w.Blacklisted = false
	assert.ErrorIs(t, v.ValidateDebit(w, dec("10.00"), OpTransfer), ErrWalletFrozen)

	w.Frozen = false
	assert.ErrorIs(t, v.ValidateDebit(w, dec("10.00"), OpTransfer), ErrInsufficientBalance)

	w.Balance = dec("10000.00")
	assert.ErrorIs(t, v.ValidateDebit(w, dec("10.00"), OpTransfer), ErrDailyLimitExceeded)

	w.DailySpent = decimal.Zero
	assert.NoError(t, v.ValidateDebit(w, dec("10.00"), OpTransfer))
}

func TestValidateCreditSkipsBalance(t *testing.T) {
	v := testValidator()

	// A zero-balance wallet can still receive a deposit.
	w := healthyWallet("0.00")
	assert.NoError(t, v.ValidateCredit(w, dec("10.00"), OpLoad))

	// But the daily window still applies.
	w.DailySpent = dec("5000.00")
	assert.ErrorIs(t, v.ValidateCredit(w, dec("10.00"), OpLoad), ErrDailyLimitExceeded)
}
