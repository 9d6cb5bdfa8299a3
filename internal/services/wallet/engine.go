package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tembo/internal/models"
	"tembo/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	repo      repositories.WalletRepository
	cache     Cache
	resolver  UserResolver
	validator *Validator
	config    Config
	metrics   MetricsCollector
}

// NewService creates the wallet transaction engine.
func NewService(
	repo repositories.WalletRepository,
	cache Cache,
	resolver UserResolver,
	config Config,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}

	if config.MinAmount.IsZero() {
		config.MinAmount = decimal.RequireFromString(DefaultMinAmount)
	}
	if config.MaxAmount.IsZero() {
		config.MaxAmount = decimal.RequireFromString(DefaultMaxAmount)
	}
	if config.DailyLimit.IsZero() {
		config.DailyLimit = decimal.RequireFromString(DefaultDailyLimit)
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = DefaultRetryBackoff
	}

	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:      repo,
		cache:     cache,
		resolver:  resolver,
		validator: NewValidator(config),
		config:    config,
		metrics:   metrics,
	}
}

// dateOf truncates a point in time to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// resetDailyWindow zeroes the daily counters once the calendar day has
// rolled over. Runs inside the atomic unit, after the row is loaded and
// before validation, so the reset commits together with the mutation.
func resetDailyWindow(w *models.Wallet, now time.Time) {
	today := dateOf(now)
	if !w.LastTransactionDate.Equal(today) {
		w.DailySpent = decimal.Zero
		w.Frozen = false
		w.LastTransactionDate = today
	}
}

// checkDuplicate fails fast when the idempotency token is already in the
// ledger. The (token, type) unique constraint inside the atomic unit is
// the backstop for concurrent replays.
func (s *service) checkDuplicate(token string) error {
	if token == "" {
		return ErrMissingToken
	}
	_, err := s.repo.GetTransactionByToken(token)
	if err == nil {
		return ErrDuplicateOperation
	}
	if !errors.Is(err, repositories.ErrTransactionNotFound) {
		return fmt.Errorf("failed to check idempotency token: %w", err)
	}
	return nil
}

func (s *service) operationResult(w *models.Wallet) *OperationResult {
	remaining := s.config.DailyLimit.Sub(w.DailySpent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return &OperationResult{
		OwnerID:        w.OwnerID,
		WalletName:     w.Name,
		Balance:        w.Balance,
		DailySpent:     w.DailySpent,
		RemainingDaily: remaining,
		Frozen:         w.Frozen,
	}
}

// LoadMoney deposits amount into the named wallet, creating it on first
// reference.
func (s *service) LoadMoney(ctx context.Context, ownerID uint, walletName string, amount decimal.Decimal, token string) (*OperationResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OpLoad, time.Since(start)) }()

	if err := s.checkDuplicate(token); err != nil {
		return nil, err
	}

	var res *OperationResult
	err := s.withRetry(ctx, OpLoad, func() error {
		res = nil
		return s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
			w, err := getOrCreate(tx, ownerID, walletName)
			if err != nil {
				return err
			}

			now := time.Now()
			resetDailyWindow(w, now)

			if err := s.validator.ValidateCredit(w, amount, OpLoad); err != nil {
				return err
			}

			w.Balance = w.Balance.Add(amount)
			w.DailySpent = w.DailySpent.Add(amount)
			if w.DailySpent.GreaterThanOrEqual(s.config.DailyLimit) {
				w.Frozen = true
			}

			if err := tx.UpdateVersioned(w); err != nil {
				return err
			}

			entry := &models.Transaction{
				Token:      token,
				Type:       models.TransactionTypeCredit,
				OwnerID:    ownerID,
				WalletName: walletName,
				Amount:     amount,
			}
			if err := tx.CreateTransaction(entry); err != nil {
				if errors.Is(err, repositories.ErrDuplicateTransaction) {
					return ErrDuplicateOperation
				}
				return err
			}

			res = s.operationResult(w)
			return nil
		})
	})
	if err != nil {
		s.metrics.RecordError(OpLoad, err.Error())
		return nil, err
	}

	s.cache.InvalidateWallet(ctx, ownerID, walletName)
	s.metrics.RecordTransaction(models.TransactionTypeCredit, amount)
	return res, nil
}

// Transfer moves amount from the sender's wallet to another user's
// wallet. The receiver identity is resolved through the user directory;
// only the sender is validated, the credit side is never checked for
// frozen or blacklist state.
func (s *service) Transfer(ctx context.Context, senderID uint, senderWallet string, receiverID uint, receiverWallet string, amount decimal.Decimal, token string) (*OperationResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OpTransfer, time.Since(start)) }()

	if _, err := s.resolver.ResolveUser(ctx, receiverID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrCounterpartyNotFound
		}
		return nil, fmt.Errorf("failed to resolve receiver: %w", err)
	}

	res, err := s.transferBetween(ctx, OpTransfer, transferLeg{
		ownerID: senderID, wallet: senderWallet, txType: models.TransactionTypeDebit,
	}, transferLeg{
		ownerID: receiverID, wallet: receiverWallet, txType: models.TransactionTypeCredit,
	}, amount, token)
	if err != nil {
		s.metrics.RecordError(OpTransfer, err.Error())
		return nil, err
	}
	s.metrics.RecordTransaction(models.TransactionTypeDebit, amount)
	return res, nil
}

// InternalTransfer moves amount between two wallets of the same owner.
func (s *service) InternalTransfer(ctx context.Context, ownerID uint, fromWallet, toWallet string, amount decimal.Decimal, token string) (*OperationResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OpInternalTransfer, time.Since(start)) }()

	res, err := s.transferBetween(ctx, OpInternalTransfer, transferLeg{
		ownerID: ownerID, wallet: fromWallet, txType: models.TransactionTypeInternal,
	}, transferLeg{
		ownerID: ownerID, wallet: toWallet, txType: models.TransactionTypeSelfCredit,
	}, amount, token)
	if err != nil {
		s.metrics.RecordError(OpInternalTransfer, err.Error())
		return nil, err
	}
	s.metrics.RecordTransaction(models.TransactionTypeInternal, amount)
	return res, nil
}

type transferLeg struct {
	ownerID uint
	wallet  string
	txType  string
}

// transferBetween is the shared two-wallet mutation protocol. Both wallet
// writes and both ledger appends commit together or not at all; a version
// conflict on either wallet aborts the unit and the outer retry re-reads
// everything fresh.
func (s *service) transferBetween(ctx context.Context, operation string, debit, credit transferLeg, amount decimal.Decimal, token string) (*OperationResult, error) {
	if debit.ownerID == credit.ownerID && debit.wallet == credit.wallet {
		return nil, ErrSelfTransfer
	}

	if err := s.checkDuplicate(token); err != nil {
		return nil, err
	}

	var res *OperationResult
	err := s.withRetry(ctx, operation, func() error {
		res = nil
		return s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
			sender, err := getExisting(tx, debit.ownerID, debit.wallet)
			if err != nil {
				return err
			}
			receiver, err := getOrCreate(tx, credit.ownerID, credit.wallet)
			if err != nil {
				return err
			}

			now := time.Now()
			resetDailyWindow(sender, now)
			resetDailyWindow(receiver, now)

			if err := s.validator.ValidateDebit(sender, amount, operation); err != nil {
				return err
			}

			sender.Balance = sender.Balance.Sub(amount)
			sender.DailySpent = sender.DailySpent.Add(amount)
			if sender.DailySpent.GreaterThanOrEqual(s.config.DailyLimit) {
				sender.Frozen = true
			}
			receiver.Balance = receiver.Balance.Add(amount)

			if err := tx.UpdateVersioned(sender); err != nil {
				return err
			}
			if err := tx.UpdateVersioned(receiver); err != nil {
				return err
			}

			entries := []*models.Transaction{
				{
					Token:              token,
					Type:               debit.txType,
					OwnerID:            debit.ownerID,
					WalletName:         debit.wallet,
					CounterpartyWallet: credit.wallet,
					Amount:             amount,
				},
				{
					Token:              token,
					Type:               credit.txType,
					OwnerID:            credit.ownerID,
					WalletName:         credit.wallet,
					CounterpartyWallet: debit.wallet,
					Amount:             amount,
				},
			}
			for _, entry := range entries {
				if err := tx.CreateTransaction(entry); err != nil {
					if errors.Is(err, repositories.ErrDuplicateTransaction) {
						return ErrDuplicateOperation
					}
					return err
				}
			}

			res = s.operationResult(sender)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateWallet(ctx, debit.ownerID, debit.wallet)
	s.cache.InvalidateWallet(ctx, credit.ownerID, credit.wallet)
	return res, nil
}

// CreateWallet explicitly provisions a wallet, failing when the name is
// already taken for this owner.
func (s *service) CreateWallet(ctx context.Context, ownerID uint, name string) (*models.Wallet, error) {
	w, err := createExplicit(s.repo, ownerID, name)
	if err != nil {
		return nil, err
	}
	s.cache.SetWallet(ctx, w)
	return w, nil
}

// GetWallet returns the wallet row, consulting the read cache first.
func (s *service) GetWallet(ctx context.Context, ownerID uint, name string) (*models.Wallet, error) {
	if w, err := s.cache.GetWallet(ctx, ownerID, name); err == nil && w != nil {
		return w, nil
	}

	w, err := getExisting(s.repo, ownerID, name)
	if err != nil {
		return nil, err
	}

	s.cache.SetWallet(ctx, w)
	return w, nil
}

// GetBalance returns the wallet's current balance.
func (s *service) GetBalance(ctx context.Context, ownerID uint, name string) (decimal.Decimal, error) {
	w, err := s.GetWallet(ctx, ownerID, name)
	if err != nil {
		return decimal.Zero, err
	}
	return w.Balance, nil
}

// ListTransactions returns the wallet's ledger entries, newest first.
func (s *service) ListTransactions(ctx context.Context, ownerID uint, name string, limit, offset int) ([]models.Transaction, error) {
	if _, err := getExisting(s.repo, ownerID, name); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ownerID, name, limit, offset)
}
