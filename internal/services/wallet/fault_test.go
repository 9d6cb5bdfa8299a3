package wallet

import (
	"context"
	"errors"
	"testing"

	"tembo/internal/models"
	"tembo/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultRepo wraps the in-memory repository and injects errors into writes
// performed inside an atomic unit. Used to exercise rollback and the
// version-conflict retry loop.
type faultRepo struct {
	*repositories.MemoryWalletRepository
	beforeUpdate   func() error
	beforeCreateTx func() error
}

func (r *faultRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return r.MemoryWalletRepository.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		return fn(&faultTx{inner: tx, parent: r})
	})
}

type faultTx struct {
	inner  repositories.WalletRepository
	parent *faultRepo
}

func (t *faultTx) Create(w *models.Wallet) error        { return t.inner.Create(w) }
func (t *faultTx) Get(ownerID uint, name string) (*models.Wallet, error) {
	return t.inner.Get(ownerID, name)
}

func (t *faultTx) UpdateVersioned(w *models.Wallet) error {
	if t.parent.beforeUpdate != nil {
		if err := t.parent.beforeUpdate(); err != nil {
			return err
		}
	}
	return t.inner.UpdateVersioned(w)
}

func (t *faultTx) SetBlacklisted(ownerID uint, blacklisted bool) error {
	return t.inner.SetBlacklisted(ownerID, blacklisted)
}

func (t *faultTx) CreateTransaction(tx *models.Transaction) error {
	if t.parent.beforeCreateTx != nil {
		if err := t.parent.beforeCreateTx(); err != nil {
			return err
		}
	}
	return t.inner.CreateTransaction(tx)
}

func (t *faultTx) GetTransactionByToken(token string) (*models.Transaction, error) {
	return t.inner.GetTransactionByToken(token)
}

func (t *faultTx) ListTransactions(ownerID uint, walletName string, limit, offset int) ([]models.Transaction, error) {
	return t.inner.ListTransactions(ownerID, walletName, limit, offset)
}

func (t *faultTx) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(t)
}

func TestTransferAtomicity(t *testing.T) {
	mem := repositories.NewMemoryWalletRepository()
	boom := errors.New("ledger write failed")
	calls := 0
	repo := &faultRepo{
		MemoryWalletRepository: mem,
		beforeCreateTx: func() error {
			calls++
			if calls == 2 {
				return boom // second leg of the transfer fails
			}
			return nil
		},
	}
	svc := newTestEngine(t, repo, 2)
	seedWallet(t, mem, 1, "Primary", "200.00")
	seedWallet(t, mem, 2, "Primary", "0.00")

	_, err := svc.Transfer(context.Background(), 1, "Primary", 2, "Primary", dec("75.00"), uuid.NewString())
	require.ErrorIs(t, err, boom)

	// Neither the debit nor the credit may survive a partial failure.
	sender, err := mem.Get(1, "Primary")
	require.NoError(t, err)
	receiver, err := mem.Get(2, "Primary")
	require.NoError(t, err)
	assert.True(t, sender.Balance.Equal(dec("200.00")))
	assert.True(t, receiver.Balance.Equal(dec("0.00")))
	assert.Equal(t, 0, mem.LedgerSize())
}

func TestRetryRecoversFromVersionConflict(t *testing.T) {
	mem := repositories.NewMemoryWalletRepository()
	conflicts := 2 // fewer than MaxRetries
	repo := &faultRepo{
		MemoryWalletRepository: mem,
		beforeUpdate: func() error {
			if conflicts > 0 {
				conflicts--
				return repositories.ErrVersionConflict
			}
			return nil
		},
	}
	svc := newTestEngine(t, repo)

	res, err := svc.LoadMoney(context.Background(), 1, "Primary", dec("100.00"), uuid.NewString())
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(dec("100.00")))
	assert.Equal(t, 0, conflicts)
}

func TestRetriesExhausted(t *testing.T) {
	mem := repositories.NewMemoryWalletRepository()
	repo := &faultRepo{
		MemoryWalletRepository: mem,
		beforeUpdate: func() error {
			return repositories.ErrVersionConflict
		},
	}
	svc := newTestEngine(t, repo)

	_, err := svc.LoadMoney(context.Background(), 1, "Primary", dec("100.00"), uuid.NewString())
	assert.ErrorIs(t, err, ErrRetriesExhausted)

	// Every attempt rolled back; nothing was committed.
	assert.Equal(t, 0, mem.LedgerSize())
}

func TestRetryDoesNotRepeatNonConflictErrors(t *testing.T) {
	mem := repositories.NewMemoryWalletRepository()
	boom := errors.New("disk full")
	attempts := 0
	repo := &faultRepo{
		MemoryWalletRepository: mem,
		beforeUpdate: func() error {
			attempts++
			return boom
		},
	}
	svc := newTestEngine(t, repo)

	_, err := svc.LoadMoney(context.Background(), 1, "Primary", dec("100.00"), uuid.NewString())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts, "only version conflicts are retried")
}
