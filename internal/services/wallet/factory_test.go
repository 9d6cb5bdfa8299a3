package wallet

import (
	"errors"
	"testing"

	"tembo/internal/models"
	"tembo/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateNewWallet(t *testing.T) {
	repo := repositories.NewMemoryWalletRepository()

	w, err := getOrCreate(repo, 1, "Primary")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.Zero))
	assert.True(t, w.DailySpent.Equal(decimal.Zero))
	assert.False(t, w.Frozen)
	assert.False(t, w.Blacklisted)
	assert.Equal(t, uint64(0), w.Version)
	assert.False(t, w.LastTransactionDate.IsZero())
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	repo := repositories.NewMemoryWalletRepository()
	seeded := newWallet(1, "Primary")
	seeded.Balance = dec("42.00")
	require.NoError(t, repo.Create(seeded))

	w, err := getOrCreate(repo, 1, "Primary")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(dec("42.00")))
}

// raceRepo simulates a concurrent insert between the miss and the create.
type raceRepo struct {
	*repositories.MemoryWalletRepository
	missed bool
}

func (r *raceRepo) Get(ownerID uint, name string) (*models.Wallet, error) {
	if !r.missed {
		r.missed = true
		// First read misses; another writer then claims the row.
		w := newWallet(ownerID, name)
		w.Balance = dec("7.00")
		if err := r.MemoryWalletRepository.Create(w); err != nil {
			return nil, err
		}
		return nil, repositories.ErrWalletNotFound
	}
	return r.MemoryWalletRepository.Get(ownerID, name)
}

func TestGetOrCreateLosesInsertRace(t *testing.T) {
	repo := &raceRepo{MemoryWalletRepository: repositories.NewMemoryWalletRepository()}

	w, err := getOrCreate(repo, 1, "Primary")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(dec("7.00")), "loser of the race must read the winner's row")
}

func TestGetExisting(t *testing.T) {
	repo := repositories.NewMemoryWalletRepository()

	_, err := getExisting(repo, 1, "Primary")
	assert.ErrorIs(t, err, ErrWalletNotFound)

	require.NoError(t, repo.Create(newWallet(1, "Primary")))
	w, err := getExisting(repo, 1, "Primary")
	require.NoError(t, err)
	assert.Equal(t, "Primary", w.Name)
}

func TestCreateExplicit(t *testing.T) {
	repo := repositories.NewMemoryWalletRepository()

	_, err := createExplicit(repo, 1, "Primary")
	require.NoError(t, err)

	_, err = createExplicit(repo, 1, "Primary")
	assert.ErrorIs(t, err, ErrWalletExists)

	// A different name under the same owner is a distinct wallet.
	_, err = createExplicit(repo, 1, "Savings")
	assert.NoError(t, err)
}

func TestGetOrCreatePropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	failing := &failingGetRepo{WalletRepository: repositories.NewMemoryWalletRepository(), err: boom}

	_, err := getOrCreate(failing, 1, "Primary")
	assert.ErrorIs(t, err, boom)
}

type failingGetRepo struct {
	repositories.WalletRepository
	err error
}

func (r *failingGetRepo) Get(ownerID uint, name string) (*models.Wallet, error) {
	return nil, r.err
}
