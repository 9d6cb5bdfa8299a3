package repositories

import (
	"fmt"
	"sort"
	"sync"

	"tembo/internal/models"
)

// memoryState is a snapshot of all stored rows. Transactions stage their
// writes on a deep copy and swap it in on commit, so a failed atomic unit
// leaves the live state untouched.
type memoryState struct {
	wallets      map[string]*models.Wallet
	ledger       map[string]*models.Transaction // keyed token:type
	nextWalletID uint
	nextTxID     uint
}

func walletKey(ownerID uint, name string) string {
	return fmt.Sprintf("%d:%s", ownerID, name)
}

func (s *memoryState) clone() *memoryState {
	out := &memoryState{
		wallets:      make(map[string]*models.Wallet, len(s.wallets)),
		ledger:       make(map[string]*models.Transaction, len(s.ledger)),
		nextWalletID: s.nextWalletID,
		nextTxID:     s.nextTxID,
	}
	for k, w := range s.wallets {
		cp := *w
		out.wallets[k] = &cp
	}
	for k, t := range s.ledger {
		cp := *t
		out.ledger[k] = &cp
	}
	return out
}

// MemoryWalletRepository is an in-memory WalletRepository used by tests.
// It enforces the same unique constraints and version checks as the
// PostgreSQL implementation.
type MemoryWalletRepository struct {
	mu    sync.Mutex
	state *memoryState
}

func NewMemoryWalletRepository() *MemoryWalletRepository {
	return &MemoryWalletRepository{
		state: &memoryState{
			wallets:      make(map[string]*models.Wallet),
			ledger:       make(map[string]*models.Transaction),
			nextWalletID: 1,
			nextTxID:     1,
		},
	}
}

func (r *MemoryWalletRepository) Create(wallet *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (&memoryTx{state: r.state}).Create(wallet)
}

func (r *MemoryWalletRepository) Get(ownerID uint, name string) (*models.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (&memoryTx{state: r.state}).Get(ownerID, name)
}

func (r *MemoryWalletRepository) UpdateVersioned(wallet *models.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (&memoryTx{state: r.state}).UpdateVersioned(wallet)
}

func (r *MemoryWalletRepository) SetBlacklisted(ownerID uint, blacklisted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (&memoryTx{state: r.state}).SetBlacklisted(ownerID, blacklisted)
}

func (r *MemoryWalletRepository) CreateTransaction(tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (&memoryTx{state: r.state}).CreateTransaction(tx)
}

func (r *MemoryWalletRepository) GetTransactionByToken(token string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (&memoryTx{state: r.state}).GetTransactionByToken(token)
}

func (r *MemoryWalletRepository) ListTransactions(ownerID uint, walletName string, limit, offset int) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (&memoryTx{state: r.state}).ListTransactions(ownerID, walletName, limit, offset)
}

func (r *MemoryWalletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	staged := r.state.clone()
	if err := fn(&memoryTx{state: staged}); err != nil {
		return err
	}
	r.state = staged
	return nil
}

// LedgerSize is a test helper reporting the number of ledger entries.
func (r *MemoryWalletRepository) LedgerSize() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.state.ledger)
}

// memoryTx operates on one state snapshot. The repository mutex is held
// by the caller for the whole atomic unit, so no further locking here.
type memoryTx struct {
	state *memoryState
}

func (t *memoryTx) Create(wallet *models.Wallet) error {
	key := walletKey(wallet.OwnerID, wallet.Name)
	if _, exists := t.state.wallets[key]; exists {
		return ErrDuplicateWallet
	}
	cp := *wallet
	cp.ID = t.state.nextWalletID
	t.state.nextWalletID++
	t.state.wallets[key] = &cp
	wallet.ID = cp.ID
	return nil
}

func (t *memoryTx) Get(ownerID uint, name string) (*models.Wallet, error) {
	w, ok := t.state.wallets[walletKey(ownerID, name)]
	if !ok {
		return nil, ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (t *memoryTx) UpdateVersioned(wallet *models.Wallet) error {
	stored, ok := t.state.wallets[walletKey(wallet.OwnerID, wallet.Name)]
	if !ok || stored.Version != wallet.Version {
		return ErrVersionConflict
	}
	cp := *wallet
	cp.Version++
	t.state.wallets[walletKey(wallet.OwnerID, wallet.Name)] = &cp
	wallet.Version = cp.Version
	return nil
}

func (t *memoryTx) SetBlacklisted(ownerID uint, blacklisted bool) error {
	for _, w := range t.state.wallets {
		if w.OwnerID == ownerID {
			w.Blacklisted = blacklisted
		}
	}
	return nil
}

func (t *memoryTx) CreateTransaction(tx *models.Transaction) error {
	key := tx.Token + ":" + tx.Type
	if _, exists := t.state.ledger[key]; exists {
		return ErrDuplicateTransaction
	}
	cp := *tx
	cp.ID = t.state.nextTxID
	t.state.nextTxID++
	t.state.ledger[key] = &cp
	tx.ID = cp.ID
	return nil
}

func (t *memoryTx) GetTransactionByToken(token string) (*models.Transaction, error) {
	for _, entry := range t.state.ledger {
		if entry.Token == token {
			cp := *entry
			return &cp, nil
		}
	}
	return nil, ErrTransactionNotFound
}

func (t *memoryTx) ListTransactions(ownerID uint, walletName string, limit, offset int) ([]models.Transaction, error) {
	var txs []models.Transaction
	for _, entry := range t.state.ledger {
		if entry.OwnerID == ownerID && entry.WalletName == walletName {
			txs = append(txs, *entry)
		}
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID > txs[j].ID })
	if offset >= len(txs) {
		return nil, nil
	}
	txs = txs[offset:]
	if limit > 0 && limit < len(txs) {
		txs = txs[:limit]
	}
	return txs, nil
}

func (t *memoryTx) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return fn(t)
}
