/*
Package wallet implements the wallet transaction engine.

The engine owns every balance-affecting write: deposits (LoadMoney),
peer-to-peer transfers and same-owner internal transfers. Each operation
runs as one atomic storage unit containing the daily-window reset, the
validation pipeline, the wallet mutation(s) and the ledger append(s).
Wallet rows carry an optimistic version counter; a write against a stale
version aborts the unit and the engine retries it from scratch, re-reading
fresh state, up to a bounded number of attempts.

Callers supply an idempotency token per logical operation. A token already
present in the ledger fails fast with ErrDuplicateOperation and never
mutates state.

Usage:

	svc := wallet.NewService(repo, cache, resolver, wallet.Config{}, nil)

	res, err := svc.LoadMoney(ctx, ownerID, "Primary", amount, token)

	res, err = svc.Transfer(ctx, senderID, "Primary", receiverID, "Primary", amount, token)

Error handling:

Validation failures (ErrInvalidAmount, ErrWalletBlacklisted, ErrWalletFrozen,
ErrInsufficientBalance, ErrDailyLimitExceeded), missing wallets and duplicate
tokens are terminal on first occurrence. Version conflicts are absorbed by
the retry loop and surface only as ErrRetriesExhausted when the bound is hit.
*/
package wallet
