// Package funding tops wallets up from external card payments. It charges
// the card through Stripe and feeds the settled amount into the wallet
// engine as a deposit, minting one idempotency token per charge.
package funding

import (
	"context"
	"errors"
	"fmt"

	"tembo/internal/services/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

var ErrChargeFailed = errors.New("card charge failed")

type Service struct {
	engine wallet.Service
}

func NewService(engine wallet.Service, apiKey string) *Service {
	if engine == nil {
		panic("wallet engine is required")
	}
	stripe.Key = apiKey
	return &Service{engine: engine}
}

// TopUpFromCard charges cardToken for amount and deposits the proceeds
// into the named wallet. The charge carries the same idempotency token as
// the ledger entry, so a retried request neither double-charges nor
// double-credits.
func (s *Service) TopUpFromCard(ctx context.Context, ownerID uint, walletName string, amount decimal.Decimal, cardToken string) (*wallet.OperationResult, error) {
	token := uuid.NewString()

	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(amount.Mul(decimal.NewFromInt(100)).IntPart()),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.SetSource(cardToken)
	params.SetIdempotencyKey(token)
	params.AddMetadata("wallet", walletName)

	ch, err := charge.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChargeFailed, err)
	}
	if !ch.Paid {
		return nil, ErrChargeFailed
	}

	return s.engine.LoadMoney(ctx, ownerID, walletName, amount, token)
}
