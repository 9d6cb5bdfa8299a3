package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tembo/internal/models"
)

// MetricsCollector defines the interface for collecting engine metrics.
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordTransaction(txType string, amount decimal.Decimal)
	RecordError(operation, errType string)
	RecordRetry(operation string, attempt int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordTransaction(string, decimal.Decimal)     {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
func (n *NoopMetricsCollector) RecordRetry(string, int)                       {}

// NoopCache is a Cache that stores nothing. Useful for tests and for
// deployments without redis.
type NoopCache struct{}

func (NoopCache) GetWallet(context.Context, uint, string) (*models.Wallet, error) {
	return nil, nil
}
func (NoopCache) SetWallet(context.Context, *models.Wallet) error      { return nil }
func (NoopCache) InvalidateWallet(context.Context, uint, string) error { return nil }
