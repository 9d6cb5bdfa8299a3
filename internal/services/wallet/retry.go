package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tembo/internal/repositories"
)

// withRetry runs one atomic unit, re-running it from scratch while the
// store reports a version conflict. Every other failure propagates on
// first occurrence. When the attempt bound is hit the last conflict is
// surfaced as ErrRetriesExhausted.
func (s *service) withRetry(ctx context.Context, operation string, fn func() error) error {
	var err error
	for attempt := 0; attempt < s.config.MaxRetries; attempt++ {
		if attempt > 0 {
			s.metrics.RecordRetry(operation, attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.config.RetryBackoff):
			}
		}
		err = fn()
		if err == nil || !errors.Is(err, repositories.ErrVersionConflict) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrRetriesExhausted, err)
}
