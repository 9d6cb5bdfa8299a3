package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tembo/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps redis with JSON marshalling and the wallet-specific
// key scheme. It serves read paths only; the transaction engine is the
// sole writer of wallet state and invalidates entries after each commit.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get unmarshals a cached value into dest, reporting whether the key was found.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

func walletCacheKey(ownerID uint, name string) string {
	return fmt.Sprintf("wallet:%d:%s", ownerID, name)
}

// SetWallet caches a wallet row.
func (s *CacheService) SetWallet(ctx context.Context, wallet *models.Wallet) error {
	return s.Set(ctx, walletCacheKey(wallet.OwnerID, wallet.Name), wallet)
}

// GetWallet returns a cached wallet row or nil when absent.
func (s *CacheService) GetWallet(ctx context.Context, ownerID uint, name string) (*models.Wallet, error) {
	var wallet models.Wallet
	found, err := s.Get(ctx, walletCacheKey(ownerID, name), &wallet)
	if err != nil || !found {
		return nil, err
	}
	return &wallet, nil
}

// InvalidateWallet drops the cached row for a wallet.
func (s *CacheService) InvalidateWallet(ctx context.Context, ownerID uint, name string) error {
	return s.Delete(ctx, walletCacheKey(ownerID, name))
}
