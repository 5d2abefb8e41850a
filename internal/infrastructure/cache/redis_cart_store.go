// Package cache holds the Redis-backed cart store and its in-memory twin
// used by tests and single-node deployments.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCartStore implements cart.Store on a Redis hash per user. The hash
// field is the product id, the value a JSON-encoded cart item, so SetItem
// and RemoveItem are single O(1) commands and Clear is one DEL.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStore creates a cart store with its own Redis connection
func NewRedisCartStore(cfg config.RedisConfig, ttl time.Duration) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStoreWithClient(client, "", ttl), nil
}

// NewRedisCartStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisCartStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCartStore {
	if keyPrefix == "" {
		keyPrefix = "cart:"
	}
	return &RedisCartStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisCartStore) key(userID uuid.UUID) string {
	return s.keyPrefix + userID.String()
}

// Get returns the user's cart, empty when no hash exists
func (s *RedisCartStore) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	values, err := s.client.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := &cart.Cart{UserID: userID, Items: make([]cart.Item, 0, len(values))}
	for _, raw := range values {
		var item cart.Item
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("corrupt cart entry for user %s: %w", userID, err)
		}
		c.Items = append(c.Items, item)
	}
	return c, nil
}

// SetItem upserts one line and refreshes the cart TTL
func (s *RedisCartStore) SetItem(ctx context.Context, userID uuid.UUID, item cart.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode cart item: %w", err)
	}

	key := s.key(userID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, item.ProductID.String(), raw)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store cart item: %w", err)
	}
	return nil
}

// RemoveItem deletes one line. Removing an absent line is a no-op.
func (s *RedisCartStore) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error {
	if err := s.client.HDel(ctx, s.key(userID), productID.String()).Err(); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear deletes the whole cart. DEL on a missing key succeeds, which is what
// makes checkout's post-commit clear safe to repeat.
func (s *RedisCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
