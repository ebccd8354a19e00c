// Package cache holds Redis-backed decorators for gateway lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"eventregistration/internal/domain"
)

const customerKeyPrefix = "customer:email:"

// CustomerCache decorates a PaymentGateway so customer lookups by email are
// served from Redis when possible. Charges pass straight through. Redis
// failures are logged and fall back to the gateway.
type CustomerCache struct {
	domain.PaymentGateway
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCustomerCache(gateway domain.PaymentGateway, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CustomerCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerCache{PaymentGateway: gateway, rdb: rdb, ttl: ttl, logger: logger}
}

func customerKey(email string) string {
	return customerKeyPrefix + domain.NormalizeEmail(email)
}

func (c *CustomerCache) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	key := customerKey(email)
	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var customer domain.Customer
		if err := json.Unmarshal(data, &customer); err == nil && customer.ID != "" {
			return &customer, nil
		}
		c.logger.Warn("discarding unreadable cached customer", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("customer cache read failed", "key", key, "err", err)
	}

	customer, err := c.PaymentGateway.FindCustomerByEmail(ctx, email)
	if err != nil || customer == nil {
		return customer, err
	}
	c.store(ctx, key, customer)
	return customer, nil
}

func (c *CustomerCache) CreateCustomer(ctx context.Context, profile *domain.Registrant) (*domain.Customer, error) {
	customer, err := c.PaymentGateway.CreateCustomer(ctx, profile)
	if err != nil {
		return nil, err
	}
	c.store(ctx, customerKey(profile.EmailAddress), customer)
	return customer, nil
}

func (c *CustomerCache) store(ctx context.Context, key string, customer *domain.Customer) {
	data, err := json.Marshal(customer)
	if err != nil {
		c.logger.Warn("customer cache encode failed", "key", key, "err", err)
		return
	}
	if err := c.rdb.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		c.logger.Warn("customer cache write failed", "key", key, "err", err)
	}
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, rdb redis.Cmdable) error {
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
