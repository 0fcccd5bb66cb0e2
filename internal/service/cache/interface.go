package cache

import (
	"context"
	"time"
)

type ServiceInterface interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Health(ctx context.Context) error
	Close() error
}
