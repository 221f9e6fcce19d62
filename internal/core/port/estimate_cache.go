package port

import (
	"context"
	"time"
)

// EstimateCachePort - кэш результатов расчетов. Значения сериализуются адаптером.
type EstimateCachePort interface {
	// Get возвращает false без ошибки, если ключа нет.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
