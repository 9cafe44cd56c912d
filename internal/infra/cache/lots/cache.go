package lots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const listKey = "cache:lots:list"

var (
	// ErrCacheRead ошибка чтения из кэша
	ErrCacheRead = errors.New("lots.cache: failed to read")

	// ErrCacheWrite ошибка записи в кэш
	ErrCacheWrite = errors.New("lots.cache: failed to write")
)

// Cache кэш списка парковок в Redis. Отсутствие ключа - промах, не ошибка
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создаёт кэш поверх клиента Redis
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetList возвращает закэшированный список и признак попадания
func (c *Cache) GetList(ctx context.Context) ([]*domain.ParkingLot, bool, error) {
	data, err := c.client.Get(ctx, listKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetList - get: %v", ErrCacheRead, err)
	}

	var lots []*domain.ParkingLot
	if err := json.Unmarshal(data, &lots); err != nil {
		return nil, false, fmt.Errorf("%w: GetList - decode: %v", ErrCacheRead, err)
	}
	return lots, true, nil
}

// SetList сохраняет список с TTL
func (c *Cache) SetList(ctx context.Context, lots []*domain.ParkingLot) error {
	payload, err := json.Marshal(lots)
	if err != nil {
		return fmt.Errorf("%w: SetList - encode: %v", ErrCacheWrite, err)
	}
	if err := c.client.Set(ctx, listKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetList - set: %v", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate сбрасывает список после изменения любой парковки
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - del: %v", ErrCacheWrite, err)
	}
	return nil
}

// Nop кэш-заглушка, когда Redis не настроен
type Nop struct{}

func (Nop) GetList(context.Context) ([]*domain.ParkingLot, bool, error) { return nil, false, nil }
func (Nop) SetList(context.Context, []*domain.ParkingLot) error { return nil }
func (Nop) Invalidate(context.Context) error { return nil }
