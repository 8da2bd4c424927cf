package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matchtag/MT-ReservationService/internal/domain"
)

var (
	// ErrMiss возвращается при отсутствии записи в кеше
	ErrMiss = errors.New("availability.cache: miss")

	// ErrUnavailable возвращается, когда redis недоступен
	ErrUnavailable = errors.New("availability.cache: redis unavailable")
)

// Cache кеш рассчитанной доступности в redis
// Ключ включает generation-счётчик пары (бар, дата): создание или отмена
// бронирования инкрементирует счётчик, и все записи этой пары мгновенно устаревают
// без сканирования ключей
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// New создает кеш доступности поверх готового redis-клиента
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		prefix: "avail",
	}
}

// Get возвращает закешированные слоты или ErrMiss
func (c *Cache) Get(ctx context.Context, barID int64, date time.Time, partySize, durationMinutes int) ([]domain.TimeSlot, error) {
	key, err := c.key(ctx, barID, date, partySize, durationMinutes)
	if err != nil {
		return nil, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrUnavailable, err)
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		// Битую запись считаем промахом, она перезапишется свежим расчётом
		return nil, ErrMiss
	}

	return slots, nil
}

// Set сохраняет рассчитанные слоты с TTL
func (c *Cache) Set(ctx context.Context, barID int64, date time.Time, partySize, durationMinutes int, slots []domain.TimeSlot) error {
	key, err := c.key(ctx, barID, date, partySize, durationMinutes)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("availability.cache: marshal: %w", err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrUnavailable, err)
	}

	return nil
}

// Invalidate устаревает все записи пары (бар, дата) одним INCR
func (c *Cache) Invalidate(ctx context.Context, barID int64, date time.Time) error {
	if err := c.client.Incr(ctx, c.genKey(barID, date)).Err(); err != nil {
		return fmt.Errorf("%w: invalidate: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *Cache) key(ctx context.Context, barID int64, date time.Time, partySize, durationMinutes int) (string, error) {
	gen, err := c.client.Get(ctx, c.genKey(barID, date)).Int64()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("%w: generation: %v", ErrUnavailable, err)
	}

	return fmt.Sprintf("%s:%d:%s:g%d:p%d:d%d",
		c.prefix, barID, date.Format(domain.DateFormat), gen, partySize, durationMinutes), nil
}

func (c *Cache) genKey(barID int64, date time.Time) string {
	return fmt.Sprintf("%s:gen:%d:%s", c.prefix, barID, date.Format(domain.DateFormat))
}
