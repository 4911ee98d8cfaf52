package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Marker remembers that a notification already went out.
type Marker interface {
	// MarkOnce records key and reports whether this call was the first one.
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

func ShiftNotifiedKey(shiftID uint) string {
	return fmt.Sprintf("shift:notified:%d", shiftID)
}

type RedisMarker struct {
	client *redis.Client
}

func NewRedisMarker(client *redis.Client) *RedisMarker {
	return &RedisMarker{client: client}
}

func (m *RedisMarker) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return m.client.SetNX(ctx, key, 1, ttl).Result()
}

// MemoryMarker is the single-process fallback when redis is not configured.
type MemoryMarker struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

func NewMemoryMarker() *MemoryMarker {
	return &MemoryMarker{
		seen: map[string]time.Time{},
		now:  time.Now,
	}
}

func (m *MemoryMarker) MarkOnce(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if exp, ok := m.seen[key]; ok && now.Before(exp) {
		return false, nil
	}

	// drop expired keys while holding the lock
	for k, exp := range m.seen {
		if !now.Before(exp) {
			delete(m.seen, k)
		}
	}

	m.seen[key] = now.Add(ttl)
	return true, nil
}
