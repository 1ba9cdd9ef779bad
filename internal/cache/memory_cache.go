package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"admitpath/internal/domain"
)

// MemoryPredictionCache es el fallback en proceso cuando Redis no está
// configurado, el mismo patrón que el rate limiter en memoria del resto
// de la plataforma. Válido para una sola instancia; la invalidación
// cruzada entre instancias requiere Redis.
type MemoryPredictionCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	result    domain.PredictionResult
	expiresAt time.Time
}

func NewMemoryPredictionCache() *MemoryPredictionCache {
	return &MemoryPredictionCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryPredictionCache) Get(_ context.Context, key string) (domain.PredictionResult, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return domain.PredictionResult{}, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		// Re-chequear bajo el write lock: un Set concurrente pudo haber
		// renovado la entrada entre los dos locks y no hay que borrarlo.
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && time.Now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return domain.PredictionResult{}, false, nil
	}
	return entry.result, true, nil
}

func (c *MemoryPredictionCache) Set(_ context.Context, key string, result domain.PredictionResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{result: result, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryPredictionCache) InvalidateProfile(_ context.Context, profileID string) error {
	prefix := strings.TrimSuffix(profilePattern(profileID), "*")
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
	return nil
}
