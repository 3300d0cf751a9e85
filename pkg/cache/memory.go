package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MemoryCache implementa a interface Cache usando armazenamento em memória
type MemoryCache struct {
	cache  *cache.Cache
	mutex  sync.RWMutex
	logger *zap.Logger
}

// NewMemoryCache cria uma nova instância de MemoryCache
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration, logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		cache:  cache.New(defaultExpiration, cleanupInterval),
		logger: logger,
	}
}

// Set armazena um valor no cache
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Set(key, value, expiration)
	return nil
}

// Get recupera um valor do cache
func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	value, found := c.cache.Get(key)
	if !found {
		return false, nil
	}

	// Para tipos simples, atribuir diretamente
	switch dest := dest.(type) {
	case *string:
		if str, ok := value.(string); ok {
			*dest = str
			return true, nil
		}
	case *int64:
		if i, ok := value.(int64); ok {
			*dest = i
			return true, nil
		}
	}

	// Para estruturas, usar JSON como intermediário
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar do cache", zap.Error(err))
		return true, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar para o destino", zap.Error(err))
		return true, err
	}

	return true, nil
}

// Delete remove um valor do cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Delete(key)
	return nil
}

// Ping verifica se o cache está funcionando
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil // O cache em memória está sempre disponível
}
