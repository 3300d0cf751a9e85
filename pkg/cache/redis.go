package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCache implementa a interface Cache usando Redis
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache cria uma nova instância de RedisCache e verifica a conexão
func NewRedisCache(addr string, password string, db int, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("falha ao conectar ao Redis",
			zap.String("addr", addr),
			zap.Error(err))
		return nil, err
	}

	logger.Info("conexão com Redis estabelecida",
		zap.String("addr", addr),
		zap.Int("db", db))

	return &RedisCache{
		client: client,
		logger: logger,
	}, nil
}

// Set armazena um valor no cache serializado como JSON
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("falha ao serializar valor para o cache", zap.Error(err))
		return err
	}

	return c.client.Set(ctx, key, data, expiration).Err()
}

// Get recupera um valor do cache
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Error("falha ao deserializar valor do cache", zap.Error(err))
		return true, err
	}

	return true, nil
}

// Delete remove um valor do cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Ping verifica se o Redis está acessível
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
