package cache

import (
	"context"
	"time"
)

// Cache define a interface usada para dados de referência (roles).
// Estado de sessão nunca passa por aqui: cada requisição revalida o
// token do zero.
type Cache interface {
	// Set armazena um valor no cache com tempo de expiração
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Get recupera um valor do cache
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Delete remove um valor do cache
	Delete(ctx context.Context, key string) error

	// Ping verifica se o cache está acessível
	Ping(ctx context.Context) error
}
