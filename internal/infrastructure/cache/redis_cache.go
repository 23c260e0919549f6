// Package cache implementa el puerto de caché del catálogo sobre Redis, con
// una variante no-op para entornos sin Redis configurado.
package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tu-usuario/consigna-pro/internal/application/catalog"
)

var _ catalog.Cache = (*RedisCache)(nil)
var _ catalog.Cache = (*NoopCache)(nil)

// RedisCache caché de lecturas sobre Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache construye el cliente Redis con los parámetros de conexión.
func NewRedisCache(addr, password string, db int) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client}
}

// Ping verifica la conexión.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get obtiene el valor de una clave. (nil, nil) si no existe o expiró.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set escribe una clave con TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// NoopCache desactiva la caché: todo Get es un miss y todo Set se descarta.
// Se usa cuando REDIS_ADDR no está configurado.
type NoopCache struct{}

// NewNoopCache construye la caché no-op.
func NewNoopCache() *NoopCache { return &NoopCache{} }

// Get siempre reporta miss.
func (NoopCache) Get(context.Context, string) ([]byte, error) { return nil, nil }

// Set descarta el valor.
func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
