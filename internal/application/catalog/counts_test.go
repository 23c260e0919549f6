package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/consigna-pro/internal/application/catalog"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

type memCache struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	setHits int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.data[key], nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.setHits++
	c.data[key] = value
	return nil
}

func TestCounts_CacheYRellenoDeCeros(t *testing.T) {
	repo := &fakeOrderRepo{counts: map[string]int{
		repository.CategoryAll:     5,
		repository.CategoryLayaway: 2,
	}}
	cache := newMemCache()
	uc := catalog.NewCountsUseCase(repo, cache, 30*time.Second, logger.Nop())

	resp, err := uc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Counts[repository.CategoryAll])
	assert.Equal(t, 2, resp.Counts[repository.CategoryLayaway])
	// Las siete pestañas siempre presentes, con cero si no hay órdenes.
	assert.Len(t, resp.Counts, 7)
	assert.Equal(t, 0, resp.Counts[repository.CategoryCancelled])

	// Segunda llamada servida desde la caché, sin reconsultar.
	_, err = uc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), repo.countsCalls)
	assert.Equal(t, 1, cache.setHits)
}

// Una caché caída degrada a la consulta directa, nunca a un error.
func TestCounts_CacheCaidaDegradaALaConsulta(t *testing.T) {
	repo := &fakeOrderRepo{counts: map[string]int{repository.CategoryAll: 3}}
	cache := newMemCache()
	cache.getErr = errors.New("redis: connection refused")
	cache.setErr = cache.getErr
	uc := catalog.NewCountsUseCase(repo, cache, 30*time.Second, logger.Nop())

	resp, err := uc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Counts[repository.CategoryAll])

	_, err = uc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.countsCalls, "cada llamada reconsulta mientras la caché falle")
}
