package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

const countsCacheKey = "catalog:counts"

// Cache puerto mínimo de caché de lecturas. Get devuelve (nil, nil) si la
// clave no existe o expiró.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CountsUseCase resuelve los totales por pestaña para los badges, con una
// caché corta por delante: los badges toleran unos segundos de atraso y la
// consulta agregada no se repite en cada render. Un fallo de caché degrada a
// la consulta directa, nunca a un error.
type CountsUseCase struct {
	orderRepo repository.SaleOrderRepository
	cache     Cache
	ttl       time.Duration
	log       *logger.Logger
}

// NewCountsUseCase construye el caso de uso.
func NewCountsUseCase(orderRepo repository.SaleOrderRepository, cache Cache, ttl time.Duration, log *logger.Logger) *CountsUseCase {
	return &CountsUseCase{orderRepo: orderRepo, cache: cache, ttl: ttl, log: log}
}

// Counts devuelve el total de órdenes por cada una de las siete pestañas.
func (uc *CountsUseCase) Counts(ctx context.Context) (*dto.CategoryCountsResponse, error) {
	if raw, err := uc.cache.Get(ctx, countsCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("caché de conteos no disponible")
	} else if raw != nil {
		var cached dto.CategoryCountsResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	counts, err := uc.orderRepo.CountsByCategory()
	if err != nil {
		return nil, err
	}
	// Toda pestaña aparece aunque su conteo sea cero.
	for _, c := range Categories {
		if _, ok := counts[c]; !ok {
			counts[c] = 0
		}
	}
	resp := &dto.CategoryCountsResponse{Counts: counts}

	if raw, err := json.Marshal(resp); err == nil {
		if err := uc.cache.Set(ctx, countsCacheKey, raw, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo escribir la caché de conteos")
		}
	}
	return resp, nil
}
