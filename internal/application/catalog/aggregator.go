package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/consigna-pro/internal/application/dto"
	"github.com/tu-usuario/consigna-pro/internal/application/sales"
	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

// Categories son las siete pestañas del catálogo, en orden de presentación.
var Categories = []string{
	repository.CategoryAll,
	repository.CategoryRegular,
	repository.CategoryLayaway,
	repository.CategoryOverdue,
	repository.CategoryConsigned,
	repository.CategoryPaid,
	repository.CategoryCancelled,
}

// ValidCategory indica si category es una de las siete pestañas.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Filter filtros de una pestaña: búsqueda, rango de fechas de compra y
// ordenamiento, todos opcionales e independientes por pestaña.
type Filter struct {
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	SortBy   string // date_purchased, total; por defecto date_purchased
	OrderBy  string // asc, desc; por defecto desc
}

// viewState estado por pestaña: la época del último refresh emitido y el
// último resultado confirmado.
type viewState struct {
	epoch     uint64
	committed *dto.CatalogViewResponse
}

// Aggregator mantiene las siete vistas del catálogo. Cada refresh lleva una
// época monótona por pestaña: las consultas de conteo y listado corren en
// paralelo y, si al volver su época fue superada por un refresh más nuevo de
// la misma pestaña, el resultado se descarta en silencio y se devuelve el
// último estado confirmado. Las pestañas nunca se pisan entre sí.
type Aggregator struct {
	orderRepo repository.SaleOrderRepository
	pageSize  int
	log       *logger.Logger

	mu    sync.Mutex
	views map[string]*viewState
}

// NewAggregator construye el agregador con el tamaño de página de los listados.
func NewAggregator(orderRepo repository.SaleOrderRepository, pageSize int, log *logger.Logger) *Aggregator {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Aggregator{
		orderRepo: orderRepo,
		pageSize:  pageSize,
		log:       log,
		views:     make(map[string]*viewState, len(Categories)),
	}
}

// Refresh reconsulta una pestaña con sus filtros y página. Un rango de fechas
// invertido devuelve ErrDateRange sin consultar y sin tocar el estado previo.
func (a *Aggregator) Refresh(ctx context.Context, category string, f Filter, page int) (*dto.CatalogViewResponse, error) {
	if !ValidCategory(category) {
		return nil, domain.NewValidationError("category")
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return nil, domain.ErrDateRange
	}
	if page <= 0 {
		page = 1
	}

	a.mu.Lock()
	vs, ok := a.views[category]
	if !ok {
		vs = &viewState{}
		a.views[category] = vs
	}
	vs.epoch++
	epoch := vs.epoch
	a.mu.Unlock()

	params := repository.ListParams{
		Category: category,
		Search:   NormalizeSearch(f.Search),
		DateFrom: f.DateFrom,
		DateTo:   f.DateTo,
		Limit:    a.pageSize,
		Offset:   (page - 1) * a.pageSize,
		SortBy:   f.SortBy,
		OrderBy:  f.OrderBy,
	}

	// Conteo y listado en paralelo; ambos pertenecen a la misma época.
	var (
		orders   []*entity.SaleOrder
		total    int
		listErr  error
		countErr error
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		orders, listErr = a.orderRepo.List(params)
	}()
	go func() {
		defer wg.Done()
		total, countErr = a.orderRepo.Count(params)
	}()
	wg.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()

	if epoch != vs.epoch {
		// Un refresh más nuevo de esta pestaña ganó la carrera.
		a.log.Debug().
			Str("category", category).
			Uint64("epoch", epoch).
			Uint64("current", vs.epoch).
			Msg("resultado de catálogo obsoleto descartado")
		return a.committedLocked(category, vs), nil
	}
	if listErr != nil {
		return nil, listErr
	}
	if countErr != nil {
		return nil, countErr
	}

	now := time.Now()
	resp := &dto.CatalogViewResponse{
		Category:   category,
		Orders:     make([]dto.OrderResponse, 0, len(orders)),
		Pagination: dto.NewPageResponse(page, a.pageSize, total),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, sales.ToOrderResponse(o, now))
	}
	vs.committed = resp
	return resp, nil
}

// View devuelve el último estado confirmado de una pestaña sin reconsultar.
func (a *Aggregator) View(category string) (*dto.CatalogViewResponse, error) {
	if !ValidCategory(category) {
		return nil, domain.NewValidationError("category")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	vs := a.views[category]
	return a.committedLocked(category, vs), nil
}

func (a *Aggregator) committedLocked(category string, vs *viewState) *dto.CatalogViewResponse {
	if vs != nil && vs.committed != nil {
		return vs.committed
	}
	return &dto.CatalogViewResponse{
		Category:   category,
		Orders:     []dto.OrderResponse{},
		Pagination: dto.NewPageResponse(1, a.pageSize, 0),
	}
}
