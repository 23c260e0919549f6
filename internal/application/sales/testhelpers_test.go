package sales_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/consigna-pro/internal/application/ledger"
	"github.com/tu-usuario/consigna-pro/internal/application/sales"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el motor de ventas: un stockStore (repos del ledger) y
// un salesStore (orden/pagos/plan), cada uno actuando como su propio TxRunner.
// ──────────────────────────────────────────────────────────────────────────────

type stockStore struct {
	items     map[string]*entity.StockItem
	movements []*entity.StockMovement
}

func newStockStore(items ...*entity.StockItem) *stockStore {
	s := &stockStore{items: map[string]*entity.StockItem{}}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *stockStore) GetByID(id string) (*entity.StockItem, error)      { return s.items[id], nil }
func (s *stockStore) GetForUpdate(id string) (*entity.StockItem, error) { return s.items[id], nil }

func (s *stockStore) UpdateQuantities(id string, qtyInStock, soldStock int) error {
	it := s.items[id]
	it.QtyInStock = qtyInStock
	it.SoldStock = soldStock
	return nil
}

func (s *stockStore) List(string, int, int) ([]*entity.StockItem, error) { return nil, nil }
func (s *stockStore) Count(string) (int, error)                          { return len(s.items), nil }

func (s *stockStore) Create(mov *entity.StockMovement) error {
	s.movements = append(s.movements, mov)
	return nil
}

func (s *stockStore) ListByItem(itemID string, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.StockItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stockStore) ListByReference(ref string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.Reference == ref {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stockStore) Run(_ context.Context, fn func(
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(s, s)
}

// snapshot copia las cantidades actuales (para verificar igualdad antes/después).
func (s *stockStore) snapshot() map[string]int {
	out := map[string]int{}
	for id, it := range s.items {
		out[id] = it.QtyInStock
	}
	return out
}

type salesStore struct {
	orders   map[string]*entity.SaleOrder
	lines    map[string][]*entity.SaleOrderLine
	payments map[string][]*entity.Payment
	plans    map[string]*entity.LayawayPlan
}

func newSalesStore() *salesStore {
	return &salesStore{
		orders:   map[string]*entity.SaleOrder{},
		lines:    map[string][]*entity.SaleOrderLine{},
		payments: map[string][]*entity.Payment{},
		plans:    map[string]*entity.LayawayPlan{},
	}
}

func (s *salesStore) Create(order *entity.SaleOrder) error {
	s.orders[order.ID] = order
	return nil
}

func (s *salesStore) CreateLine(line *entity.SaleOrderLine) error {
	s.lines[line.OrderID] = append(s.lines[line.OrderID], line)
	return nil
}

// GetByID puebla Outstanding y DueDate igual que el repositorio real.
func (s *salesStore) GetByID(id string) (*entity.SaleOrder, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	paid, _ := s.SumByOrder(id)
	cp.Outstanding = cp.Total.Sub(paid)
	if plan, ok := s.plans[id]; ok {
		due := plan.DueDate
		cp.DueDate = &due
	}
	return &cp, nil
}

func (s *salesStore) GetForUpdate(id string) (*entity.SaleOrder, error) { return s.GetByID(id) }

func (s *salesStore) GetLines(orderID string) ([]*entity.SaleOrderLine, error) {
	return s.lines[orderID], nil
}

func (s *salesStore) UpdateStatus(id, status string) error {
	s.orders[id].Status = status
	return nil
}

func (s *salesStore) List(p repository.ListParams) ([]*entity.SaleOrder, error) {
	var out []*entity.SaleOrder
	for id := range s.orders {
		o, _ := s.GetByID(id)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *salesStore) Count(p repository.ListParams) (int, error) { return len(s.orders), nil }

func (s *salesStore) CountsByCategory() (map[string]int, error) {
	return map[string]int{repository.CategoryAll: len(s.orders)}, nil
}

func (s *salesStore) CreatePayment(p *entity.Payment) error {
	s.payments[p.OrderID] = append(s.payments[p.OrderID], p)
	return nil
}

func (s *salesStore) SumByOrder(orderID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range s.payments[orderID] {
		sum = sum.Add(p.Amount)
	}
	return sum, nil
}

func (s *salesStore) ListByOrder(orderID string) ([]*entity.Payment, error) {
	return s.payments[orderID], nil
}

func (s *salesStore) CreatePlan(plan *entity.LayawayPlan) error {
	s.plans[plan.OrderID] = plan
	return nil
}

func (s *salesStore) GetByOrder(orderID string) (*entity.LayawayPlan, error) {
	return s.plans[orderID], nil
}

// paymentRepoAdapter y planRepoAdapter desambiguan los métodos Create.
type paymentRepoAdapter struct{ s *salesStore }

func (a paymentRepoAdapter) Create(p *entity.Payment) error { return a.s.CreatePayment(p) }
func (a paymentRepoAdapter) SumByOrder(orderID string) (decimal.Decimal, error) {
	return a.s.SumByOrder(orderID)
}
func (a paymentRepoAdapter) ListByOrder(orderID string) ([]*entity.Payment, error) {
	return a.s.ListByOrder(orderID)
}

type planRepoAdapter struct{ s *salesStore }

func (a planRepoAdapter) Create(p *entity.LayawayPlan) error { return a.s.CreatePlan(p) }
func (a planRepoAdapter) GetByOrder(orderID string) (*entity.LayawayPlan, error) {
	return a.s.GetByOrder(orderID)
}

func (s *salesStore) Run(_ context.Context, fn func(
	orderRepo repository.SaleOrderRepository,
	paymentRepo repository.PaymentRepository,
	planRepo repository.LayawayPlanRepository,
) error) error {
	return fn(s, paymentRepoAdapter{s}, planRepoAdapter{s})
}

type clientStore struct{ clients map[string]*entity.Client }

func (c clientStore) GetByID(id string) (*entity.Client, error) { return c.clients[id], nil }

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de prueba completo: ledger real sobre fakes + casos de uso de ventas.
// ──────────────────────────────────────────────────────────────────────────────

type salesEnv struct {
	stock    *stockStore
	sales    *salesStore
	createUC *sales.CreateOrderUseCase
	cancelUC *sales.CancelOrderUseCase
	payUC    *sales.RecordPaymentUseCase
}

func newSalesEnv(items ...*entity.StockItem) *salesEnv {
	stock := newStockStore(items...)
	store := newSalesStore()
	clients := clientStore{clients: map[string]*entity.Client{
		"cli-1": {ID: "cli-1", Name: "Cliente Uno"},
	}}
	stockUC := ledger.NewStockLedger(stock, logger.Nop())
	return &salesEnv{
		stock:    stock,
		sales:    store,
		createUC: sales.NewCreateOrderUseCase(store, stockUC, stock, clients, logger.Nop()),
		cancelUC: sales.NewCancelOrderUseCase(store, stockUC, logger.Nop()),
		payUC:    sales.NewRecordPaymentUseCase(store, logger.Nop()),
	}
}

func item(id string, qty int, price int64) *entity.StockItem {
	return &entity.StockItem{
		ID:           id,
		Name:         "artículo " + id,
		QtyInStock:   qty,
		MinQty:       1,
		UnitCost:     decimal.NewFromInt(price / 2),
		SellingPrice: decimal.NewFromInt(price),
		Active:       true,
	}
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }
