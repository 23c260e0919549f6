package ledger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/consigna-pro/internal/application/ledger"
	"github.com/tu-usuario/consigna-pro/internal/domain"
	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
	"github.com/tu-usuario/consigna-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un solo store implementa ambos repos y el TxRunner.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items     map[string]*entity.StockItem
	movements []*entity.StockMovement
}

func newMemStore(items ...*entity.StockItem) *memStore {
	m := &memStore{items: map[string]*entity.StockItem{}}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memStore) GetByID(id string) (*entity.StockItem, error)      { return m.items[id], nil }
func (m *memStore) GetForUpdate(id string) (*entity.StockItem, error) { return m.items[id], nil }

func (m *memStore) UpdateQuantities(id string, qtyInStock, soldStock int) error {
	it := m.items[id]
	it.QtyInStock = qtyInStock
	it.SoldStock = soldStock
	return nil
}

func (m *memStore) List(search string, limit, offset int) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range m.items {
		if search == "" || strings.Contains(strings.ToLower(it.Name), strings.ToLower(search)) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memStore) Count(search string) (int, error) {
	list, _ := m.List(search, 0, 0)
	return len(list), nil
}

func (m *memStore) Create(mov *entity.StockMovement) error {
	m.movements = append(m.movements, mov)
	return nil
}

func (m *memStore) ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mov := range m.movements {
		if mov.StockItemID == itemID {
			out = append(out, mov)
		}
	}
	return out, nil
}

func (m *memStore) ListByReference(ref string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mov := range m.movements {
		if mov.Reference == ref {
			out = append(out, mov)
		}
	}
	return out, nil
}

func (m *memStore) Run(_ context.Context, fn func(
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(m, m)
}

func newItem(id string, qty, minQty int) *entity.StockItem {
	return &entity.StockItem{
		ID:           id,
		Name:         "artículo " + id,
		QtyInStock:   qty,
		MinQty:       minQty,
		UnitCost:     decimal.NewFromInt(100),
		SellingPrice: decimal.NewFromInt(250),
		Active:       true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_DecreaseFeliz(t *testing.T) {
	store := newMemStore(newItem("it-1", 10, 2))
	uc := ledger.NewStockLedger(store, logger.Nop())

	res, err := uc.ApplyMovement(context.Background(), ledger.MovementInput{
		StockItemID: "it-1",
		Kind:        entity.MovementDecrease,
		Qty:         3,
		Reason:      entity.ReasonSale,
		Actor:       "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.QtyBefore)
	assert.Equal(t, 7, res.QtyAfter)
	assert.Equal(t, 7, store.items["it-1"].QtyInStock)
	assert.Equal(t, 3, store.items["it-1"].SoldStock, "una venta acumula unidades vendidas")

	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, mov.QtyBefore-mov.Qty, mov.QtyAfter, "invariante qtyAfter = qtyBefore - qty")
}

// Escenario de referencia: stock 5, Decrease(7) → InsufficientStock y el stock queda en 5.
func TestApplyMovement_StockInsuficiente(t *testing.T) {
	store := newMemStore(newItem("it-1", 5, 1))
	uc := ledger.NewStockLedger(store, logger.Nop())

	_, err := uc.ApplyMovement(context.Background(), ledger.MovementInput{
		StockItemID: "it-1",
		Kind:        entity.MovementDecrease,
		Qty:         7,
		Reason:      entity.ReasonSale,
		Actor:       "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, store.items["it-1"].QtyInStock, "sin aplicación parcial: el stock no cambia")
	assert.Empty(t, store.movements, "no debe escribirse ningún movimiento")
}

func TestApplyMovement_CantidadInvalida(t *testing.T) {
	store := newMemStore(newItem("it-1", 5, 1))
	uc := ledger.NewStockLedger(store, logger.Nop())

	for _, qty := range []int{0, -4} {
		_, err := uc.ApplyMovement(context.Background(), ledger.MovementInput{
			StockItemID: "it-1",
			Kind:        entity.MovementIncrease,
			Qty:         qty,
			Actor:       "user-1",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "qty=%d", qty)
	}
}

func TestApplyMovement_CamposFaltantes(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewStockLedger(store, logger.Nop())

	_, err := uc.ApplyMovement(context.Background(), ledger.MovementInput{Qty: 1, Kind: "BAD"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"stock_item_id", "kind", "actor"}, ve.Fields,
		"debe reportar el conjunto de campos ofensores")
}

func TestApplyMovement_ArticuloInexistente(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewStockLedger(store, logger.Nop())

	_, err := uc.ApplyMovement(context.Background(), ledger.MovementInput{
		StockItemID: "nope",
		Kind:        entity.MovementIncrease,
		Qty:         1,
		Actor:       "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Propiedad: reproducir la secuencia de movimientos desde la cantidad inicial
// llega a la cantidad final, sin pasar nunca por un valor negativo.
func TestApplyMovement_ReplayReproduceElEstado(t *testing.T) {
	store := newMemStore(newItem("it-1", 8, 2))
	uc := ledger.NewStockLedger(store, logger.Nop())

	steps := []struct {
		kind string
		qty  int
		ok   bool
	}{
		{entity.MovementDecrease, 5, true},
		{entity.MovementIncrease, 4, true},
		{entity.MovementDecrease, 7, true},
		{entity.MovementDecrease, 1, false}, // stock en 0: debe fallar
		{entity.MovementIncrease, 2, true},
	}
	for _, s := range steps {
		_, err := uc.ApplyMovement(context.Background(), ledger.MovementInput{
			StockItemID: "it-1",
			Kind:        s.kind,
			Qty:         s.qty,
			Reason:      entity.ReasonCorrection,
			Actor:       "user-1",
		})
		if s.ok {
			require.NoError(t, err)
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}

	// Replay desde la cantidad inicial usando solo el ledger persistido.
	replayed := 8
	for _, mov := range store.movements {
		assert.Equal(t, replayed, mov.QtyBefore)
		if mov.Kind == entity.MovementDecrease {
			replayed -= mov.Qty
		} else {
			replayed += mov.Qty
		}
		assert.GreaterOrEqual(t, replayed, 0, "el stock nunca es negativo en pasos intermedios")
		assert.Equal(t, replayed, mov.QtyAfter)
	}
	assert.Equal(t, store.items["it-1"].QtyInStock, replayed,
		"el replay reproduce la cantidad final")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, entity.StockLabelSold, newItem("a", 0, 3).StatusLabel())
	assert.Equal(t, entity.StockLabelLowStock, newItem("b", 3, 3).StatusLabel())
	assert.Equal(t, entity.StockLabelListed, newItem("c", 4, 3).StatusLabel())
}
