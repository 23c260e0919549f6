package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockMovementColumns = `id, stock_item_id, kind, qty, unit_cost,
	qty_before, qty_after, reason, reference, performed_by, created_at`

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL
// (usable con pool o tx). Los movimientos son append-only: no hay UPDATE ni
// DELETE en este adaptador.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento del ledger.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	reference := (*string)(nil)
	if m.Reference != "" {
		reference = &m.Reference
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.StockItemID, m.Kind, m.Qty, m.UnitCost,
		m.QtyBefore, m.QtyAfter, m.Reason, reference, m.PerformedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByItem lista el historial de un artículo, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements WHERE stock_item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByReference lista los movimientos asociados a una orden de venta.
func (r *StockMovementRepo) ListByReference(ref string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements WHERE reference = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ref)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var reference *string
		if err := rows.Scan(&m.ID, &m.StockItemID, &m.Kind, &m.Qty, &m.UnitCost,
			&m.QtyBefore, &m.QtyAfter, &m.Reason, &reference, &m.PerformedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if reference != nil {
			m.Reference = *reference
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
