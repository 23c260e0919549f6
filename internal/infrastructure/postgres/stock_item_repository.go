package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `id, name, code, qty_in_stock, min_qty, sold_stock,
	unit_cost, selling_price, is_consigned, consignor_id, active, created_at, updated_at`

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL
// (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// GetByID obtiene un artículo por ID. Devuelve nil si no existe.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	item, err := r.scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene el artículo y bloquea su fila (SELECT FOR UPDATE):
// los movimientos sobre el mismo artículo se serializan aquí.
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	item, err := r.scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return item, nil
}

// UpdateQuantities escribe las cantidades resultantes de un movimiento.
// Solo el ledger llama aquí, con la fila ya bloqueada.
func (r *StockItemRepo) UpdateQuantities(id string, qtyInStock, soldStock int) error {
	query := `UPDATE stock_items SET qty_in_stock = $2, sold_stock = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, qtyInStock, soldStock)
	if err != nil {
		return fmt.Errorf("update stock quantities: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock quantities: artículo %s no existe", id)
	}
	return nil
}

// List lista artículos activos, con búsqueda opcional por nombre o código.
func (r *StockItemRepo) List(search string, limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE active`
	args := []any{}
	if search != "" {
		query += ` AND (name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%')`
		args = append(args, search)
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockItem
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Count cuenta artículos activos con el mismo filtro de List.
func (r *StockItemRepo) Count(search string) (int, error) {
	query := `SELECT COUNT(*) FROM stock_items WHERE active`
	args := []any{}
	if search != "" {
		query += ` AND (name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%')`
		args = append(args, search)
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count stock items: %w", err)
	}
	return total, nil
}

func (r *StockItemRepo) scanItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	var consignorID *string
	err := row.Scan(
		&it.ID, &it.Name, &it.Code, &it.QtyInStock, &it.MinQty, &it.SoldStock,
		&it.UnitCost, &it.SellingPrice, &it.IsConsigned, &consignorID, &it.Active,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if consignorID != nil {
		it.ConsignorID = *consignorID
	}
	return &it, nil
}
