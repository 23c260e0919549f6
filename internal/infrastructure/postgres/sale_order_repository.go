package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
)

var _ repository.SaleOrderRepository = (*SaleOrderRepo)(nil)

// saleOrderSelect lee una orden con sus campos derivados: el saldo pendiente
// (total menos la suma de pagos) y la fecha límite del plan de apartado.
const saleOrderSelect = `
	SELECT o.id, o.client_id, o.type, o.status, o.subtotal,
	       o.discount_kind, o.discount_value, o.discount_amount, o.total,
	       o.total - COALESCE(p.paid, 0) AS outstanding,
	       o.date_purchased, lp.due_date, o.created_by, o.created_at, o.updated_at
	FROM sale_orders o
	LEFT JOIN layaway_plans lp ON lp.order_id = o.id
	LEFT JOIN LATERAL (
		SELECT SUM(amount) AS paid FROM payments WHERE order_id = o.id
	) p ON true`

// SaleOrderRepo implementación de SaleOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type SaleOrderRepo struct {
	q Querier
}

// NewSaleOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleOrderRepository(q Querier) *SaleOrderRepo {
	return &SaleOrderRepo{q: q}
}

// Create persiste la cabecera de una orden.
func (r *SaleOrderRepo) Create(o *entity.SaleOrder) error {
	query := `
		INSERT INTO sale_orders (id, client_id, type, status, subtotal,
			discount_kind, discount_value, discount_amount, total,
			date_purchased, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	discountKind := (*string)(nil)
	if o.DiscountKind != "" {
		discountKind = &o.DiscountKind
	}
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.ClientID, o.Type, o.Status, o.Subtotal,
		discountKind, o.DiscountValue, o.DiscountAmount, o.Total,
		o.DatePurchased, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea con su precio congelado.
func (r *SaleOrderRepo) CreateLine(l *entity.SaleOrderLine) error {
	query := `
		INSERT INTO sale_order_lines (id, order_id, stock_item_id, qty, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.OrderID, l.StockItemID, l.Qty, l.UnitPrice, l.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("create sale order line: %w", err)
	}
	return nil
}

// GetByID obtiene una orden con saldo y fecha límite derivados. Nil si no existe.
func (r *SaleOrderRepo) GetByID(id string) (*entity.SaleOrder, error) {
	query := saleOrderSelect + ` WHERE o.id = $1`
	order, err := scanSaleOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get sale order: %w", err)
	}
	return order, nil
}

// GetForUpdate obtiene la orden bloqueando su fila. El FOR UPDATE va en una
// subconsulta porque no se puede bloquear a través del join con agregados.
func (r *SaleOrderRepo) GetForUpdate(id string) (*entity.SaleOrder, error) {
	lock := `SELECT id FROM sale_orders WHERE id = $1 FOR UPDATE`
	var locked string
	if err := r.q.QueryRow(context.Background(), lock, id).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock sale order: %w", err)
	}
	return r.GetByID(id)
}

// GetLines obtiene las líneas de una orden.
func (r *SaleOrderRepo) GetLines(orderID string) ([]*entity.SaleOrderLine, error) {
	query := `
		SELECT id, order_id, stock_item_id, qty, unit_price, line_total
		FROM sale_order_lines WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get sale order lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.SaleOrderLine
	for rows.Next() {
		var l entity.SaleOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.StockItemID, &l.Qty, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdateStatus escribe el estado almacenado de una orden (nunca OVERDUE).
func (r *SaleOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE sale_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update sale order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update sale order status: orden %s no existe", id)
	}
	return nil
}

// List lista órdenes de una categoría con búsqueda, rango de fechas y paginación.
func (r *SaleOrderRepo) List(p repository.ListParams) ([]*entity.SaleOrder, error) {
	where, args := buildOrderFilter(p)
	query := saleOrderSelect + where

	sortBy := "o.date_purchased"
	if p.SortBy == "total" {
		sortBy = "o.total"
	}
	orderBy := "DESC"
	if p.OrderBy == "asc" {
		orderBy = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortBy, orderBy, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sale orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaleOrder
	for rows.Next() {
		order, err := scanSaleOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale order: %w", err)
		}
		list = append(list, order)
	}
	return list, rows.Err()
}

// Count cuenta las órdenes que List devolvería con los mismos filtros.
func (r *SaleOrderRepo) Count(p repository.ListParams) (int, error) {
	where, args := buildOrderFilter(p)
	query := `
		SELECT COUNT(*)
		FROM sale_orders o
		LEFT JOIN layaway_plans lp ON lp.order_id = o.id` + where
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count sale orders: %w", err)
	}
	return total, nil
}

// CountsByCategory resuelve los siete conteos de pestañas en una sola pasada
// con cláusulas FILTER.
func (r *SaleOrderRepo) CountsByCategory() (map[string]int, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE o.type = 'REGULAR'),
			COUNT(*) FILTER (WHERE o.type = 'LAYAWAY'),
			COUNT(*) FILTER (WHERE o.status IN ('PENDING', 'DEPOSIT') AND lp.due_date < now()),
			COUNT(*) FILTER (WHERE EXISTS (
				SELECT 1 FROM sale_order_lines sl
				JOIN stock_items si ON si.id = sl.stock_item_id
				WHERE sl.order_id = o.id AND si.is_consigned
			)),
			COUNT(*) FILTER (WHERE o.status = 'PAID'),
			COUNT(*) FILTER (WHERE o.status = 'CANCELLED')
		FROM sale_orders o
		LEFT JOIN layaway_plans lp ON lp.order_id = o.id`
	var all, regular, layaway, overdue, consigned, paid, cancelled int
	err := r.q.QueryRow(context.Background(), query).Scan(
		&all, &regular, &layaway, &overdue, &consigned, &paid, &cancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("counts by category: %w", err)
	}
	return map[string]int{
		repository.CategoryAll:       all,
		repository.CategoryRegular:   regular,
		repository.CategoryLayaway:   layaway,
		repository.CategoryOverdue:   overdue,
		repository.CategoryConsigned: consigned,
		repository.CategoryPaid:      paid,
		repository.CategoryCancelled: cancelled,
	}, nil
}

// buildOrderFilter arma el WHERE común de List y Count a partir de los filtros.
func buildOrderFilter(p repository.ListParams) (string, []any) {
	where := ` WHERE true`
	args := []any{}

	switch p.Category {
	case repository.CategoryRegular:
		where += ` AND o.type = 'REGULAR'`
	case repository.CategoryLayaway:
		where += ` AND o.type = 'LAYAWAY'`
	case repository.CategoryOverdue:
		where += ` AND o.status IN ('PENDING', 'DEPOSIT') AND lp.due_date < now()`
	case repository.CategoryConsigned:
		where += ` AND EXISTS (
			SELECT 1 FROM sale_order_lines sl
			JOIN stock_items si ON si.id = sl.stock_item_id
			WHERE sl.order_id = o.id AND si.is_consigned
		)`
	case repository.CategoryPaid:
		where += ` AND o.status = 'PAID'`
	case repository.CategoryCancelled:
		where += ` AND o.status = 'CANCELLED'`
	}

	if p.Search != "" {
		// El término llega ya sin diacríticos (NormalizeSearch); unaccent()
		// quita los de la columna para que "José" almacenado coincida con "jose".
		where += fmt.Sprintf(` AND (o.id::text ILIKE '%%' || $%d || '%%' OR EXISTS (
			SELECT 1 FROM clients c WHERE c.id = o.client_id AND unaccent(c.name) ILIKE '%%' || $%d || '%%'
		))`, len(args)+1, len(args)+1)
		args = append(args, p.Search)
	}
	if p.DateFrom != nil {
		where += fmt.Sprintf(` AND o.date_purchased >= $%d`, len(args)+1)
		args = append(args, *p.DateFrom)
	}
	if p.DateTo != nil {
		where += fmt.Sprintf(` AND o.date_purchased <= $%d`, len(args)+1)
		args = append(args, *p.DateTo)
	}
	return where, args
}

func scanSaleOrder(row pgx.Row) (*entity.SaleOrder, error) {
	var o entity.SaleOrder
	var discountKind *string
	err := row.Scan(
		&o.ID, &o.ClientID, &o.Type, &o.Status, &o.Subtotal,
		&discountKind, &o.DiscountValue, &o.DiscountAmount, &o.Total,
		&o.Outstanding, &o.DatePurchased, &o.DueDate,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if discountKind != nil {
		o.DiscountKind = *discountKind
	}
	return &o, nil
}
