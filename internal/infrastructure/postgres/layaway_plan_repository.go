package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/consigna-pro/internal/domain/entity"
	"github.com/tu-usuario/consigna-pro/internal/domain/repository"
)

var _ repository.LayawayPlanRepository = (*LayawayPlanRepo)(nil)

// LayawayPlanRepo implementación de LayawayPlanRepository sobre PostgreSQL
// (usable con pool o tx).
type LayawayPlanRepo struct {
	q Querier
}

// NewLayawayPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLayawayPlanRepository(q Querier) *LayawayPlanRepo {
	return &LayawayPlanRepo{q: q}
}

// Create persiste el plan de apartado de una orden.
func (r *LayawayPlanRepo) Create(p *entity.LayawayPlan) error {
	query := `
		INSERT INTO layaway_plans (order_id, number_of_months, due_date, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		p.OrderID, p.NumberOfMonths, p.DueDate, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create layaway plan: %w", err)
	}
	return nil
}

// GetByOrder obtiene el plan de una orden. Nil si la orden no es de apartado.
func (r *LayawayPlanRepo) GetByOrder(orderID string) (*entity.LayawayPlan, error) {
	query := `
		SELECT order_id, number_of_months, due_date, created_at
		FROM layaway_plans WHERE order_id = $1`
	var p entity.LayawayPlan
	err := r.q.QueryRow(context.Background(), query, orderID).Scan(
		&p.OrderID, &p.NumberOfMonths, &p.DueDate, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get layaway plan: %w", err)
	}
	return &p, nil
}
