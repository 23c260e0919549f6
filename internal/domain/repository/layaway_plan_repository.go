package repository

import "github.com/tu-usuario/consigna-pro/internal/domain/entity"

// LayawayPlanRepository define el puerto de persistencia para LayawayPlan.
type LayawayPlanRepository interface {
	Create(plan *entity.LayawayPlan) error
	GetByOrder(orderID string) (*entity.LayawayPlan, error)
}
