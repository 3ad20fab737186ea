package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
)

// Repository reads the pizza_pricing view.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByPizzaID(ctx context.Context, pizzaID uuid.UUID) (*models.PizzaPricing, error)
	FindByPizzaIDs(ctx context.Context, pizzaIDs []uuid.UUID) (map[uuid.UUID]models.PizzaPricing, error)
	ListAll(ctx context.Context) ([]models.PizzaPricing, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByPizzaID(ctx context.Context, pizzaID uuid.UUID) (*models.PizzaPricing, error) {
	var row models.PizzaPricing
	err := r.db.WithContext(ctx).
		Where("pizza_id = ?", pizzaID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByPizzaIDs(ctx context.Context, pizzaIDs []uuid.UUID) (map[uuid.UUID]models.PizzaPricing, error) {
	out := make(map[uuid.UUID]models.PizzaPricing, len(pizzaIDs))
	if len(pizzaIDs) == 0 {
		return out, nil
	}

	var rows []models.PizzaPricing
	err := r.db.WithContext(ctx).
		Where("pizza_id IN ?", pizzaIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PizzaID] = row
	}
	return out, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.PizzaPricing, error) {
	var rows []models.PizzaPricing
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
