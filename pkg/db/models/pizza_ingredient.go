package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PizzaIngredient is one recipe line linking a pizza to an ingredient.
type PizzaIngredient struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PizzaID      uuid.UUID       `gorm:"column:pizza_id;type:uuid;not null;uniqueIndex:idx_pizza_ingredient"`
	IngredientID uuid.UUID       `gorm:"column:ingredient_id;type:uuid;not null;uniqueIndex:idx_pizza_ingredient"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:numeric(10,2);not null"`
	Position     *int16          `gorm:"column:position"`
	Ingredient   *Ingredient     `gorm:"foreignKey:IngredientID"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (PizzaIngredient) TableName() string { return "pizza_ingredients" }
