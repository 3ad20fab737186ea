package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PizzaPricing maps the pizza_pricing database view, a contract external
// reporting tools read directly. Prices and dietary flags are computed
// from the recipe; rows never exist for pizzas with an empty recipe.
// A pizza is vegetarian when no ingredient is meat, vegan when no
// ingredient is meat or dairy. Read only.
type PizzaPricing struct {
	PizzaID           uuid.UUID       `gorm:"column:pizza_id;type:uuid;primaryKey"`
	Name              string          `gorm:"column:name"`
	Description       string          `gorm:"column:description"`
	IsActive          bool            `gorm:"column:is_active"`
	IngredientCost    decimal.Decimal `gorm:"column:ingredient_cost;type:numeric(12,2)"`
	PriceWithMargin   decimal.Decimal `gorm:"column:price_with_margin;type:numeric(12,2)"`
	FinalPriceWithVAT decimal.Decimal `gorm:"column:final_price_with_vat;type:numeric(12,2)"`
	IsVegetarian      bool            `gorm:"column:is_vegetarian_computed"`
	IsVegan           bool            `gorm:"column:is_vegan_computed"`
}

func (PizzaPricing) TableName() string { return "pizza_pricing" }
