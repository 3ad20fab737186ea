package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
)

// CreateIngredientInput carries the fields for a new ingredient.
type CreateIngredientInput struct {
	Name     string
	IsMeat   bool
	IsDairy  bool
	IsVegan  bool
	UnitCost decimal.Decimal
	UnitType string
}

// UpdateIngredientInput carries optional updates to an ingredient.
type UpdateIngredientInput struct {
	Name     *string
	IsMeat   *bool
	IsDairy  *bool
	IsVegan  *bool
	UnitCost *decimal.Decimal
	UnitType *string
}

// CreatePizzaInput carries the fields for a new pizza.
type CreatePizzaInput struct {
	Name        string
	Description string
}

// UpdatePizzaInput carries optional updates to a pizza.
type UpdatePizzaInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// RecipeLineInput is one requested recipe line when setting a recipe.
type RecipeLineInput struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
}

// CreateDrinkInput carries the fields for a new drink.
type CreateDrinkInput struct {
	Name     string
	Category string
	PriceEUR decimal.Decimal
}

// CreateDessertInput carries the fields for a new dessert.
type CreateDessertInput struct {
	Name        string
	Description string
	PriceEUR    decimal.Decimal
	IsVegan     bool
	Ingredients []string
}

// PizzaDetail is a pizza with its recipe and, when priceable, the
// computed price and dietary profile.
type PizzaDetail struct {
	Pizza   models.Pizza
	Pricing *models.PizzaPricing
}

// MenuPizza is one sellable pizza on the menu.
type MenuPizza struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	PriceEUR     decimal.Decimal `json:"price_eur"`
	IsVegetarian bool            `json:"is_vegetarian"`
	IsVegan      bool            `json:"is_vegan"`
}

// MenuDrink is one drink on the menu.
type MenuDrink struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	PriceEUR decimal.Decimal `json:"price_eur"`
}

// MenuDessert is one dessert on the menu.
type MenuDessert struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	PriceEUR decimal.Decimal `json:"price_eur"`
	IsVegan  bool            `json:"is_vegan"`
}

// Menu is the full customer-facing menu.
type Menu struct {
	Pizzas   []MenuPizza   `json:"pizzas"`
	Drinks   []MenuDrink   `json:"drinks"`
	Desserts []MenuDessert `json:"desserts"`
}
