package pricing

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
)

var (
	// marginMultiplier covers labor and overhead on top of ingredient cost.
	marginMultiplier = decimal.RequireFromString("1.40")
	// vatMultiplier applies Belgian VAT for prepared food.
	vatMultiplier = decimal.RequireFromString("1.09")
)

// RecipeLine is one priced ingredient of a recipe.
type RecipeLine struct {
	UnitCost decimal.Decimal
	Quantity decimal.Decimal
	IsMeat   bool
	IsDairy  bool
}

// Quote is the computed price and dietary profile of a recipe, column
// for column what the pizza_pricing view derives.
type Quote struct {
	IngredientCost    decimal.Decimal
	PriceWithMargin   decimal.Decimal
	FinalPriceWithVAT decimal.Decimal
	IsVegetarian      bool
	IsVegan           bool
}

// Compute derives a quote from recipe lines. The price is the ingredient
// cost with margin applied and rounded, then VAT applied and rounded;
// both roundings are half-up to two decimals, matching the pizza_pricing
// view. Vegetarian means no meat line; vegan means no meat and no dairy
// line. A recipe with no lines has no defined price.
func Compute(lines []RecipeLine) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "recipe has no ingredients")
	}

	cost := decimal.Zero
	vegetarian := true
	vegan := true
	for _, line := range lines {
		cost = cost.Add(line.UnitCost.Mul(line.Quantity))
		if line.IsMeat {
			vegetarian = false
		}
		if line.IsMeat || line.IsDairy {
			vegan = false
		}
	}
	cost = cost.Round(2)

	margin := cost.Mul(marginMultiplier).Round(2)
	final := margin.Mul(vatMultiplier).Round(2)

	return Quote{
		IngredientCost:    cost,
		PriceWithMargin:   margin,
		FinalPriceWithVAT: final,
		IsVegetarian:      vegetarian,
		IsVegan:           vegan,
	}, nil
}
