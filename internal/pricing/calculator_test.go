package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeMargheritaStyleRecipe(t *testing.T) {
	quote, err := Compute([]RecipeLine{
		{UnitCost: dec("1.50"), Quantity: dec("2"), IsDairy: true},
		{UnitCost: dec("0.80"), Quantity: dec("1")},
	})
	require.NoError(t, err)

	assert.True(t, quote.IngredientCost.Equal(dec("3.80")), "cost %s", quote.IngredientCost)
	// 3.80 * 1.40 = 5.32, 5.32 * 1.09 = 5.7988 -> 5.80
	assert.True(t, quote.PriceWithMargin.Equal(dec("5.32")), "margin %s", quote.PriceWithMargin)
	assert.True(t, quote.FinalPriceWithVAT.Equal(dec("5.80")), "price %s", quote.FinalPriceWithVAT)
	assert.True(t, quote.IsVegetarian)
	assert.False(t, quote.IsVegan)
}

func TestComputeRoundsHalfUpAtEachStage(t *testing.T) {
	// 1.01 * 2.5 = 2.525, which must round up to 2.53 before margin.
	quote, err := Compute([]RecipeLine{
		{UnitCost: dec("1.01"), Quantity: dec("2.5")},
	})
	require.NoError(t, err)

	assert.True(t, quote.IngredientCost.Equal(dec("2.53")), "cost %s", quote.IngredientCost)
	// 2.53 * 1.40 = 3.542 -> 3.54, 3.54 * 1.09 = 3.8586 -> 3.86
	assert.True(t, quote.PriceWithMargin.Equal(dec("3.54")), "margin %s", quote.PriceWithMargin)
	assert.True(t, quote.FinalPriceWithVAT.Equal(dec("3.86")), "price %s", quote.FinalPriceWithVAT)
	assert.True(t, quote.IsVegetarian)
	assert.True(t, quote.IsVegan)
}

func TestComputeDietaryFlags(t *testing.T) {
	quote, err := Compute([]RecipeLine{
		{UnitCost: dec("2.10"), Quantity: dec("1"), IsMeat: true},
		{UnitCost: dec("0.80"), Quantity: dec("1")},
	})
	require.NoError(t, err)

	assert.False(t, quote.IsVegetarian)
	assert.False(t, quote.IsVegan)
}

func TestComputeVeganDerivedFromMeatAndDairy(t *testing.T) {
	// Flags on the ingredient rows are labels; the derivation only looks
	// at meat and dairy, so plain ingredients still count as vegan.
	quote, err := Compute([]RecipeLine{
		{UnitCost: dec("0.30"), Quantity: dec("2")},
		{UnitCost: dec("0.80"), Quantity: dec("1")},
	})
	require.NoError(t, err)

	assert.True(t, quote.IsVegetarian)
	assert.True(t, quote.IsVegan)

	dairy, err := Compute([]RecipeLine{
		{UnitCost: dec("0.30"), Quantity: dec("2")},
		{UnitCost: dec("1.20"), Quantity: dec("1"), IsDairy: true},
	})
	require.NoError(t, err)

	assert.True(t, dairy.IsVegetarian)
	assert.False(t, dairy.IsVegan)
}

func TestComputeEmptyRecipe(t *testing.T) {
	_, err := Compute(nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}
