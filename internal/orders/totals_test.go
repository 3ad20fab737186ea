package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pizzaItem(price string, qty int) PricedItem {
	return PricedItem{Type: enums.OrderItemTypePizza, Quantity: qty, UnitPrice: dec(price)}
}

func drinkItem(price string, qty int) PricedItem {
	return PricedItem{Type: enums.OrderItemTypeDrink, Quantity: qty, UnitPrice: dec(price)}
}

func TestComputeTotalsPlainOrder(t *testing.T) {
	totals := ComputeTotals([]PricedItem{
		pizzaItem("5.80", 2),
		drinkItem("2.50", 1),
	}, 0, false, nil)

	assert.True(t, totals.Subtotal.Equal(dec("14.10")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Total.Equal(dec("14.10")))
	assert.True(t, totals.Birthday.IsZero())
	assert.True(t, totals.Loyalty.IsZero())
	assert.True(t, totals.Code.IsZero())
	assert.Equal(t, 2, totals.NewLoyaltyCounter)
	assert.Equal(t, 0, totals.RewardCycles)
}

func TestComputeTotalsBirthdayFreesCheapestPizzaAndDrink(t *testing.T) {
	totals := ComputeTotals([]PricedItem{
		pizzaItem("9.20", 1),
		pizzaItem("5.80", 1),
		drinkItem("2.50", 2),
		drinkItem("1.80", 1),
	}, 0, true, nil)

	// cheapest pizza 5.80 and cheapest drink 1.80 go free
	assert.True(t, totals.Birthday.Equal(dec("7.60")), "birthday %s", totals.Birthday)
	assert.True(t, totals.Subtotal.Equal(dec("21.80")))
	assert.True(t, totals.Total.Equal(dec("14.20")))
}

func TestComputeTotalsLoyaltyRewardOnThresholdCross(t *testing.T) {
	// counter 8 + 3 pizzas crosses 10, leaving 1
	totals := ComputeTotals([]PricedItem{
		pizzaItem("6.00", 3),
	}, 8, false, nil)

	assert.Equal(t, 1, totals.RewardCycles)
	assert.Equal(t, 1, totals.NewLoyaltyCounter)
	// 10% of the 18.00 pizza subtotal
	assert.True(t, totals.Loyalty.Equal(dec("1.80")), "loyalty %s", totals.Loyalty)
	assert.True(t, totals.Total.Equal(dec("16.20")))
}

func TestComputeTotalsLoyaltyExcludesBirthdayPizza(t *testing.T) {
	// birthday frees the 5.80 pizza; loyalty sees 18.00 - 5.80
	totals := ComputeTotals([]PricedItem{
		pizzaItem("6.10", 2),
		pizzaItem("5.80", 1),
	}, 7, true, nil)

	assert.True(t, totals.Birthday.Equal(dec("5.80")))
	assert.Equal(t, 1, totals.RewardCycles)
	assert.Equal(t, 0, totals.NewLoyaltyCounter)
	assert.True(t, totals.Loyalty.Equal(dec("1.22")), "loyalty %s", totals.Loyalty)
	assert.True(t, totals.Total.Equal(dec("10.98")), "total %s", totals.Total)
}

func TestComputeTotalsCodeAppliesToRemainder(t *testing.T) {
	p := dec("10")
	code := &models.DiscountCode{DiscountType: enums.DiscountTypePercentage, Percent: &p}

	totals := ComputeTotals([]PricedItem{
		pizzaItem("5.80", 1),
		drinkItem("2.50", 1),
	}, 0, true, code)

	// birthday frees the whole order, nothing left for the code
	assert.True(t, totals.Birthday.Equal(dec("8.30")))
	assert.True(t, totals.Code.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotalsFixedCodeCappedAtRemainder(t *testing.T) {
	a := dec("50.00")
	code := &models.DiscountCode{DiscountType: enums.DiscountTypeFixedAmount, AmountEUR: &a}

	totals := ComputeTotals([]PricedItem{
		pizzaItem("5.80", 2),
	}, 0, false, code)

	assert.True(t, totals.Code.Equal(dec("11.60")))
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotalsSumOfParts(t *testing.T) {
	p := dec("15")
	code := &models.DiscountCode{DiscountType: enums.DiscountTypePercentage, Percent: &p}

	totals := ComputeTotals([]PricedItem{
		pizzaItem("9.35", 3),
		pizzaItem("5.80", 1),
		drinkItem("2.15", 2),
	}, 9, true, code)

	reconstructed := totals.Subtotal.
		Sub(totals.Birthday).
		Sub(totals.Loyalty).
		Sub(totals.Code)
	assert.True(t, totals.Total.Equal(reconstructed), "total %s parts %s", totals.Total, reconstructed)
	assert.False(t, totals.Total.IsNegative())
}
