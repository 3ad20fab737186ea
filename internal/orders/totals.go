package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/internal/discounts"
	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
)

const (
	// loyaltyThreshold is how many pizzas fill one reward cycle.
	loyaltyThreshold = 10
)

// loyaltyRewardRate is the share of the eligible pizza subtotal granted
// when a reward cycle completes.
var loyaltyRewardRate = decimal.RequireFromString("0.10")

// PricedItem is one order line with its frozen unit price.
type PricedItem struct {
	Type      enums.OrderItemType
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals is the monetary breakdown of an order before persistence.
type Totals struct {
	Subtotal decimal.Decimal
	Birthday decimal.Decimal
	Loyalty  decimal.Decimal
	Code     decimal.Decimal
	Total    decimal.Decimal

	// NewLoyaltyCounter replaces the customer's counter after this order.
	NewLoyaltyCounter int
	RewardCycles      int
	PizzaCount        int
}

// ComputeTotals runs the discount pipeline: birthday first, then loyalty
// on the pizza subtotal net of the birthday pizza, then the code on what
// is left. Every stage works on the remainder so the total never goes
// negative.
func ComputeTotals(items []PricedItem, loyaltyCounter int, birthdayToday bool, code *models.DiscountCode) Totals {
	subtotal := decimal.Zero
	pizzaSubtotal := decimal.Zero
	pizzaCount := 0
	var cheapestPizza, cheapestDrink *decimal.Decimal

	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
		switch item.Type {
		case enums.OrderItemTypePizza:
			pizzaSubtotal = pizzaSubtotal.Add(line)
			pizzaCount += item.Quantity
			if cheapestPizza == nil || item.UnitPrice.LessThan(*cheapestPizza) {
				price := item.UnitPrice
				cheapestPizza = &price
			}
		case enums.OrderItemTypeDrink:
			if cheapestDrink == nil || item.UnitPrice.LessThan(*cheapestDrink) {
				price := item.UnitPrice
				cheapestDrink = &price
			}
		}
	}

	birthday := decimal.Zero
	birthdayPizzaComponent := decimal.Zero
	if birthdayToday {
		if cheapestPizza != nil {
			birthday = birthday.Add(*cheapestPizza)
			birthdayPizzaComponent = *cheapestPizza
		}
		if cheapestDrink != nil {
			birthday = birthday.Add(*cheapestDrink)
		}
	}

	loyalty := decimal.Zero
	newCounter := loyaltyCounter
	rewardCycles := 0
	if pizzaCount > 0 {
		totalPizzas := loyaltyCounter + pizzaCount
		rewardCycles = totalPizzas / loyaltyThreshold
		newCounter = totalPizzas % loyaltyThreshold
		if rewardCycles > 0 && pizzaSubtotal.Sign() > 0 {
			eligible := pizzaSubtotal.Sub(birthdayPizzaComponent)
			if eligible.Sign() < 0 {
				eligible = decimal.Zero
			}
			loyalty = eligible.Mul(loyaltyRewardRate)
		}
	}

	codeAmount := decimal.Zero
	if code != nil {
		remainder := subtotal.Sub(birthday).Sub(loyalty)
		codeAmount = discounts.Amount(code, remainder)
	}

	subtotal = subtotal.Round(2)
	birthday = birthday.Round(2)
	loyalty = loyalty.Round(2)
	codeAmount = codeAmount.Round(2)
	total := subtotal.Sub(birthday).Sub(loyalty).Sub(codeAmount).Round(2)

	return Totals{
		Subtotal:          subtotal,
		Birthday:          birthday,
		Loyalty:           loyalty,
		Code:              codeAmount,
		Total:             total,
		NewLoyaltyCounter: newCounter,
		RewardCycles:      rewardCycles,
		PizzaCount:        pizzaCount,
	}
}
