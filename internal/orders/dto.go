package orders

import (
	"github.com/google/uuid"

	"github.com/mammamia/pizzeria-backend/pkg/enums"
)

// ItemSpec is one requested product and quantity.
type ItemSpec struct {
	ID       uuid.UUID
	Quantity int
}

// PlaceOrderInput carries everything needed to place an order.
type PlaceOrderInput struct {
	CustomerID   uuid.UUID
	Pizzas       []ItemSpec
	Drinks       []ItemSpec
	Desserts     []ItemSpec
	DiscountCode string
	DeliveryType enums.DeliveryType
	Notes        string
}
