package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/pkg/enums"
)

// OrderItem is one line on an order. Exactly one of PizzaID, DrinkID and
// DessertID is set, matching ItemType; the schema enforces this with a
// check constraint. UnitPriceEUR and ItemNameSnapshot are frozen at
// placement time so renaming a product never rewrites order history.
type OrderItem struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index"`
	ItemType         enums.OrderItemType `gorm:"column:item_type;not null"`
	PizzaID          *uuid.UUID          `gorm:"column:pizza_id;type:uuid"`
	DrinkID          *uuid.UUID          `gorm:"column:drink_id;type:uuid"`
	DessertID        *uuid.UUID          `gorm:"column:dessert_id;type:uuid"`
	Pizza            *Pizza              `gorm:"foreignKey:PizzaID"`
	Drink            *Drink              `gorm:"foreignKey:DrinkID"`
	Dessert          *Dessert            `gorm:"foreignKey:DessertID"`
	ItemNameSnapshot string              `gorm:"column:item_name_snapshot;not null"`
	Quantity         int                 `gorm:"column:quantity;not null"`
	UnitPriceEUR     decimal.Decimal     `gorm:"column:unit_price_eur;type:numeric(10,2);not null"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string { return "order_items" }

// ProductID returns whichever product reference is set for the line.
func (i OrderItem) ProductID() uuid.UUID {
	switch {
	case i.PizzaID != nil:
		return *i.PizzaID
	case i.DrinkID != nil:
		return *i.DrinkID
	case i.DessertID != nil:
		return *i.DessertID
	}
	return uuid.Nil
}

// LineTotal is quantity times the frozen unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPriceEUR.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
