package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDiscountApplication records the discount code applied to an order
// and the EUR amount it actually took off after the automatic discounts.
type OrderDiscountApplication struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID       `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	DiscountCodeID uuid.UUID       `gorm:"column:discount_code_id;type:uuid;not null"`
	DiscountCode   *DiscountCode   `gorm:"foreignKey:DiscountCodeID"`
	AmountEUR      decimal.Decimal `gorm:"column:amount_eur;type:numeric(10,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (OrderDiscountApplication) TableName() string { return "order_discount_applications" }
