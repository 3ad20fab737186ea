package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerDiscountRedemption records one use of a discount code by a
// customer. Reusable codes may produce several rows per customer; the
// service enforces the once-per-customer rule for one-time codes.
type CustomerDiscountRedemption struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID     uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index:idx_customer_code_redemption"`
	DiscountCodeID uuid.UUID `gorm:"column:discount_code_id;type:uuid;not null;index:idx_customer_code_redemption"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	RedeemedAt     time.Time `gorm:"column:redeemed_at;not null;autoCreateTime"`
}

func (CustomerDiscountRedemption) TableName() string { return "customer_discount_redemptions" }
