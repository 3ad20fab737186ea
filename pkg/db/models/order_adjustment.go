package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/pkg/enums"
)

// OrderAdjustment is an automatic discount line (birthday or loyalty)
// attached to an order, with an audit description of what triggered it.
type OrderAdjustment struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID            `gorm:"column:order_id;type:uuid;not null;index"`
	AdjustmentType enums.AdjustmentType `gorm:"column:adjustment_type;not null"`
	AmountEUR      decimal.Decimal      `gorm:"column:amount_eur;type:numeric(10,2);not null"`
	Description    string               `gorm:"column:description;not null;default:''"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
}

func (OrderAdjustment) TableName() string { return "order_adjustments" }
