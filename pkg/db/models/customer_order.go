package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/pkg/enums"
)

// CustomerOrder is a placed order with its frozen monetary breakdown.
// Subtotal minus the three discount columns always equals total_eur.
type CustomerOrder struct {
	ID                 uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID         uuid.UUID                  `gorm:"column:customer_id;type:uuid;not null;index"`
	Customer           *Customer                  `gorm:"foreignKey:CustomerID"`
	Status             enums.OrderStatus          `gorm:"column:status;not null;default:'pending';index"`
	DeliveryType       enums.DeliveryType         `gorm:"column:delivery_type;not null"`
	DeliveryPersonID   *uuid.UUID                 `gorm:"column:delivery_person_id;type:uuid"`
	DeliveryPerson     *DeliveryPerson            `gorm:"foreignKey:DeliveryPersonID"`
	DriverAssignedAt   *time.Time                 `gorm:"column:driver_assigned_at"`
	DiscountCodeID     *uuid.UUID                 `gorm:"column:discount_code_id;type:uuid"`
	DiscountCode       *DiscountCode              `gorm:"foreignKey:DiscountCodeID"`
	SubtotalEUR        decimal.Decimal            `gorm:"column:subtotal_eur;type:numeric(10,2);not null"`
	BirthdayDiscountEUR decimal.Decimal           `gorm:"column:birthday_discount_eur;type:numeric(10,2);not null;default:0"`
	LoyaltyDiscountEUR decimal.Decimal            `gorm:"column:loyalty_discount_eur;type:numeric(10,2);not null;default:0"`
	CodeDiscountEUR    decimal.Decimal            `gorm:"column:code_discount_eur;type:numeric(10,2);not null;default:0"`
	TotalEUR           decimal.Decimal            `gorm:"column:total_eur;type:numeric(10,2);not null"`
	Notes              string                     `gorm:"column:notes;not null;default:''"`
	Items              []OrderItem                `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Adjustments        []OrderAdjustment          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CodeApplications   []OrderDiscountApplication `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PlacedAt           time.Time                  `gorm:"column:placed_at;not null;autoCreateTime;index"`
	DeliveredAt        *time.Time                 `gorm:"column:delivered_at"`
	CancelledAt        *time.Time                 `gorm:"column:cancelled_at"`
	CreatedAt          time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

func (CustomerOrder) TableName() string { return "customer_orders" }
