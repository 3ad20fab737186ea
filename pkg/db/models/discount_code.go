package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/pkg/enums"
)

// DiscountCode is a redeemable promotional code. Percentage codes carry
// a percent value, fixed_amount codes carry an EUR amount; the check
// constraint in the schema enforces the pairing. A nil ValidUntil means
// the code never expires; one-time codes can be redeemed at most once
// per customer.
type DiscountCode struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code           string             `gorm:"column:code;not null;uniqueIndex"`
	Description    string             `gorm:"column:description;not null;default:''"`
	DiscountType   enums.DiscountType `gorm:"column:discount_type;not null"`
	Percent        *decimal.Decimal   `gorm:"column:percent;type:numeric(5,2)"`
	AmountEUR      *decimal.Decimal   `gorm:"column:amount_eur;type:numeric(8,2)"`
	ValidFrom      time.Time          `gorm:"column:valid_from;not null"`
	ValidUntil     *time.Time         `gorm:"column:valid_until"`
	IsOneTime      bool               `gorm:"column:is_one_time;not null;default:false"`
	MaxRedemptions *int               `gorm:"column:max_redemptions"`
	TimesRedeemed  int                `gorm:"column:times_redeemed;not null;default:0"`
	IsActive       bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (DiscountCode) TableName() string { return "discount_codes" }
