package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is a recipe component with dietary flags and a unit cost.
type Ingredient struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string          `gorm:"column:name;not null;uniqueIndex"`
	IsMeat    bool            `gorm:"column:is_meat;not null;default:false"`
	IsDairy   bool            `gorm:"column:is_dairy;not null;default:false"`
	IsVegan   bool            `gorm:"column:is_vegan;not null;default:false"`
	UnitCost  decimal.Decimal `gorm:"column:unit_cost;type:numeric(10,2);not null"`
	UnitType  string          `gorm:"column:unit_type;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Ingredient) TableName() string { return "ingredients" }
