package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dessert is a fixed-price dessert on the menu.
type Dessert struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string              `gorm:"column:name;not null;uniqueIndex"`
	Description string              `gorm:"column:description;not null;default:''"`
	PriceEUR    decimal.Decimal     `gorm:"column:price_eur;type:numeric(6,2);not null"`
	IsVegan     bool                `gorm:"column:is_vegan;not null;default:false"`
	IsActive    bool                `gorm:"column:is_active;not null;default:true"`
	Ingredients []DessertIngredient `gorm:"foreignKey:DessertID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Dessert) TableName() string { return "desserts" }
