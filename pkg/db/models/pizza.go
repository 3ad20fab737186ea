package models

import (
	"time"

	"github.com/google/uuid"
)

// Pizza is a menu pizza. The stored dietary flags are denormalized
// snapshots; pizza_pricing carries the computed truth and the
// reconciliation job keeps these columns in line with it.
type Pizza struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string            `gorm:"column:name;not null;uniqueIndex"`
	Description  string            `gorm:"column:description;not null;default:''"`
	IsActive     bool              `gorm:"column:is_active;not null;default:true"`
	IsVegetarian bool              `gorm:"column:is_vegetarian;not null;default:false"`
	IsVegan      bool              `gorm:"column:is_vegan;not null;default:false"`
	Recipe       []PizzaIngredient `gorm:"foreignKey:PizzaID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Pizza) TableName() string { return "pizzas" }
