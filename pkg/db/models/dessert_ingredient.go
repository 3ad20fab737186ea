package models

import (
	"time"

	"github.com/google/uuid"
)

// DessertIngredient is a free-text ingredient label on a dessert.
type DessertIngredient struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DessertID  uuid.UUID `gorm:"column:dessert_id;type:uuid;not null;uniqueIndex:idx_dessert_ingredient"`
	Ingredient string    `gorm:"column:ingredient;not null;uniqueIndex:idx_dessert_ingredient"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (DessertIngredient) TableName() string { return "dessert_ingredients" }
