package models

import (
	"time"

	"github.com/google/uuid"
)

// PostalArea is a deliverable postal code with its city and country.
type PostalArea struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PostalCode string    `gorm:"column:postal_code;not null;uniqueIndex"`
	City       string    `gorm:"column:city;not null;default:''"`
	Country    string    `gorm:"column:country;not null;default:'Belgium'"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PostalArea) TableName() string { return "postal_areas" }
