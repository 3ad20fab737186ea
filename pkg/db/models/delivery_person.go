package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryPerson is a courier. Availability timestamps gate assignment.
type DeliveryPerson struct {
	ID                      uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName               string                   `gorm:"column:first_name;not null"`
	LastName                string                   `gorm:"column:last_name;not null"`
	Phone                   string                   `gorm:"column:phone;not null;uniqueIndex"`
	PostalAreaID            uuid.UUID                `gorm:"column:postal_area_id;type:uuid;not null"`
	PostalArea              *PostalArea              `gorm:"foreignKey:PostalAreaID"`
	LastDeliveryCompletedAt *time.Time               `gorm:"column:last_delivery_completed_at"`
	NextAvailableAt         *time.Time               `gorm:"column:next_available_at"`
	IsActive                bool                     `gorm:"column:is_active;not null;default:true"`
	ZoneAssignments         []DeliveryZoneAssignment `gorm:"foreignKey:DeliveryPersonID;constraint:OnDelete:CASCADE"`
	CreatedAt               time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

func (DeliveryPerson) TableName() string { return "delivery_people" }
