package models

import (
	"github.com/google/uuid"
)

// DeliveryZoneAssignment maps a courier to a postal area. Lower priority
// values are preferred when selecting a courier for an order.
type DeliveryZoneAssignment struct {
	ID               uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DeliveryPersonID uuid.UUID   `gorm:"column:delivery_person_id;type:uuid;not null;uniqueIndex:idx_zone_assignment"`
	PostalAreaID     uuid.UUID   `gorm:"column:postal_area_id;type:uuid;not null;uniqueIndex:idx_zone_assignment"`
	Priority         int         `gorm:"column:priority;not null;default:1"`
	PostalArea       *PostalArea `gorm:"foreignKey:PostalAreaID"`
}

func (DeliveryZoneAssignment) TableName() string { return "delivery_zone_assignments" }
