package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an ordering customer. Birthdate drives the birthday discount
// and is constrained to non-future dates.
type Customer struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName    string           `gorm:"column:first_name;not null"`
	LastName     string           `gorm:"column:last_name;not null"`
	Birthdate    time.Time        `gorm:"column:birthdate;type:date;not null"`
	Email        string           `gorm:"column:email;not null;uniqueIndex"`
	Phone        string           `gorm:"column:phone;not null"`
	Street       string           `gorm:"column:street;not null"`
	PostalAreaID uuid.UUID        `gorm:"column:postal_area_id;type:uuid;not null"`
	PostalArea   *PostalArea      `gorm:"foreignKey:PostalAreaID"`
	Gender       string           `gorm:"column:gender;not null;default:''"`
	Loyalty      *CustomerLoyalty `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string { return "customers" }
