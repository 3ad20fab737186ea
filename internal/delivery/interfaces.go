package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
)

// Repository defines persistence operations for couriers and zones.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCourier(ctx context.Context, courier *models.DeliveryPerson) (*models.DeliveryPerson, error)
	FindCourier(ctx context.Context, id uuid.UUID) (*models.DeliveryPerson, error)
	ListCouriers(ctx context.Context) ([]models.DeliveryPerson, error)
	UpdateCourier(ctx context.Context, id uuid.UUID, updates map[string]any) error

	ReplaceZoneAssignments(ctx context.Context, courierID uuid.UUID, assignments []models.DeliveryZoneAssignment) error

	// FindAvailableCourierForArea picks the best free courier covering the
	// area, locking the row so concurrent assignments skip it.
	FindAvailableCourierForArea(ctx context.Context, postalAreaID uuid.UUID, at time.Time) (*models.DeliveryPerson, error)
}

// Service exposes courier administration and order-time assignment.
type Service interface {
	CreateCourier(ctx context.Context, input CreateCourierInput) (*models.DeliveryPerson, error)
	GetCourier(ctx context.Context, id uuid.UUID) (*models.DeliveryPerson, error)
	ListCouriers(ctx context.Context) ([]models.DeliveryPerson, error)
	SetZones(ctx context.Context, courierID uuid.UUID, zones []ZoneInput) (*models.DeliveryPerson, error)

	// Assign picks and blocks a courier for the area inside the caller's
	// transaction. Returns a state conflict when nobody is free.
	Assign(ctx context.Context, tx *gorm.DB, postalAreaID uuid.UUID, at time.Time) (*models.DeliveryPerson, error)

	// Complete marks a courier's delivery as done and frees them early.
	Complete(ctx context.Context, tx *gorm.DB, courierID uuid.UUID, at time.Time) error
}

// CreateCourierInput carries the fields for a new courier.
type CreateCourierInput struct {
	FirstName    string
	LastName     string
	Phone        string
	PostalAreaID uuid.UUID
	Zones        []ZoneInput
}

// ZoneInput is one requested zone assignment.
type ZoneInput struct {
	PostalAreaID uuid.UUID
	Priority     int
}
