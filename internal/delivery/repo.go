package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a delivery repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCourier(ctx context.Context, courier *models.DeliveryPerson) (*models.DeliveryPerson, error) {
	if err := r.db.WithContext(ctx).Create(courier).Error; err != nil {
		return nil, err
	}
	return courier, nil
}

func (r *repository) FindCourier(ctx context.Context, id uuid.UUID) (*models.DeliveryPerson, error) {
	var courier models.DeliveryPerson
	err := r.db.WithContext(ctx).
		Preload("PostalArea").
		Preload("ZoneAssignments.PostalArea").
		Where("id = ?", id).
		First(&courier).Error
	if err != nil {
		return nil, err
	}
	return &courier, nil
}

func (r *repository) ListCouriers(ctx context.Context) ([]models.DeliveryPerson, error) {
	var couriers []models.DeliveryPerson
	err := r.db.WithContext(ctx).
		Preload("ZoneAssignments.PostalArea").
		Order("last_name ASC, first_name ASC").
		Find(&couriers).Error
	if err != nil {
		return nil, err
	}
	return couriers, nil
}

func (r *repository) UpdateCourier(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.DeliveryPerson{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ReplaceZoneAssignments(ctx context.Context, courierID uuid.UUID, assignments []models.DeliveryZoneAssignment) error {
	err := r.db.WithContext(ctx).
		Where("delivery_person_id = ?", courierID).
		Delete(&models.DeliveryZoneAssignment{}).Error
	if err != nil {
		return err
	}
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&assignments).Error
}

func (r *repository) FindAvailableCourierForArea(ctx context.Context, postalAreaID uuid.UUID, at time.Time) (*models.DeliveryPerson, error) {
	var courier models.DeliveryPerson
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Joins("JOIN delivery_zone_assignments dza ON dza.delivery_person_id = delivery_people.id").
		Where("dza.postal_area_id = ?", postalAreaID).
		Where("delivery_people.is_active = ?", true).
		Where("delivery_people.next_available_at IS NULL OR delivery_people.next_available_at <= ?", at).
		Order("dza.priority ASC, delivery_people.last_delivery_completed_at ASC NULLS FIRST").
		First(&courier).Error
	if err != nil {
		return nil, err
	}
	return &courier, nil
}
