package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/config"
	"github.com/mammamia/pizzeria-backend/pkg/db"
	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
)

type service struct {
	repo     Repository
	blockFor time.Duration
}

// NewService builds a delivery service with the required dependencies.
func NewService(repo Repository, cfg config.OrdersConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery repository required")
	}
	return &service{repo: repo, blockFor: cfg.CourierBlock()}, nil
}

func (s *service) CreateCourier(ctx context.Context, input CreateCourierInput) (*models.DeliveryPerson, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first and last name required")
	}
	if input.Phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone required")
	}
	if input.PostalAreaID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "home postal area required")
	}

	courier := &models.DeliveryPerson{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		PostalAreaID: input.PostalAreaID,
		IsActive:     true,
	}
	for _, zone := range input.Zones {
		priority := zone.Priority
		if priority <= 0 {
			priority = 1
		}
		courier.ZoneAssignments = append(courier.ZoneAssignments, models.DeliveryZoneAssignment{
			PostalAreaID: zone.PostalAreaID,
			Priority:     priority,
		})
	}

	created, err := s.repo.CreateCourier(ctx, courier)
	if err != nil {
		if db.IsUniqueViolation(err, "delivery_people_phone_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create courier")
	}
	return created, nil
}

func (s *service) GetCourier(ctx context.Context, id uuid.UUID) (*models.DeliveryPerson, error) {
	courier, err := s.repo.FindCourier(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "courier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load courier")
	}
	return courier, nil
}

func (s *service) ListCouriers(ctx context.Context) ([]models.DeliveryPerson, error) {
	couriers, err := s.repo.ListCouriers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list couriers")
	}
	return couriers, nil
}

func (s *service) SetZones(ctx context.Context, courierID uuid.UUID, zones []ZoneInput) (*models.DeliveryPerson, error) {
	if _, err := s.GetCourier(ctx, courierID); err != nil {
		return nil, err
	}
	seen := map[uuid.UUID]bool{}
	assignments := make([]models.DeliveryZoneAssignment, 0, len(zones))
	for _, zone := range zones {
		if zone.PostalAreaID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "zone postal area required")
		}
		if seen[zone.PostalAreaID] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate zone assignment")
		}
		seen[zone.PostalAreaID] = true
		priority := zone.Priority
		if priority <= 0 {
			priority = 1
		}
		assignments = append(assignments, models.DeliveryZoneAssignment{
			DeliveryPersonID: courierID,
			PostalAreaID:     zone.PostalAreaID,
			Priority:         priority,
		})
	}
	if err := s.repo.ReplaceZoneAssignments(ctx, courierID, assignments); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace zone assignments")
	}
	return s.GetCourier(ctx, courierID)
}

// Assign picks the free courier with the best zone priority for the
// area and blocks them for the configured window.
func (s *service) Assign(ctx context.Context, tx *gorm.DB, postalAreaID uuid.UUID, at time.Time) (*models.DeliveryPerson, error) {
	repo := s.repo.WithTx(tx)

	courier, err := repo.FindAvailableCourierForArea(ctx, postalAreaID, at)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no courier available for this area")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find available courier")
	}

	blockedUntil := at.Add(s.blockFor)
	updates := map[string]any{"next_available_at": blockedUntil}
	if err := repo.UpdateCourier(ctx, courier.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "block courier")
	}
	courier.NextAvailableAt = &blockedUntil
	return courier, nil
}

// Complete records a finished delivery and makes the courier available
// again without waiting out the block window.
func (s *service) Complete(ctx context.Context, tx *gorm.DB, courierID uuid.UUID, at time.Time) error {
	repo := s.repo.WithTx(tx)
	if _, err := repo.FindCourier(ctx, courierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "courier not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load courier")
	}
	updates := map[string]any{
		"last_delivery_completed_at": at,
		"next_available_at":          nil,
	}
	if err := repo.UpdateCourier(ctx, courierID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release courier")
	}
	return nil
}
