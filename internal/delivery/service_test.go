package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/config"
	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
)

type stubDeliveryRepo struct {
	couriers  map[uuid.UUID]*models.DeliveryPerson
	available *models.DeliveryPerson
	updates   map[uuid.UUID]map[string]any
}

func newStubDeliveryRepo() *stubDeliveryRepo {
	return &stubDeliveryRepo{
		couriers: map[uuid.UUID]*models.DeliveryPerson{},
		updates:  map[uuid.UUID]map[string]any{},
	}
}

func (s *stubDeliveryRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubDeliveryRepo) CreateCourier(ctx context.Context, courier *models.DeliveryPerson) (*models.DeliveryPerson, error) {
	if courier.ID == uuid.Nil {
		courier.ID = uuid.New()
	}
	s.couriers[courier.ID] = courier
	return courier, nil
}

func (s *stubDeliveryRepo) FindCourier(ctx context.Context, id uuid.UUID) (*models.DeliveryPerson, error) {
	courier, ok := s.couriers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return courier, nil
}

func (s *stubDeliveryRepo) ListCouriers(ctx context.Context) ([]models.DeliveryPerson, error) {
	var out []models.DeliveryPerson
	for _, courier := range s.couriers {
		out = append(out, *courier)
	}
	return out, nil
}

func (s *stubDeliveryRepo) UpdateCourier(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates[id] = updates
	return nil
}

func (s *stubDeliveryRepo) ReplaceZoneAssignments(ctx context.Context, courierID uuid.UUID, assignments []models.DeliveryZoneAssignment) error {
	courier, ok := s.couriers[courierID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	courier.ZoneAssignments = assignments
	return nil
}

func (s *stubDeliveryRepo) FindAvailableCourierForArea(ctx context.Context, postalAreaID uuid.UUID, at time.Time) (*models.DeliveryPerson, error) {
	if s.available == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.available, nil
}

func TestAssignBlocksCourier(t *testing.T) {
	repo := newStubDeliveryRepo()
	courier := &models.DeliveryPerson{ID: uuid.New(), FirstName: "Luca", LastName: "Moretti"}
	repo.couriers[courier.ID] = courier
	repo.available = courier

	cfg := config.OrdersConfig{CourierBlockMinutes: 30}
	svc, _ := NewService(repo, cfg)

	at := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	assigned, err := svc.Assign(context.Background(), nil, uuid.New(), at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assigned.ID != courier.ID {
		t.Fatalf("unexpected courier assigned")
	}
	if assigned.NextAvailableAt == nil || !assigned.NextAvailableAt.Equal(at.Add(30*time.Minute)) {
		t.Fatalf("expected 30 minute block, got %v", assigned.NextAvailableAt)
	}
	if _, ok := repo.updates[courier.ID]["next_available_at"]; !ok {
		t.Fatalf("expected block to be persisted")
	}
}

func TestAssignFailsWhenNobodyFree(t *testing.T) {
	repo := newStubDeliveryRepo()
	svc, _ := NewService(repo, config.OrdersConfig{CourierBlockMinutes: 30})

	_, err := svc.Assign(context.Background(), nil, uuid.New(), time.Now())
	if pkgerrors.CodeOf(err) != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCompleteReleasesCourier(t *testing.T) {
	repo := newStubDeliveryRepo()
	courier := &models.DeliveryPerson{ID: uuid.New()}
	repo.couriers[courier.ID] = courier

	svc, _ := NewService(repo, config.OrdersConfig{CourierBlockMinutes: 30})

	at := time.Now()
	if err := svc.Complete(context.Background(), nil, courier.ID, at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updates := repo.updates[courier.ID]
	if updates["next_available_at"] != nil {
		t.Fatalf("expected courier to be freed")
	}
	if updates["last_delivery_completed_at"] == nil {
		t.Fatalf("expected completion timestamp to be recorded")
	}
}

func TestSetZonesRejectsDuplicates(t *testing.T) {
	repo := newStubDeliveryRepo()
	courier := &models.DeliveryPerson{ID: uuid.New()}
	repo.couriers[courier.ID] = courier

	svc, _ := NewService(repo, config.OrdersConfig{CourierBlockMinutes: 30})

	area := uuid.New()
	_, err := svc.SetZones(context.Background(), courier.ID, []ZoneInput{
		{PostalAreaID: area, Priority: 1},
		{PostalAreaID: area, Priority: 2},
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
