package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db"
	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
	"github.com/mammamia/pizzeria-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds a customers service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

// Register creates a customer in a deliverable postal area and seeds the
// loyalty counter at zero.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Customer, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first and last name required")
	}
	if input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}
	if input.Birthdate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "birthdate required")
	}
	if input.Birthdate.After(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "birthdate cannot be in the future")
	}

	area, err := s.repo.FindPostalAreaByCode(ctx, strings.TrimSpace(input.PostalCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "postal code is not deliverable")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup postal area")
	}

	customer := &models.Customer{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Birthdate:    input.Birthdate,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        input.Phone,
		Street:       input.Street,
		PostalAreaID: area.ID,
		Gender:       input.Gender,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateCustomer(ctx, customer); err != nil {
			if db.IsUniqueViolation(err, "customers_email_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
		}
		loyalty := &models.CustomerLoyalty{CustomerID: customer.ID}
		if err := repo.CreateLoyalty(ctx, loyalty); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed loyalty counter")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, customer.ID)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*CustomerList, error) {
	list, err := s.repo.ListCustomers(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Customer, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Street != nil {
		updates["street"] = *input.Street
	}
	if input.PostalCode != nil {
		area, err := s.repo.FindPostalAreaByCode(ctx, strings.TrimSpace(*input.PostalCode))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "postal code is not deliverable")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup postal area")
		}
		updates["postal_area_id"] = area.ID
	}

	if err := s.repo.UpdateCustomer(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return s.Get(ctx, id)
}

func (s *service) Loyalty(ctx context.Context, customerID uuid.UUID) (*models.CustomerLoyalty, error) {
	loyalty, err := s.repo.FindLoyalty(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "loyalty record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load loyalty")
	}
	return loyalty, nil
}

func (s *service) CreatePostalArea(ctx context.Context, input PostalAreaInput) (*models.PostalArea, error) {
	code := strings.TrimSpace(input.PostalCode)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "postal code required")
	}
	area := &models.PostalArea{
		PostalCode: code,
		City:       input.City,
	}
	if input.Country != "" {
		area.Country = input.Country
	}
	created, err := s.repo.CreatePostalArea(ctx, area)
	if err != nil {
		if db.IsUniqueViolation(err, "postal_areas_postal_code_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "postal code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create postal area")
	}
	return created, nil
}

func (s *service) ListPostalAreas(ctx context.Context) ([]models.PostalArea, error) {
	areas, err := s.repo.ListPostalAreas(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list postal areas")
	}
	return areas, nil
}
