package customers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/pagination"
)

// Repository defines persistence operations for customers and loyalty.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListCustomers(ctx context.Context, params pagination.Params) (*CustomerList, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, updates map[string]any) error

	FindPostalAreaByCode(ctx context.Context, postalCode string) (*models.PostalArea, error)
	CreatePostalArea(ctx context.Context, area *models.PostalArea) (*models.PostalArea, error)
	ListPostalAreas(ctx context.Context) ([]models.PostalArea, error)

	CreateLoyalty(ctx context.Context, loyalty *models.CustomerLoyalty) error
	FindLoyalty(ctx context.Context, customerID uuid.UUID) (*models.CustomerLoyalty, error)
	FindLoyaltyForUpdate(ctx context.Context, customerID uuid.UUID) (*models.CustomerLoyalty, error)
	UpdateLoyalty(ctx context.Context, customerID uuid.UUID, updates map[string]any) error
}

// Service exposes customer registration and profile reads.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, params pagination.Params) (*CustomerList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Customer, error)
	Loyalty(ctx context.Context, customerID uuid.UUID) (*models.CustomerLoyalty, error)

	CreatePostalArea(ctx context.Context, input PostalAreaInput) (*models.PostalArea, error)
	ListPostalAreas(ctx context.Context) ([]models.PostalArea, error)
}

// RegisterInput carries the fields for a new customer.
type RegisterInput struct {
	FirstName  string
	LastName   string
	Birthdate  time.Time
	Email      string
	Phone      string
	Street     string
	PostalCode string
	Gender     string
}

// UpdateInput carries optional profile updates.
type UpdateInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Street     *string
	PostalCode *string
}

// PostalAreaInput carries the fields for a new deliverable postal area.
type PostalAreaInput struct {
	PostalCode string
	City       string
	Country    string
}

// CustomerList is one page of customers with the next cursor.
type CustomerList struct {
	Customers  []models.Customer `json:"customers"`
	NextCursor string            `json:"next_cursor,omitempty"`
}
