package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *repository) FindCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("PostalArea").
		Preload("Loyalty").
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) ListCustomers(ctx context.Context, params pagination.Params) (*CustomerList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)

	q := r.db.WithContext(ctx).
		Preload("PostalArea").
		Order("created_at DESC, id DESC").
		Limit(limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.Timestamp, cursor.ID)
	}

	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, err
	}

	list := &CustomerList{Customers: customers}
	pageSize := pagination.NormalizeLimit(params.Limit)
	if len(customers) > pageSize {
		list.Customers = customers[:pageSize]
		last := list.Customers[pageSize-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			Timestamp: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) UpdateCustomer(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) FindPostalAreaByCode(ctx context.Context, postalCode string) (*models.PostalArea, error) {
	var area models.PostalArea
	err := r.db.WithContext(ctx).
		Where("postal_code = ?", postalCode).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *repository) CreatePostalArea(ctx context.Context, area *models.PostalArea) (*models.PostalArea, error) {
	if err := r.db.WithContext(ctx).Create(area).Error; err != nil {
		return nil, err
	}
	return area, nil
}

func (r *repository) ListPostalAreas(ctx context.Context) ([]models.PostalArea, error) {
	var areas []models.PostalArea
	err := r.db.WithContext(ctx).
		Order("postal_code ASC").
		Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *repository) CreateLoyalty(ctx context.Context, loyalty *models.CustomerLoyalty) error {
	return r.db.WithContext(ctx).Create(loyalty).Error
}

func (r *repository) FindLoyalty(ctx context.Context, customerID uuid.UUID) (*models.CustomerLoyalty, error) {
	var loyalty models.CustomerLoyalty
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&loyalty).Error
	if err != nil {
		return nil, err
	}
	return &loyalty, nil
}

// FindLoyaltyForUpdate locks the loyalty row for the duration of the
// enclosing transaction so concurrent orders serialize counter updates.
func (r *repository) FindLoyaltyForUpdate(ctx context.Context, customerID uuid.UUID) (*models.CustomerLoyalty, error) {
	var loyalty models.CustomerLoyalty
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID).
		First(&loyalty).Error
	if err != nil {
		return nil, err
	}
	return &loyalty, nil
}

func (r *repository) UpdateLoyalty(ctx context.Context, customerID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CustomerLoyalty{}).
		Where("customer_id = ?", customerID).
		Updates(updates).Error
}
