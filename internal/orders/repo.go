package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
	"github.com/mammamia/pizzeria-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.CustomerOrder) (*models.CustomerOrder, error) {
	if err := r.db.WithContext(ctx).Omit("Items", "Adjustments", "CodeApplications").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) CreateAdjustments(ctx context.Context, adjustments []models.OrderAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&adjustments).Error
}

func (r *repository) CreateDiscountApplication(ctx context.Context, application *models.OrderDiscountApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *repository) FindOrder(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error) {
	var order models.CustomerOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Adjustments").
		Preload("CodeApplications").
		Preload("Customer.PostalArea").
		Preload("DeliveryPerson").
		Preload("DiscountCode").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListOrders(ctx context.Context, params pagination.Params, filters Filters) (*OrderList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)

	q := r.db.WithContext(ctx).
		Preload("Items").
		Order("placed_at DESC, id DESC").
		Limit(limit)

	if filters.CustomerID != nil {
		q = q.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(placed_at, id) < (?, ?)", cursor.Timestamp, cursor.ID)
	}

	var orders []models.CustomerOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}

	list := &OrderList{Orders: orders}
	pageSize := pagination.NormalizeLimit(params.Limit)
	if len(orders) > pageSize {
		list.Orders = orders[:pageSize]
		last := list.Orders[pageSize-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			Timestamp: last.PlacedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CustomerOrder{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) FindStaleOrders(ctx context.Context, status enums.OrderStatus, placedBefore time.Time) ([]models.CustomerOrder, error) {
	var orders []models.CustomerOrder
	err := r.db.WithContext(ctx).
		Where("status = ? AND placed_at < ?", status, placedBefore).
		Order("placed_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
