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

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.CustomerOrder) (*models.CustomerOrder, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	CreateAdjustments(ctx context.Context, adjustments []models.OrderAdjustment) error
	CreateDiscountApplication(ctx context.Context, application *models.OrderDiscountApplication) error

	FindOrder(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error)
	ListOrders(ctx context.Context, params pagination.Params, filters Filters) (*OrderList, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error
	FindStaleOrders(ctx context.Context, status enums.OrderStatus, placedBefore time.Time) ([]models.CustomerOrder, error)
}

// Filters narrows order listings.
type Filters struct {
	CustomerID *uuid.UUID
	Status     *enums.OrderStatus
}

// OrderList is one page of orders with the next cursor.
type OrderList struct {
	Orders     []models.CustomerOrder `json:"orders"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

// Service exposes order placement and lifecycle operations.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*models.CustomerOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*OrderList, error)
	Advance(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.CustomerOrder, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error)
}
