package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
	"github.com/mammamia/pizzeria-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS postal_areas (
  id TEXT PRIMARY KEY,
  postal_code TEXT NOT NULL UNIQUE,
  city TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT 'Belgium',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  birthdate DATE NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL,
  street TEXT NOT NULL,
  postal_area_id TEXT NOT NULL,
  gender TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS delivery_people (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  phone TEXT NOT NULL UNIQUE,
  postal_area_id TEXT NOT NULL,
  last_delivery_completed_at DATETIME,
  next_available_at DATETIME,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS discount_codes (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  discount_type TEXT NOT NULL,
  percent NUMERIC,
  amount_eur NUMERIC,
  valid_from DATETIME NOT NULL,
  valid_until DATETIME,
  is_one_time INTEGER NOT NULL DEFAULT 0,
  max_redemptions INTEGER,
  times_redeemed INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS customer_orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  delivery_type TEXT NOT NULL,
  delivery_person_id TEXT,
  driver_assigned_at DATETIME,
  discount_code_id TEXT,
  subtotal_eur NUMERIC NOT NULL,
  birthday_discount_eur NUMERIC NOT NULL DEFAULT 0,
  loyalty_discount_eur NUMERIC NOT NULL DEFAULT 0,
  code_discount_eur NUMERIC NOT NULL DEFAULT 0,
  total_eur NUMERIC NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  placed_at DATETIME NOT NULL,
  delivered_at DATETIME,
  cancelled_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  item_type TEXT NOT NULL,
  pizza_id TEXT,
  drink_id TEXT,
  dessert_id TEXT,
  item_name_snapshot TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL,
  unit_price_eur NUMERIC NOT NULL,
  created_at DATETIME,
  CONSTRAINT idx_order_item_product UNIQUE (order_id, item_type, pizza_id, drink_id, dessert_id)
);`,
		`CREATE TABLE IF NOT EXISTS order_adjustments (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  adjustment_type TEXT NOT NULL,
  amount_eur NUMERIC NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_discount_applications (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL UNIQUE,
  discount_code_id TEXT NOT NULL,
  amount_eur NUMERIC NOT NULL,
  created_at DATETIME
);`,
	}
	for _, ddl := range schemas {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func newRepoCustomer(t *testing.T, db *gorm.DB, email string) *models.Customer {
	t.Helper()

	area := &models.PostalArea{
		ID:         uuid.New(),
		PostalCode: "2000-" + email,
		City:       "Antwerpen",
		Country:    "BE",
	}
	require.NoError(t, db.Create(area).Error)

	customer := &models.Customer{
		ID:           uuid.New(),
		FirstName:    "Test",
		LastName:     "Customer",
		Birthdate:    time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		Email:        email,
		Phone:        "+32 470 00 00 00",
		Street:       "Meir 1",
		PostalAreaID: area.ID,
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func newRepoOrder(t *testing.T, repo Repository, customerID uuid.UUID, status enums.OrderStatus, placedAt time.Time) *models.CustomerOrder {
	t.Helper()

	order := &models.CustomerOrder{
		ID:           uuid.New(),
		CustomerID:   customerID,
		Status:       status,
		DeliveryType: enums.DeliveryTypePickup,
		SubtotalEUR:  decimal.RequireFromString("14.10"),
		TotalEUR:     decimal.RequireFromString("14.10"),
		PlacedAt:     placedAt,
	}
	created, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	return created
}

func TestRepositoryCreateAndFindOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	customer := newRepoCustomer(t, db, "find@example.com")
	order := newRepoOrder(t, repo, customer.ID, enums.OrderStatusPending, time.Now().UTC())

	pizzaID := uuid.New()
	items := []models.OrderItem{
		{
			ID:               uuid.New(),
			OrderID:          order.ID,
			ItemType:         enums.OrderItemTypePizza,
			PizzaID:          &pizzaID,
			ItemNameSnapshot: "Margherita",
			Quantity:         2,
			UnitPriceEUR:     decimal.RequireFromString("5.80"),
		},
	}
	require.NoError(t, repo.CreateOrderItems(context.Background(), items))
	require.NoError(t, repo.CreateAdjustments(context.Background(), []models.OrderAdjustment{
		{
			ID:             uuid.New(),
			OrderID:        order.ID,
			AdjustmentType: enums.AdjustmentTypeBirthday,
			AmountEUR:      decimal.RequireFromString("8.30"),
			Description:    "birthday order",
		},
	}))

	found, err := repo.FindOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Customer)
	require.NotNil(t, found.Customer.PostalArea)
	require.Len(t, found.Items, 1)
	require.Len(t, found.Adjustments, 1)
	assert.Equal(t, customer.ID, found.Customer.ID)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.Equal(t, "Margherita", found.Items[0].ItemNameSnapshot)
	assert.True(t, found.Items[0].LineTotal().Equal(decimal.RequireFromString("11.60")))
	assert.Equal(t, enums.AdjustmentTypeBirthday, found.Adjustments[0].AdjustmentType)
}

func TestRepositoryListOrders_pagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	customer := newRepoCustomer(t, db, "page@example.com")
	now := time.Now().UTC()
	older := newRepoOrder(t, repo, customer.ID, enums.OrderStatusPending, now.Add(-time.Hour))
	newer := newRepoOrder(t, repo, customer.ID, enums.OrderStatusPending, now)

	list, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 1}, Filters{CustomerID: &customer.ID})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, newer.ID, list.Orders[0].ID)
	assert.NotEmpty(t, list.NextCursor)

	second, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 1, Cursor: list.NextCursor}, Filters{CustomerID: &customer.ID})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Equal(t, older.ID, second.Orders[0].ID)
	assert.Empty(t, second.NextCursor)
}

func TestRepositoryListOrders_filters(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	first := newRepoCustomer(t, db, "first@example.com")
	second := newRepoCustomer(t, db, "second@example.com")
	now := time.Now().UTC()
	newRepoOrder(t, repo, first.ID, enums.OrderStatusPending, now.Add(-time.Minute))
	delivered := newRepoOrder(t, repo, second.ID, enums.OrderStatusDelivered, now)

	status := enums.OrderStatusDelivered
	list, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 10}, Filters{
		CustomerID: &second.ID,
		Status:     &status,
	})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, delivered.ID, list.Orders[0].ID)
}

func TestRepositoryUpdateOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	customer := newRepoCustomer(t, db, "update@example.com")
	order := newRepoOrder(t, repo, customer.ID, enums.OrderStatusPending, time.Now().UTC())

	require.NoError(t, repo.UpdateOrder(context.Background(), order.ID, map[string]any{
		"status": enums.OrderStatusPreparing,
	}))

	found, err := repo.FindOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPreparing, found.Status)
}

func TestRepositoryFindStaleOrders(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	customer := newRepoCustomer(t, db, "stale@example.com")
	now := time.Now().UTC()
	stale := newRepoOrder(t, repo, customer.ID, enums.OrderStatusPending, now.Add(-48*time.Hour))
	newRepoOrder(t, repo, customer.ID, enums.OrderStatusPending, now)
	newRepoOrder(t, repo, customer.ID, enums.OrderStatusDelivered, now.Add(-48*time.Hour))

	found, err := repo.FindStaleOrders(context.Background(), enums.OrderStatusPending, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stale.ID, found[0].ID)
}
