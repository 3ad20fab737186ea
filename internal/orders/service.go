package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/internal/catalog"
	"github.com/mammamia/pizzeria-backend/internal/customers"
	"github.com/mammamia/pizzeria-backend/internal/pricing"
	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
	"github.com/mammamia/pizzeria-backend/pkg/metrics"
	"github.com/mammamia/pizzeria-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// DiscountRedeemer is the order-time surface of the discounts service.
type DiscountRedeemer interface {
	Validate(ctx context.Context, code string, customerID uuid.UUID, at time.Time) (*models.DiscountCode, error)
	Redeem(ctx context.Context, tx *gorm.DB, code *models.DiscountCode, customerID, orderID uuid.UUID) error
}

// CourierDispatcher is the order-time surface of the delivery service.
type CourierDispatcher interface {
	Assign(ctx context.Context, tx *gorm.DB, postalAreaID uuid.UUID, at time.Time) (*models.DeliveryPerson, error)
	Complete(ctx context.Context, tx *gorm.DB, courierID uuid.UUID, at time.Time) error
}

type service struct {
	repo      Repository
	customers customers.Repository
	catalog   catalog.Repository
	pricing   pricing.Repository
	discounts DiscountRedeemer
	delivery  CourierDispatcher
	tx        txRunner
	metrics   *metrics.OrderMetrics
	now       func() time.Time
}

// NewService builds an orders service with the required dependencies.
func NewService(
	repo Repository,
	customersRepo customers.Repository,
	catalogRepo catalog.Repository,
	pricingRepo pricing.Repository,
	discountSvc DiscountRedeemer,
	deliverySvc CourierDispatcher,
	tx txRunner,
	orderMetrics *metrics.OrderMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if pricingRepo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if discountSvc == nil {
		return nil, fmt.Errorf("discounts service required")
	}
	if deliverySvc == nil {
		return nil, fmt.Errorf("delivery service required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      repo,
		customers: customersRepo,
		catalog:   catalogRepo,
		pricing:   pricingRepo,
		discounts: discountSvc,
		delivery:  deliverySvc,
		tx:        tx,
		metrics:   orderMetrics,
		now:       time.Now,
	}, nil
}

// Place creates an order atomically: pricing, discounts, loyalty counter
// movement and courier assignment either all land or none do.
func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*models.CustomerOrder, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Pizzas) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one pizza")
	}
	if !input.DeliveryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery type")
	}
	for _, spec := range append(append(append([]ItemSpec{}, input.Pizzas...), input.Drinks...), input.Desserts...) {
		if spec.ID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
		}
		if spec.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
	}

	placedAt := s.now()
	var orderID uuid.UUID
	var totals Totals

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		custRepo := s.customers.WithTx(tx)

		customer, err := custRepo.FindCustomer(ctx, input.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}

		loyalty, err := custRepo.FindLoyaltyForUpdate(ctx, customer.ID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock loyalty row")
			}
			loyalty = &models.CustomerLoyalty{CustomerID: customer.ID}
			if err := custRepo.CreateLoyalty(ctx, loyalty); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed loyalty row")
			}
		}

		var code *models.DiscountCode
		if input.DiscountCode != "" {
			code, err = s.discounts.Validate(ctx, input.DiscountCode, customer.ID, placedAt)
			if err != nil {
				return err
			}
		}

		priced, orderItems, err := s.resolveItems(ctx, tx, input)
		if err != nil {
			return err
		}

		birthdayToday := customer.Birthdate.Month() == placedAt.Month() &&
			customer.Birthdate.Day() == placedAt.Day()

		totals = ComputeTotals(priced, loyalty.PizzaCounter, birthdayToday, code)

		order := &models.CustomerOrder{
			CustomerID:          customer.ID,
			Status:              enums.OrderStatusPending,
			DeliveryType:        input.DeliveryType,
			SubtotalEUR:         totals.Subtotal,
			BirthdayDiscountEUR: totals.Birthday,
			LoyaltyDiscountEUR:  totals.Loyalty,
			CodeDiscountEUR:     totals.Code,
			TotalEUR:            totals.Total,
			Notes:               input.Notes,
			PlacedAt:            placedAt,
		}
		if code != nil {
			order.DiscountCodeID = &code.ID
		}

		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		orderID = order.ID

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := repo.CreateOrderItems(ctx, orderItems); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}

		var adjustments []models.OrderAdjustment
		if totals.Birthday.Sign() > 0 {
			adjustments = append(adjustments, models.OrderAdjustment{
				OrderID:        order.ID,
				AdjustmentType: enums.AdjustmentTypeBirthday,
				AmountEUR:      totals.Birthday,
				Description:    "birthday treat: cheapest pizza and drink free",
			})
		}
		if totals.Loyalty.Sign() > 0 {
			adjustments = append(adjustments, models.OrderAdjustment{
				OrderID:        order.ID,
				AdjustmentType: enums.AdjustmentTypeLoyalty,
				AmountEUR:      totals.Loyalty,
				Description:    "loyalty reward: 10% off pizzas",
			})
		}
		if err := repo.CreateAdjustments(ctx, adjustments); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create adjustments")
		}

		if code != nil && totals.Code.Sign() > 0 {
			application := &models.OrderDiscountApplication{
				OrderID:        order.ID,
				DiscountCodeID: code.ID,
				AmountEUR:      totals.Code,
			}
			if err := repo.CreateDiscountApplication(ctx, application); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record code application")
			}
			if err := s.discounts.Redeem(ctx, tx, code, customer.ID, order.ID); err != nil {
				return err
			}
		}

		loyaltyUpdates := map[string]any{
			"pizza_counter":   totals.NewLoyaltyCounter,
			"lifetime_pizzas": loyalty.LifetimePizzas + totals.PizzaCount,
		}
		if totals.RewardCycles > 0 {
			loyaltyUpdates["rewards_earned"] = loyalty.RewardsEarned + totals.RewardCycles
			loyaltyUpdates["last_reward_earned_at"] = placedAt
		}
		if err := custRepo.UpdateLoyalty(ctx, customer.ID, loyaltyUpdates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update loyalty counter")
		}

		if input.DeliveryType == enums.DeliveryTypeDelivery {
			courier, err := s.delivery.Assign(ctx, tx, customer.PostalAreaID, placedAt)
			if err != nil {
				return err
			}
			updates := map[string]any{
				"delivery_person_id": courier.ID,
				"driver_assigned_at": placedAt,
			}
			if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach courier")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObservePlaced(input.DeliveryType.String(), totals.Total)
	s.metrics.AddDiscount("birthday", totals.Birthday)
	s.metrics.AddDiscount("loyalty", totals.Loyalty)
	s.metrics.AddDiscount("code", totals.Code)

	return s.Get(ctx, orderID)
}

// resolveItems loads every referenced product and freezes unit prices
// and names. Each product may appear on one line only; callers bump the
// quantity instead of repeating a line.
func (s *service) resolveItems(ctx context.Context, tx *gorm.DB, input PlaceOrderInput) ([]PricedItem, []models.OrderItem, error) {
	var priced []PricedItem
	var rows []models.OrderItem

	seen := map[enums.OrderItemType]map[uuid.UUID]bool{}
	duplicate := func(itemType enums.OrderItemType, id uuid.UUID) bool {
		if seen[itemType] == nil {
			seen[itemType] = map[uuid.UUID]bool{}
		}
		if seen[itemType][id] {
			return true
		}
		seen[itemType][id] = true
		return false
	}

	pizzaIDs := make([]uuid.UUID, 0, len(input.Pizzas))
	for _, spec := range input.Pizzas {
		pizzaIDs = append(pizzaIDs, spec.ID)
	}
	pricingRows, err := s.pricing.WithTx(tx).FindByPizzaIDs(ctx, pizzaIDs)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pizza pricing")
	}
	catalogRepo := s.catalog.WithTx(tx)
	for _, spec := range input.Pizzas {
		if duplicate(enums.OrderItemTypePizza, spec.ID) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "pizza listed twice on the order")
		}
		row, ok := pricingRows[spec.ID]
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "pizza is unknown or has no priced recipe")
		}
		pizza, err := catalogRepo.FindPizza(ctx, spec.ID)
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pizza")
		}
		if !pizza.IsActive {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "pizza is not on the menu")
		}
		pizzaID := spec.ID
		priced = append(priced, PricedItem{
			Type:      enums.OrderItemTypePizza,
			ProductID: spec.ID,
			Quantity:  spec.Quantity,
			UnitPrice: row.FinalPriceWithVAT,
		})
		rows = append(rows, models.OrderItem{
			ItemType:         enums.OrderItemTypePizza,
			PizzaID:          &pizzaID,
			ItemNameSnapshot: pizza.Name,
			Quantity:         spec.Quantity,
			UnitPriceEUR:     row.FinalPriceWithVAT,
		})
	}

	for _, spec := range input.Drinks {
		if duplicate(enums.OrderItemTypeDrink, spec.ID) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "drink listed twice on the order")
		}
		drink, err := catalogRepo.FindDrink(ctx, spec.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown drink")
			}
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load drink")
		}
		if !drink.IsActive {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "drink is not on the menu")
		}
		drinkID := spec.ID
		priced = append(priced, PricedItem{
			Type:      enums.OrderItemTypeDrink,
			ProductID: spec.ID,
			Quantity:  spec.Quantity,
			UnitPrice: drink.PriceEUR,
		})
		rows = append(rows, models.OrderItem{
			ItemType:         enums.OrderItemTypeDrink,
			DrinkID:          &drinkID,
			ItemNameSnapshot: drink.Name,
			Quantity:         spec.Quantity,
			UnitPriceEUR:     drink.PriceEUR,
		})
	}

	for _, spec := range input.Desserts {
		if duplicate(enums.OrderItemTypeDessert, spec.ID) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "dessert listed twice on the order")
		}
		dessert, err := catalogRepo.FindDessert(ctx, spec.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown dessert")
			}
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dessert")
		}
		if !dessert.IsActive {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "dessert is not on the menu")
		}
		dessertID := spec.ID
		priced = append(priced, PricedItem{
			Type:      enums.OrderItemTypeDessert,
			ProductID: spec.ID,
			Quantity:  spec.Quantity,
			UnitPrice: dessert.PriceEUR,
		})
		rows = append(rows, models.OrderItem{
			ItemType:         enums.OrderItemTypeDessert,
			DessertID:        &dessertID,
			ItemNameSnapshot: dessert.Name,
			Quantity:         spec.Quantity,
			UnitPriceEUR:     dessert.PriceEUR,
		})
	}

	return priced, rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*OrderList, error) {
	list, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// Advance moves an order along its lifecycle. Delivering an order also
// frees its courier.
func (s *service) Advance(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*models.CustomerOrder, error) {
	at := s.now()

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if err := validateTransition(order.Status, target); err != nil {
			return err
		}

		updates := map[string]any{"status": target}
		switch target {
		case enums.OrderStatusDelivered:
			updates["delivered_at"] = at
			if order.DeliveryPersonID != nil {
				if err := s.delivery.Complete(ctx, tx, *order.DeliveryPersonID, at); err != nil {
					return err
				}
			}
		case enums.OrderStatusCancelled:
			updates["cancelled_at"] = at
		}

		if err := repo.UpdateOrder(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error) {
	return s.Advance(ctx, id, enums.OrderStatusCancelled)
}
