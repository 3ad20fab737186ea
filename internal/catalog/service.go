package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/internal/pricing"
	"github.com/mammamia/pizzeria-backend/pkg/db"
	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo    Repository
	pricing pricing.Repository
	tx      txRunner
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository, pricingRepo pricing.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if pricingRepo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, pricing: pricingRepo, tx: tx}, nil
}

func (s *service) CreateIngredient(ctx context.Context, input CreateIngredientInput) (*models.Ingredient, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient name required")
	}
	if input.UnitCost.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost must be positive")
	}
	if input.IsVegan && (input.IsMeat || input.IsDairy) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vegan ingredient cannot be meat or dairy")
	}

	ingredient := &models.Ingredient{
		Name:     input.Name,
		IsMeat:   input.IsMeat,
		IsDairy:  input.IsDairy,
		IsVegan:  input.IsVegan,
		UnitCost: input.UnitCost,
		UnitType: input.UnitType,
	}
	created, err := s.repo.CreateIngredient(ctx, ingredient)
	if err != nil {
		if db.IsUniqueViolation(err, "ingredients_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "ingredient name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ingredient")
	}
	return created, nil
}

func (s *service) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	ingredients, err := s.repo.ListIngredients(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ingredients")
	}
	return ingredients, nil
}

func (s *service) UpdateIngredient(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*models.Ingredient, error) {
	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient name required")
		}
		updates["name"] = *input.Name
	}
	if input.IsMeat != nil {
		updates["is_meat"] = *input.IsMeat
	}
	if input.IsDairy != nil {
		updates["is_dairy"] = *input.IsDairy
	}
	if input.IsVegan != nil {
		updates["is_vegan"] = *input.IsVegan
	}
	if input.UnitCost != nil {
		if input.UnitCost.Sign() <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost must be positive")
		}
		updates["unit_cost"] = *input.UnitCost
	}
	if input.UnitType != nil {
		updates["unit_type"] = *input.UnitType
	}

	if _, err := s.findIngredient(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateIngredient(ctx, id, updates); err != nil {
		if db.IsUniqueViolation(err, "ingredients_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "ingredient name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ingredient")
	}
	return s.findIngredient(ctx, id)
}

// DeleteIngredient removes an ingredient unless a recipe still references it.
func (s *service) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findIngredient(ctx, id); err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		count, err := repo.CountRecipesUsingIngredient(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count recipe usage")
		}
		if count > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "ingredient is used by a recipe")
		}
		if err := repo.DeleteIngredient(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete ingredient")
		}
		return nil
	})
}

func (s *service) findIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	ingredient, err := s.repo.FindIngredient(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ingredient")
	}
	return ingredient, nil
}

func (s *service) CreatePizza(ctx context.Context, input CreatePizzaInput) (*models.Pizza, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pizza name required")
	}
	pizza := &models.Pizza{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	created, err := s.repo.CreatePizza(ctx, pizza)
	if err != nil {
		if db.IsUniqueViolation(err, "pizzas_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "pizza name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create pizza")
	}
	return created, nil
}

// SetRecipe replaces the full recipe of a pizza and refreshes the stored
// dietary flags from the recomputed pricing profile.
func (s *service) SetRecipe(ctx context.Context, pizzaID uuid.UUID, lines []RecipeLineInput) (*PizzaDetail, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe needs at least one ingredient")
	}
	ids := make([]uuid.UUID, 0, len(lines))
	seen := map[uuid.UUID]bool{}
	for _, line := range lines {
		if line.Quantity.Sign() <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe quantity must be positive")
		}
		if seen[line.IngredientID] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate ingredient in recipe")
		}
		seen[line.IngredientID] = true
		ids = append(ids, line.IngredientID)
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindPizza(ctx, pizzaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "pizza not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pizza")
		}

		ingredients, err := repo.FindIngredientsByIDs(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ingredients")
		}
		if len(ingredients) != len(ids) {
			return pkgerrors.New(pkgerrors.CodeValidation, "recipe references unknown ingredients")
		}

		rows := make([]models.PizzaIngredient, 0, len(lines))
		for i, line := range lines {
			pos := int16(i + 1)
			rows = append(rows, models.PizzaIngredient{
				PizzaID:      pizzaID,
				IngredientID: line.IngredientID,
				Quantity:     line.Quantity,
				Position:     &pos,
			})
		}
		if err := repo.ReplaceRecipe(ctx, pizzaID, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace recipe")
		}

		row, err := s.pricing.WithTx(tx).FindByPizzaID(ctx, pizzaID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read recomputed pricing")
		}
		updates := map[string]any{
			"is_vegetarian": row.IsVegetarian,
			"is_vegan":      row.IsVegan,
		}
		if err := repo.UpdatePizza(ctx, pizzaID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh dietary flags")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPizza(ctx, pizzaID)
}

func (s *service) GetPizza(ctx context.Context, id uuid.UUID) (*PizzaDetail, error) {
	pizza, err := s.repo.FindPizza(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pizza not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pizza")
	}

	detail := &PizzaDetail{Pizza: *pizza}
	row, err := s.pricing.FindByPizzaID(ctx, id)
	switch {
	case err == nil:
		detail.Pricing = row
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no recipe yet, pizza has no price
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pizza pricing")
	}
	return detail, nil
}

func (s *service) ListPizzas(ctx context.Context, activeOnly bool) ([]models.Pizza, error) {
	pizzas, err := s.repo.ListPizzas(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pizzas")
	}
	return pizzas, nil
}

func (s *service) UpdatePizza(ctx context.Context, id uuid.UUID, input UpdatePizzaInput) (*models.Pizza, error) {
	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pizza name required")
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	pizza, err := s.repo.FindPizza(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pizza not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pizza")
	}
	if err := s.repo.UpdatePizza(ctx, id, updates); err != nil {
		if db.IsUniqueViolation(err, "pizzas_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "pizza name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update pizza")
	}
	pizza, err = s.repo.FindPizza(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload pizza")
	}
	return pizza, nil
}

func (s *service) CreateDrink(ctx context.Context, input CreateDrinkInput) (*models.Drink, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink name required")
	}
	if input.PriceEUR.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink price must not be negative")
	}
	drink := &models.Drink{
		Name:     input.Name,
		Category: input.Category,
		PriceEUR: input.PriceEUR,
		IsActive: true,
	}
	created, err := s.repo.CreateDrink(ctx, drink)
	if err != nil {
		if db.IsUniqueViolation(err, "drinks_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "drink name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create drink")
	}
	return created, nil
}

func (s *service) ListDrinks(ctx context.Context, activeOnly bool) ([]models.Drink, error) {
	drinks, err := s.repo.ListDrinks(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drinks")
	}
	return drinks, nil
}

func (s *service) CreateDessert(ctx context.Context, input CreateDessertInput) (*models.Dessert, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dessert name required")
	}
	if input.PriceEUR.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dessert price must not be negative")
	}
	dessert := &models.Dessert{
		Name:        input.Name,
		Description: input.Description,
		PriceEUR:    input.PriceEUR,
		IsVegan:     input.IsVegan,
		IsActive:    true,
	}
	for _, label := range input.Ingredients {
		if label == "" {
			continue
		}
		dessert.Ingredients = append(dessert.Ingredients, models.DessertIngredient{Ingredient: label})
	}
	created, err := s.repo.CreateDessert(ctx, dessert)
	if err != nil {
		if db.IsUniqueViolation(err, "desserts_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "dessert name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create dessert")
	}
	return created, nil
}

func (s *service) ListDesserts(ctx context.Context, activeOnly bool) ([]models.Dessert, error) {
	desserts, err := s.repo.ListDesserts(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list desserts")
	}
	return desserts, nil
}

// Menu assembles the customer-facing menu. Pizzas without a priced
// recipe are left off entirely.
func (s *service) Menu(ctx context.Context) (*Menu, error) {
	pizzas, err := s.repo.ListPizzas(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pizzas")
	}
	ids := make([]uuid.UUID, 0, len(pizzas))
	for _, p := range pizzas {
		ids = append(ids, p.ID)
	}
	priced, err := s.pricing.FindByPizzaIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pizza pricing")
	}

	menu := &Menu{
		Pizzas:   []MenuPizza{},
		Drinks:   []MenuDrink{},
		Desserts: []MenuDessert{},
	}
	for _, p := range pizzas {
		row, ok := priced[p.ID]
		if !ok {
			continue
		}
		menu.Pizzas = append(menu.Pizzas, MenuPizza{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			PriceEUR:     row.FinalPriceWithVAT,
			IsVegetarian: row.IsVegetarian,
			IsVegan:      row.IsVegan,
		})
	}

	drinks, err := s.repo.ListDrinks(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drinks")
	}
	for _, d := range drinks {
		menu.Drinks = append(menu.Drinks, MenuDrink{
			ID:       d.ID,
			Name:     d.Name,
			Category: d.Category,
			PriceEUR: d.PriceEUR,
		})
	}

	desserts, err := s.repo.ListDesserts(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list desserts")
	}
	for _, d := range desserts {
		menu.Desserts = append(menu.Desserts, MenuDessert{
			ID:       d.ID,
			Name:     d.Name,
			PriceEUR: d.PriceEUR,
			IsVegan:  d.IsVegan,
		})
	}
	return menu, nil
}
