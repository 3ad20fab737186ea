package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/internal/pricing"
	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type stubCatalogRepo struct {
	ingredients map[uuid.UUID]*models.Ingredient
	pizzas      []models.Pizza
	drinks      []models.Drink
	desserts    []models.Dessert
	recipeCount int64
	deleted     []uuid.UUID
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{ingredients: map[uuid.UUID]*models.Ingredient{}}
}

func (s *stubCatalogRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCatalogRepo) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if ingredient.ID == uuid.Nil {
		ingredient.ID = uuid.New()
	}
	s.ingredients[ingredient.ID] = ingredient
	return ingredient, nil
}

func (s *stubCatalogRepo) FindIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	ingredient, ok := s.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ingredient, nil
}

func (s *stubCatalogRepo) FindIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error) {
	var out []models.Ingredient
	for _, id := range ids {
		if ingredient, ok := s.ingredients[id]; ok {
			out = append(out, *ingredient)
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var out []models.Ingredient
	for _, ingredient := range s.ingredients {
		out = append(out, *ingredient)
	}
	return out, nil
}

func (s *stubCatalogRepo) UpdateIngredient(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubCatalogRepo) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.ingredients, id)
	return nil
}

func (s *stubCatalogRepo) CountRecipesUsingIngredient(ctx context.Context, ingredientID uuid.UUID) (int64, error) {
	return s.recipeCount, nil
}

func (s *stubCatalogRepo) CreatePizza(ctx context.Context, pizza *models.Pizza) (*models.Pizza, error) {
	if pizza.ID == uuid.Nil {
		pizza.ID = uuid.New()
	}
	s.pizzas = append(s.pizzas, *pizza)
	return pizza, nil
}

func (s *stubCatalogRepo) FindPizza(ctx context.Context, id uuid.UUID) (*models.Pizza, error) {
	for i := range s.pizzas {
		if s.pizzas[i].ID == id {
			return &s.pizzas[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) ListPizzas(ctx context.Context, activeOnly bool) ([]models.Pizza, error) {
	var out []models.Pizza
	for _, p := range s.pizzas {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubCatalogRepo) UpdatePizza(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubCatalogRepo) ReplaceRecipe(ctx context.Context, pizzaID uuid.UUID, lines []models.PizzaIngredient) error {
	return nil
}

func (s *stubCatalogRepo) CreateDrink(ctx context.Context, drink *models.Drink) (*models.Drink, error) {
	if drink.ID == uuid.Nil {
		drink.ID = uuid.New()
	}
	s.drinks = append(s.drinks, *drink)
	return drink, nil
}

func (s *stubCatalogRepo) FindDrink(ctx context.Context, id uuid.UUID) (*models.Drink, error) {
	panic("not implemented")
}

func (s *stubCatalogRepo) ListDrinks(ctx context.Context, activeOnly bool) ([]models.Drink, error) {
	return s.drinks, nil
}

func (s *stubCatalogRepo) UpdateDrink(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	panic("not implemented")
}

func (s *stubCatalogRepo) CreateDessert(ctx context.Context, dessert *models.Dessert) (*models.Dessert, error) {
	if dessert.ID == uuid.Nil {
		dessert.ID = uuid.New()
	}
	s.desserts = append(s.desserts, *dessert)
	return dessert, nil
}

func (s *stubCatalogRepo) FindDessert(ctx context.Context, id uuid.UUID) (*models.Dessert, error) {
	panic("not implemented")
}

func (s *stubCatalogRepo) ListDesserts(ctx context.Context, activeOnly bool) ([]models.Dessert, error) {
	return s.desserts, nil
}

func (s *stubCatalogRepo) UpdateDessert(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	panic("not implemented")
}

type stubPricingRepo struct {
	rows map[uuid.UUID]models.PizzaPricing
}

func (s *stubPricingRepo) WithTx(tx *gorm.DB) pricing.Repository { return s }

func (s *stubPricingRepo) FindByPizzaID(ctx context.Context, pizzaID uuid.UUID) (*models.PizzaPricing, error) {
	row, ok := s.rows[pizzaID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (s *stubPricingRepo) FindByPizzaIDs(ctx context.Context, pizzaIDs []uuid.UUID) (map[uuid.UUID]models.PizzaPricing, error) {
	out := map[uuid.UUID]models.PizzaPricing{}
	for _, id := range pizzaIDs {
		if row, ok := s.rows[id]; ok {
			out[id] = row
		}
	}
	return out, nil
}

func (s *stubPricingRepo) ListAll(ctx context.Context) ([]models.PizzaPricing, error) {
	var out []models.PizzaPricing
	for _, row := range s.rows {
		out = append(out, row)
	}
	return out, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func TestCreateIngredientRejectsVeganMeat(t *testing.T) {
	svc, _ := NewService(newStubCatalogRepo(), &stubPricingRepo{}, stubTxRunner{})

	_, err := svc.CreateIngredient(context.Background(), CreateIngredientInput{
		Name:     "mystery meat",
		IsMeat:   true,
		IsVegan:  true,
		UnitCost: dec("1.00"),
		UnitType: "portion",
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateIngredientRejectsNonPositiveUnitCost(t *testing.T) {
	svc, _ := NewService(newStubCatalogRepo(), &stubPricingRepo{}, stubTxRunner{})

	for _, cost := range []string{"0", "-0.50"} {
		_, err := svc.CreateIngredient(context.Background(), CreateIngredientInput{
			Name:     "flour",
			UnitCost: dec(cost),
			UnitType: "kg",
		})
		if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
			t.Fatalf("unit cost %s: expected validation error, got %v", cost, err)
		}
	}
}

func TestDeleteIngredientBlockedWhenInUse(t *testing.T) {
	repo := newStubCatalogRepo()
	ingredient := &models.Ingredient{ID: uuid.New(), Name: "mozzarella"}
	repo.ingredients[ingredient.ID] = ingredient
	repo.recipeCount = 2

	svc, _ := NewService(repo, &stubPricingRepo{}, stubTxRunner{})

	err := svc.DeleteIngredient(context.Background(), ingredient.ID)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("ingredient should not have been deleted")
	}
}

func TestDeleteIngredientSucceedsWhenUnused(t *testing.T) {
	repo := newStubCatalogRepo()
	ingredient := &models.Ingredient{ID: uuid.New(), Name: "truffle oil"}
	repo.ingredients[ingredient.ID] = ingredient

	svc, _ := NewService(repo, &stubPricingRepo{}, stubTxRunner{})

	if err := svc.DeleteIngredient(context.Background(), ingredient.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != ingredient.ID {
		t.Fatalf("expected ingredient delete to be recorded")
	}
}

func TestMenuSkipsPizzasWithoutRecipe(t *testing.T) {
	repo := newStubCatalogRepo()
	priced := uuid.New()
	unpriced := uuid.New()
	repo.pizzas = []models.Pizza{
		{ID: priced, Name: "Margherita", IsActive: true},
		{ID: unpriced, Name: "Mystery", IsActive: true},
		{ID: uuid.New(), Name: "Retired", IsActive: false},
	}
	repo.drinks = []models.Drink{{ID: uuid.New(), Name: "Cola", Category: "soda", PriceEUR: dec("2.50"), IsActive: true}}
	repo.desserts = []models.Dessert{{ID: uuid.New(), Name: "Tiramisu", PriceEUR: dec("4.50"), IsActive: true}}

	pricingRepo := &stubPricingRepo{rows: map[uuid.UUID]models.PizzaPricing{
		priced: {PizzaID: priced, Name: "Margherita", FinalPriceWithVAT: dec("5.80"), IsVegetarian: true},
	}}

	svc, _ := NewService(repo, pricingRepo, stubTxRunner{})

	menu, err := svc.Menu(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(menu.Pizzas) != 1 {
		t.Fatalf("expected 1 menu pizza, got %d", len(menu.Pizzas))
	}
	if !menu.Pizzas[0].PriceEUR.Equal(dec("5.80")) {
		t.Fatalf("unexpected menu price %s", menu.Pizzas[0].PriceEUR)
	}
	if len(menu.Drinks) != 1 || len(menu.Desserts) != 1 {
		t.Fatalf("expected drinks and desserts on the menu")
	}
}

func TestSetRecipeRejectsDuplicateIngredients(t *testing.T) {
	repo := newStubCatalogRepo()
	svc, _ := NewService(repo, &stubPricingRepo{}, stubTxRunner{})

	id := uuid.New()
	_, err := svc.SetRecipe(context.Background(), uuid.New(), []RecipeLineInput{
		{IngredientID: id, Quantity: dec("1")},
		{IngredientID: id, Quantity: dec("2")},
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
