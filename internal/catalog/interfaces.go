package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
)

// Repository defines persistence operations for menu catalog tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error)
	FindIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	FindIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteIngredient(ctx context.Context, id uuid.UUID) error
	CountRecipesUsingIngredient(ctx context.Context, ingredientID uuid.UUID) (int64, error)

	CreatePizza(ctx context.Context, pizza *models.Pizza) (*models.Pizza, error)
	FindPizza(ctx context.Context, id uuid.UUID) (*models.Pizza, error)
	ListPizzas(ctx context.Context, activeOnly bool) ([]models.Pizza, error)
	UpdatePizza(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ReplaceRecipe(ctx context.Context, pizzaID uuid.UUID, lines []models.PizzaIngredient) error

	CreateDrink(ctx context.Context, drink *models.Drink) (*models.Drink, error)
	FindDrink(ctx context.Context, id uuid.UUID) (*models.Drink, error)
	ListDrinks(ctx context.Context, activeOnly bool) ([]models.Drink, error)
	UpdateDrink(ctx context.Context, id uuid.UUID, updates map[string]any) error

	CreateDessert(ctx context.Context, dessert *models.Dessert) (*models.Dessert, error)
	FindDessert(ctx context.Context, id uuid.UUID) (*models.Dessert, error)
	ListDesserts(ctx context.Context, activeOnly bool) ([]models.Dessert, error)
	UpdateDessert(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// Service exposes catalog management and menu reads.
type Service interface {
	CreateIngredient(ctx context.Context, input CreateIngredientInput) (*models.Ingredient, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) error

	CreatePizza(ctx context.Context, input CreatePizzaInput) (*models.Pizza, error)
	SetRecipe(ctx context.Context, pizzaID uuid.UUID, lines []RecipeLineInput) (*PizzaDetail, error)
	GetPizza(ctx context.Context, id uuid.UUID) (*PizzaDetail, error)
	ListPizzas(ctx context.Context, activeOnly bool) ([]models.Pizza, error)
	UpdatePizza(ctx context.Context, id uuid.UUID, input UpdatePizzaInput) (*models.Pizza, error)

	CreateDrink(ctx context.Context, input CreateDrinkInput) (*models.Drink, error)
	ListDrinks(ctx context.Context, activeOnly bool) ([]models.Drink, error)
	CreateDessert(ctx context.Context, input CreateDessertInput) (*models.Dessert, error)
	ListDesserts(ctx context.Context, activeOnly bool) ([]models.Dessert, error)

	Menu(ctx context.Context) (*Menu, error)
}
