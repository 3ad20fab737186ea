package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (r *repository) FindIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *repository) FindIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *repository) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *repository) UpdateIngredient(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Ingredient{}).Error
}

func (r *repository) CountRecipesUsingIngredient(ctx context.Context, ingredientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PizzaIngredient{}).
		Where("ingredient_id = ?", ingredientID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CreatePizza(ctx context.Context, pizza *models.Pizza) (*models.Pizza, error) {
	if err := r.db.WithContext(ctx).Create(pizza).Error; err != nil {
		return nil, err
	}
	return pizza, nil
}

func (r *repository) FindPizza(ctx context.Context, id uuid.UUID) (*models.Pizza, error) {
	var pizza models.Pizza
	err := r.db.WithContext(ctx).
		Preload("Recipe.Ingredient").
		Where("id = ?", id).
		First(&pizza).Error
	if err != nil {
		return nil, err
	}
	return &pizza, nil
}

func (r *repository) ListPizzas(ctx context.Context, activeOnly bool) ([]models.Pizza, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var pizzas []models.Pizza
	if err := q.Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (r *repository) UpdatePizza(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Pizza{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ReplaceRecipe(ctx context.Context, pizzaID uuid.UUID, lines []models.PizzaIngredient) error {
	err := r.db.WithContext(ctx).
		Where("pizza_id = ?", pizzaID).
		Delete(&models.PizzaIngredient{}).Error
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) CreateDrink(ctx context.Context, drink *models.Drink) (*models.Drink, error) {
	if err := r.db.WithContext(ctx).Create(drink).Error; err != nil {
		return nil, err
	}
	return drink, nil
}

func (r *repository) FindDrink(ctx context.Context, id uuid.UUID) (*models.Drink, error) {
	var drink models.Drink
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&drink).Error
	if err != nil {
		return nil, err
	}
	return &drink, nil
}

func (r *repository) ListDrinks(ctx context.Context, activeOnly bool) ([]models.Drink, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var drinks []models.Drink
	if err := q.Find(&drinks).Error; err != nil {
		return nil, err
	}
	return drinks, nil
}

func (r *repository) UpdateDrink(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Drink{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) CreateDessert(ctx context.Context, dessert *models.Dessert) (*models.Dessert, error) {
	if err := r.db.WithContext(ctx).Create(dessert).Error; err != nil {
		return nil, err
	}
	return dessert, nil
}

func (r *repository) FindDessert(ctx context.Context, id uuid.UUID) (*models.Dessert, error) {
	var dessert models.Dessert
	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("id = ?", id).
		First(&dessert).Error
	if err != nil {
		return nil, err
	}
	return &dessert, nil
}

func (r *repository) ListDesserts(ctx context.Context, activeOnly bool) ([]models.Dessert, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var desserts []models.Dessert
	if err := q.Find(&desserts).Error; err != nil {
		return nil, err
	}
	return desserts, nil
}

func (r *repository) UpdateDessert(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Dessert{}).
		Where("id = ?", id).
		Updates(updates).Error
}
