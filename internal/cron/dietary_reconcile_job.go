package cron

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
)

type pricingViewReader interface {
	ListAll(ctx context.Context) ([]models.PizzaPricing, error)
}

type pizzaFlagUpdater interface {
	ListPizzas(ctx context.Context, activeOnly bool) ([]models.Pizza, error)
	UpdatePizza(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// DietaryReconcileJobParams configure the dietary flag sync job.
type DietaryReconcileJobParams struct {
	Logger  *logger.Logger
	Pricing pricingViewReader
	Pizzas  pizzaFlagUpdater
}

// NewDietaryReconcileJob builds the job that re-derives the stored
// vegetarian and vegan flags on pizzas from their current recipes.
// Recipe edits go through the catalog service which refreshes the
// flags inline; this job catches drift from direct SQL changes to
// ingredients.
func NewDietaryReconcileJob(params DietaryReconcileJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Pricing == nil {
		return nil, fmt.Errorf("pricing reader required")
	}
	if params.Pizzas == nil {
		return nil, fmt.Errorf("pizza updater required")
	}
	return &dietaryReconcileJob{
		logg:    params.Logger,
		pricing: params.Pricing,
		pizzas:  params.Pizzas,
	}, nil
}

type dietaryReconcileJob struct {
	logg    *logger.Logger
	pricing pricingViewReader
	pizzas  pizzaFlagUpdater
}

func (j *dietaryReconcileJob) Name() string { return "dietary-reconcile" }

func (j *dietaryReconcileJob) Run(ctx context.Context) error {
	rows, err := j.pricing.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load pricing view: %w", err)
	}
	derived := make(map[uuid.UUID]models.PizzaPricing, len(rows))
	for _, row := range rows {
		derived[row.PizzaID] = row
	}

	pizzas, err := j.pizzas.ListPizzas(ctx, false)
	if err != nil {
		return fmt.Errorf("load pizzas: %w", err)
	}

	var errs []error
	updated := 0
	for _, pizza := range pizzas {
		row, ok := derived[pizza.ID]
		if !ok {
			// no recipe yet, nothing to derive
			continue
		}
		if pizza.IsVegetarian == row.IsVegetarian && pizza.IsVegan == row.IsVegan {
			continue
		}
		updates := map[string]any{
			"is_vegetarian": row.IsVegetarian,
			"is_vegan":      row.IsVegan,
		}
		if err := j.pizzas.UpdatePizza(ctx, pizza.ID, updates); err != nil {
			errs = append(errs, fmt.Errorf("update pizza %s: %w", pizza.ID, err))
			continue
		}
		updated++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"pizzas":  len(pizzas),
		"updated": updated,
	})
	j.logg.Info(logCtx, "dietary flag reconcile complete")
	return multierr.Combine(errs...)
}
