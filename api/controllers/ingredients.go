package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/api/responses"
	"github.com/mammamia/pizzeria-backend/api/validators"
	"github.com/mammamia/pizzeria-backend/internal/catalog"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
)

type createIngredientRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=120"`
	IsMeat   bool            `json:"is_meat"`
	IsDairy  bool            `json:"is_dairy"`
	IsVegan  bool            `json:"is_vegan"`
	UnitCost decimal.Decimal `json:"unit_cost" validate:"required"`
	UnitType string          `json:"unit_type" validate:"required,oneof=grams milliliters pieces"`
}

type updateIngredientRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=120"`
	IsMeat   *bool            `json:"is_meat"`
	IsDairy  *bool            `json:"is_dairy"`
	IsVegan  *bool            `json:"is_vegan"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	UnitType *string          `json:"unit_type" validate:"omitempty,oneof=grams milliliters pieces"`
}

func CreateIngredient(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createIngredientRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ingredient, err := svc.CreateIngredient(r.Context(), catalog.CreateIngredientInput{
			Name:     req.Name,
			IsMeat:   req.IsMeat,
			IsDairy:  req.IsDairy,
			IsVegan:  req.IsVegan,
			UnitCost: req.UnitCost,
			UnitType: req.UnitType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ingredient)
	}
}

func ListIngredients(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredients, err := svc.ListIngredients(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"ingredients": ingredients})
	}
}

func UpdateIngredient(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "ingredientId"), "ingredientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateIngredientRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ingredient, err := svc.UpdateIngredient(r.Context(), id, catalog.UpdateIngredientInput{
			Name:     req.Name,
			IsMeat:   req.IsMeat,
			IsDairy:  req.IsDairy,
			IsVegan:  req.IsVegan,
			UnitCost: req.UnitCost,
			UnitType: req.UnitType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ingredient)
	}
}

// DeleteIngredient refuses to remove ingredients that are still part of
// a recipe; the service answers with a conflict in that case.
func DeleteIngredient(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "ingredientId"), "ingredientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteIngredient(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
