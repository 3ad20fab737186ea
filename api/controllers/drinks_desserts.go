package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/api/responses"
	"github.com/mammamia/pizzeria-backend/api/validators"
	"github.com/mammamia/pizzeria-backend/internal/catalog"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
)

type createDrinkRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=120"`
	Category string          `json:"category" validate:"required,min=1,max=60"`
	PriceEUR decimal.Decimal `json:"price_eur" validate:"required"`
}

type createDessertRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=120"`
	Description string          `json:"description" validate:"max=1000"`
	PriceEUR    decimal.Decimal `json:"price_eur" validate:"required"`
	IsVegan     bool            `json:"is_vegan"`
	Ingredients []string        `json:"ingredients" validate:"dive,min=1"`
}

func CreateDrink(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDrinkRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drink, err := svc.CreateDrink(r.Context(), catalog.CreateDrinkInput{
			Name:     req.Name,
			Category: req.Category,
			PriceEUR: req.PriceEUR,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, drink)
	}
}

func ListDrinks(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"
		drinks, err := svc.ListDrinks(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"drinks": drinks})
	}
}

func CreateDessert(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDessertRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dessert, err := svc.CreateDessert(r.Context(), catalog.CreateDessertInput{
			Name:        req.Name,
			Description: req.Description,
			PriceEUR:    req.PriceEUR,
			IsVegan:     req.IsVegan,
			Ingredients: req.Ingredients,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dessert)
	}
}

func ListDesserts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"
		desserts, err := svc.ListDesserts(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"desserts": desserts})
	}
}
