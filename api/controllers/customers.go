package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mammamia/pizzeria-backend/api/responses"
	"github.com/mammamia/pizzeria-backend/api/validators"
	"github.com/mammamia/pizzeria-backend/internal/customers"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
	"github.com/mammamia/pizzeria-backend/pkg/pagination"
)

type registerCustomerRequest struct {
	FirstName  string `json:"first_name" validate:"required,min=1,max=120"`
	LastName   string `json:"last_name" validate:"required,min=1,max=120"`
	Birthdate  string `json:"birthdate" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"max=40"`
	Street     string `json:"street" validate:"required,min=1,max=200"`
	PostalCode string `json:"postal_code" validate:"required,min=1,max=20"`
	Gender     string `json:"gender" validate:"max=40"`
}

type updateCustomerRequest struct {
	FirstName  *string `json:"first_name" validate:"omitempty,min=1,max=120"`
	LastName   *string `json:"last_name" validate:"omitempty,min=1,max=120"`
	Phone      *string `json:"phone" validate:"omitempty,max=40"`
	Street     *string `json:"street" validate:"omitempty,min=1,max=200"`
	PostalCode *string `json:"postal_code" validate:"omitempty,min=1,max=20"`
}

type createPostalAreaRequest struct {
	PostalCode string `json:"postal_code" validate:"required,min=1,max=20"`
	City       string `json:"city" validate:"required,min=1,max=120"`
	Country    string `json:"country" validate:"required,min=2,max=2"`
}

func parseBirthdate(raw string) (time.Time, error) {
	birthdate, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "birthdate must be formatted YYYY-MM-DD")
	}
	return birthdate, nil
}

func RegisterCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerCustomerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		birthdate, err := parseBirthdate(req.Birthdate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Register(r.Context(), customers.RegisterInput{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Birthdate:  birthdate,
			Email:      req.Email,
			Phone:      req.Phone,
			Street:     req.Street,
			PostalCode: req.PostalCode,
			Gender:     req.Gender,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

func GetCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "customerId"), "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

func ListCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		list, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func UpdateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "customerId"), "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateCustomerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Update(r.Context(), id, customers.UpdateInput{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Phone:      req.Phone,
			Street:     req.Street,
			PostalCode: req.PostalCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// CustomerLoyalty returns the live loyalty counters for a customer.
func CustomerLoyalty(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "customerId"), "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		loyalty, err := svc.Loyalty(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loyalty)
	}
}

func CreatePostalArea(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPostalAreaRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		area, err := svc.CreatePostalArea(r.Context(), customers.PostalAreaInput{
			PostalCode: req.PostalCode,
			City:       req.City,
			Country:    req.Country,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, area)
	}
}

func ListPostalAreas(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		areas, err := svc.ListPostalAreas(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"postal_areas": areas})
	}
}
