package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mammamia/pizzeria-backend/api/responses"
	"github.com/mammamia/pizzeria-backend/api/validators"
	"github.com/mammamia/pizzeria-backend/internal/delivery"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
)

type zoneRequest struct {
	PostalAreaID uuid.UUID `json:"postal_area_id" validate:"required"`
	Priority     int       `json:"priority" validate:"min=1,max=100"`
}

type createCourierRequest struct {
	FirstName    string        `json:"first_name" validate:"required,min=1,max=120"`
	LastName     string        `json:"last_name" validate:"required,min=1,max=120"`
	Phone        string        `json:"phone" validate:"required,max=40"`
	PostalAreaID uuid.UUID     `json:"postal_area_id" validate:"required"`
	Zones        []zoneRequest `json:"zones" validate:"dive"`
}

type setZonesRequest struct {
	Zones []zoneRequest `json:"zones" validate:"required,min=1,dive"`
}

func CreateCourier(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCourierRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		zones := make([]delivery.ZoneInput, 0, len(req.Zones))
		for _, zone := range req.Zones {
			zones = append(zones, delivery.ZoneInput{
				PostalAreaID: zone.PostalAreaID,
				Priority:     zone.Priority,
			})
		}

		courier, err := svc.CreateCourier(r.Context(), delivery.CreateCourierInput{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Phone:        req.Phone,
			PostalAreaID: req.PostalAreaID,
			Zones:        zones,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, courier)
	}
}

func GetCourier(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "courierId"), "courierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		courier, err := svc.GetCourier(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, courier)
	}
}

func ListCouriers(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		couriers, err := svc.ListCouriers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"couriers": couriers})
	}
}

// SetCourierZones replaces the courier's zone assignments wholesale.
func SetCourierZones(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "courierId"), "courierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setZonesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		zones := make([]delivery.ZoneInput, 0, len(req.Zones))
		for _, zone := range req.Zones {
			zones = append(zones, delivery.ZoneInput{
				PostalAreaID: zone.PostalAreaID,
				Priority:     zone.Priority,
			})
		}

		courier, err := svc.SetZones(r.Context(), id, zones)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, courier)
	}
}
