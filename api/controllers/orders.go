package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mammamia/pizzeria-backend/api/responses"
	"github.com/mammamia/pizzeria-backend/api/validators"
	"github.com/mammamia/pizzeria-backend/internal/orders"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
	"github.com/mammamia/pizzeria-backend/pkg/pagination"
)

type orderItemRequest struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

type placeOrderRequest struct {
	CustomerID   uuid.UUID          `json:"customer_id" validate:"required"`
	Pizzas       []orderItemRequest `json:"pizzas" validate:"required,min=1,dive"`
	Drinks       []orderItemRequest `json:"drinks" validate:"dive"`
	Desserts     []orderItemRequest `json:"desserts" validate:"dive"`
	DiscountCode string             `json:"discount_code" validate:"max=40"`
	DeliveryType string             `json:"delivery_type" validate:"required,oneof=pickup delivery"`
	Notes        string             `json:"notes" validate:"max=1000"`
}

type advanceOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=preparing out_for_delivery delivered cancelled"`
}

func itemSpecs(items []orderItemRequest) []orders.ItemSpec {
	specs := make([]orders.ItemSpec, 0, len(items))
	for _, item := range items {
		specs = append(specs, orders.ItemSpec{ID: item.ID, Quantity: item.Quantity})
	}
	return specs
}

// PlaceOrder runs the full placement pipeline: pricing, discounts,
// loyalty and courier assignment in one transaction.
func PlaceOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var req placeOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Place(r.Context(), orders.PlaceOrderInput{
			CustomerID:   req.CustomerID,
			Pizzas:       itemSpecs(req.Pizzas),
			Drinks:       itemSpecs(req.Drinks),
			Desserts:     itemSpecs(req.Desserts),
			DiscountCode: req.DiscountCode,
			DeliveryType: enums.DeliveryType(req.DeliveryType),
			Notes:        req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		var filters orders.Filters
		customerID, err := validators.ParseQueryUUID(r, "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.CustomerID = customerID

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.OrderStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").WithDetails(map[string]any{"field": "status"}))
				return
			}
			filters.Status = &status
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdvanceOrder moves an order along the lifecycle state machine.
func AdvanceOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req advanceOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Advance(r.Context(), id, enums.OrderStatus(req.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func CancelOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Cancel(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
