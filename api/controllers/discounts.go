package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mammamia/pizzeria-backend/api/responses"
	"github.com/mammamia/pizzeria-backend/api/validators"
	"github.com/mammamia/pizzeria-backend/internal/discounts"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
)

type createDiscountCodeRequest struct {
	Code           string           `json:"code" validate:"required,min=3,max=40"`
	Description    string           `json:"description" validate:"max=500"`
	DiscountType   string           `json:"discount_type" validate:"required,oneof=percentage fixed_amount"`
	Percent        *decimal.Decimal `json:"percent"`
	AmountEUR      *decimal.Decimal `json:"amount_eur"`
	ValidFrom      string           `json:"valid_from" validate:"required"`
	ValidUntil     string           `json:"valid_until"`
	IsOneTime      bool             `json:"is_one_time"`
	MaxRedemptions *int             `json:"max_redemptions" validate:"omitempty,gt=0"`
}

// parseCodeWindow accepts an empty valid_until, which leaves the code
// open ended.
func parseCodeWindow(from, until string) (time.Time, *time.Time, error) {
	validFrom, err := time.Parse(time.RFC3339, strings.TrimSpace(from))
	if err != nil {
		return time.Time{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_from must be RFC 3339")
	}
	until = strings.TrimSpace(until)
	if until == "" {
		return validFrom, nil, nil
	}
	validUntil, err := time.Parse(time.RFC3339, until)
	if err != nil {
		return time.Time{}, nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_until must be RFC 3339")
	}
	return validFrom, &validUntil, nil
}

func CreateDiscountCode(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDiscountCodeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		validFrom, validUntil, err := parseCodeWindow(req.ValidFrom, req.ValidUntil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code, err := svc.CreateCode(r.Context(), discounts.CreateCodeInput{
			Code:           req.Code,
			Description:    req.Description,
			DiscountType:   enums.DiscountType(req.DiscountType),
			Percent:        req.Percent,
			AmountEUR:      req.AmountEUR,
			ValidFrom:      validFrom,
			ValidUntil:     validUntil,
			IsOneTime:      req.IsOneTime,
			MaxRedemptions: req.MaxRedemptions,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, code)
	}
}

func ListDiscountCodes(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := svc.ListCodes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"discount_codes": codes})
	}
}

func DeactivateDiscountCode(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "codeId"), "codeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeactivateCode(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
