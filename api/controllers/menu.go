package controllers

import (
	"net/http"

	"github.com/mammamia/pizzeria-backend/api/responses"
	"github.com/mammamia/pizzeria-backend/internal/catalog"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
)

// Menu returns the customer-facing menu: priced pizzas plus active
// drinks and desserts.
func Menu(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		menu, err := svc.Menu(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menu)
	}
}
