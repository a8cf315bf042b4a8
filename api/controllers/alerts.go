package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andresrodas/puntoventa-backend/api/responses"
	"github.com/andresrodas/puntoventa-backend/api/validators"
	"github.com/andresrodas/puntoventa-backend/internal/alerts"
	pkgerrors "github.com/andresrodas/puntoventa-backend/pkg/errors"
	"github.com/andresrodas/puntoventa-backend/pkg/logger"
)

// ListAlerts returns inventory alerts, optionally filtered by state.
func ListAlerts(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alerts service unavailable"))
			return
		}

		filter, err := validators.ParseAlertFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ResolveAlert closes one alert; repeat calls are no-op successes.
func ResolveAlert(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alerts service unavailable"))
			return
		}

		alertID, err := validators.ParsePathUUID(chi.URLParam(r, "alertId"), "alertId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Resolve(r.Context(), alertID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "resolved"})
	}
}
