package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"transit-admin/internal/software/dashboard/service"
)

// --- Handler: GET /admin/drivers/{id} ---

func (handler *DashboardHTTPHandler) handleDriverProfile(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	driverID := r.PathValue("id")

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// join the driver with ratings, violations, and subscription
	profile, err := handler.svc.DriverProfile(ctxWithTimeout, driverID)
	if err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			handler.httpError(ctxWithTimeout, w, http.StatusNotFound, "driver not found", err)
			return
		}
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to fetch driver profile", err)
		return
	}

	// return the driver profile
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, profile)
}
