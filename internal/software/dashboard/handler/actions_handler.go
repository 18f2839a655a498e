package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"transit-admin/internal/domain/fare"
	"transit-admin/internal/software/dashboard/service"
)

// --- Handler: POST /admin/applications/{id}/approve ---

func (handler *DashboardHTTPHandler) handleApproveApplication(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	applicationID := r.PathValue("id")

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// approve on the platform, then audit and publish
	result, err := handler.svc.ApproveApplication(ctxWithTimeout, applicationID, operatorID(r))
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			handler.httpError(ctxWithTimeout, w, http.StatusNotFound, "application not found", err)
			return
		}
		handler.httpError(ctxWithTimeout, w, http.StatusBadGateway, "failed to approve application", err)
		return
	}

	// return the action result
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, result)
}

// --- Handler: POST /admin/subscriptions/{id}/payment ---

func (handler *DashboardHTTPHandler) handleAcceptPayment(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	subscriptionID := r.PathValue("id")

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// accept on the platform, then store the receipt, audit, and publish
	result, err := handler.svc.AcceptPayment(ctxWithTimeout, subscriptionID, operatorID(r))
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			handler.httpError(ctxWithTimeout, w, http.StatusNotFound, "subscription not found", err)
			return
		}
		handler.httpError(ctxWithTimeout, w, http.StatusBadGateway, "failed to accept payment", err)
		return
	}

	// return the action result
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, result)
}

// --- Handler: PUT /admin/fares/{id} ---

func (handler *DashboardHTTPHandler) handleUpdateFare(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	// require a JSON body
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		handler.httpError(ctx, w, http.StatusUnsupportedMediaType, "expected application/json", nil)
		return
	}

	// decode the fare update payload
	var update fare.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&update); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	fareID := r.PathValue("id")

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// update on the platform, then audit and publish
	result, err := handler.svc.UpdateFare(ctxWithTimeout, fareID, update, operatorID(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFareNotFound):
			handler.httpError(ctxWithTimeout, w, http.StatusNotFound, "fare not found", err)
		case errors.Is(err, service.ErrInvalidFareUpdate):
			handler.httpError(ctxWithTimeout, w, http.StatusBadRequest, "fare amounts must be non-negative", err)
		default:
			handler.httpError(ctxWithTimeout, w, http.StatusBadGateway, "failed to update fare", err)
		}
		return
	}

	// return the action result
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, result)
}
