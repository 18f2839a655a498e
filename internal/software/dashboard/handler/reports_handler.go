package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"transit-admin/internal/domain/report"
	"transit-admin/internal/software/dashboard/service"
)

// --- Handler: GET /admin/reports/bookings?page=X&page_size=Y&search=Z ---

func (handler *DashboardHTTPHandler) handleBookingReport(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	// address resolution can dominate here, so the bound is generous
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// aggregate bookings per passenger and route
	result, err := handler.svc.BookingReport(ctxWithTimeout, listQueryFrom(r))
	if err != nil {
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to build booking report", err)
		return
	}

	// return the report page
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, result)
}

// --- Handler: GET /admin/reports/violations?page=X&page_size=Y&search=Z ---

func (handler *DashboardHTTPHandler) handleViolationReport(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// aggregate violations per driver
	result, err := handler.svc.ViolationReport(ctxWithTimeout, listQueryFrom(r))
	if err != nil {
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to build violation report", err)
		return
	}

	// return the report page
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, result)
}

/// --- Handler: GET /admin/reports/top-drivers?n=X ---

func (handler *DashboardHTTPHandler) handleTopDrivers(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	// parse the ranking size with a fallback default
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil || n < 1 {
		n = 0 // service applies its default
	}

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// rank drivers by summed rating score
	result, err := handler.svc.TopDrivers(ctxWithTimeout, n)
	if err != nil {
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to rank top drivers", err)
		return
	}

	// return the ranking
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, result)
}

// --- Handler: GET /admin/reports/revenue?granularity=X&from=Y&to=Z ---

func (handler *DashboardHTTPHandler) handleRevenueSeries(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	// get the query parameters
	query := r.URL.Query()
	granularity := query.Get("granularity")
	from := query.Get("from")
	to := query.Get("to")

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// bucket subscription payments into a series
	result, err := handler.svc.RevenueSeries(ctxWithTimeout, granularity, from, to)
	if err != nil {
		if errors.Is(err, report.ErrInvalidGranularity) || errors.Is(err, service.ErrInvalidWindow) {
			handler.httpError(ctxWithTimeout, w, http.StatusBadRequest, err.Error(), err)
			return
		}
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to build revenue series", err)
		return
	}

	// return the series
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, result)
}
