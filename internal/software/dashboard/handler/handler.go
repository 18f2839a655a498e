package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"transit-admin/internal/domain/user"
	"transit-admin/internal/general/jwt"
	"transit-admin/internal/general/logger"
	"transit-admin/internal/general/websocket"
	"transit-admin/internal/ports"
)

// DashboardHTTPHandler adapts HTTP requests to the DashboardService.
type DashboardHTTPHandler struct {
	svc    ports.DashboardService
	logger *logger.Logger
	auth   *jwt.Manager
	live   *websocket.LiveFeed
}

// NewDashboardHTTPHandler wires an HTTP handler around the DashboardService.
func NewDashboardHTTPHandler(svc ports.DashboardService, logger *logger.Logger, auth *jwt.Manager, live *websocket.LiveFeed) *DashboardHTTPHandler {
	return &DashboardHTTPHandler{svc: svc, logger: logger, auth: auth, live: live}
}

// RegisterRoutes mounts dashboard endpoints on the provided mux. Read
// endpoints admit both roles; mutating actions are admin-only.
func (handler *DashboardHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	read := jwt.AuthMiddlewareFunc(handler.auth, user.RoleAdmin, user.RoleOperator)
	mutate := jwt.AuthMiddlewareFunc(handler.auth, user.RoleAdmin)

	mux.HandleFunc("GET /admin/overview", read(handler.handleOverview))

	mux.HandleFunc("GET /admin/commuters", read(handler.listing(ports.CollectionCommuters)))
	mux.HandleFunc("GET /admin/drivers", read(handler.listing(ports.CollectionDrivers)))
	mux.HandleFunc("GET /admin/applications", read(handler.listing(ports.CollectionApplications)))
	mux.HandleFunc("GET /admin/subscriptions", read(handler.listing(ports.CollectionSubscriptions)))
	mux.HandleFunc("GET /admin/violations", read(handler.listing(ports.CollectionViolations)))
	mux.HandleFunc("GET /admin/ratings", read(handler.listing(ports.CollectionRatings)))
	mux.HandleFunc("GET /admin/fares", read(handler.listing(ports.CollectionFares)))
	mux.HandleFunc("GET /admin/cancellations", read(handler.listing(ports.CollectionCancellations)))

	mux.HandleFunc("GET /admin/drivers/{id}", read(handler.handleDriverProfile))

	mux.HandleFunc("GET /admin/reports/bookings", read(handler.handleBookingReport))
	mux.HandleFunc("GET /admin/reports/violations", read(handler.handleViolationReport))
	mux.HandleFunc("GET /admin/reports/top-drivers", read(handler.handleTopDrivers))
	mux.HandleFunc("GET /admin/reports/revenue", read(handler.handleRevenueSeries))
	mux.HandleFunc("GET /admin/reports/{kind}/export", read(handler.handleExportReport))

	mux.HandleFunc("POST /admin/applications/{id}/approve", mutate(handler.handleApproveApplication))
	mux.HandleFunc("POST /admin/subscriptions/{id}/payment", mutate(handler.handleAcceptPayment))
	mux.HandleFunc("PUT /admin/fares/{id}", mutate(handler.handleUpdateFare))

	mux.HandleFunc("GET /admin/live", read(handler.handleLive))
	mux.HandleFunc("GET /admin/health", handler.handleHealth)
}

// ----- general helpers -----

// jsonResponse takes any type of data and encode it to HTTP response.
func (handler *DashboardHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	// encode to buffer first so we can control status on failure
	var buf []byte
	var err error

	if data != nil {
		buf, err = json.Marshal(data)
		if err != nil {
			handler.logger.Error(ctx, "response_encode_failed", "Failed to encode response", err, nil)
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
			return
		}
	} else {
		buf = []byte("{}")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

// httpError sends a JSON error response with a message.
func (handler *DashboardHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
	action := "request_failed"
	if status >= 500 {
		action = "http_internal_error"
	} else if status == http.StatusBadRequest {
		action = "validation_failed"
	} else if status == http.StatusNotFound {
		action = "not_found"
	}
	handler.logger.Error(ctx, action, msg, err, nil)

	type errBody struct {
		Error string `json:"error"`
	}
	handler.jsonResponse(ctx, w, status, errBody{Error: msg})
}

// reqCtx extracts or generates a request ID and tags the context with it
// and with the authenticated operator, when present.
func (handler *DashboardHTTPHandler) reqCtx(r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = randID()
	}
	ctx := handler.logger.WithRequestID(r.Context(), reqID)

	if claims := jwt.RequireClaims(r); claims != nil {
		ctx = handler.logger.WithOperatorID(ctx, claims.Subject)
	}
	return ctx
}

// operatorID returns the authenticated operator's ID, or "" when absent.
func operatorID(r *http.Request) string {
	if claims := jwt.RequireClaims(r); claims != nil {
		return claims.Subject
	}
	return ""
}

// randID generates a random 24-char hex string suitable for request IDs.
func randID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
