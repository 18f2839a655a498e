package handler

import (
	"context"
	"net/http"
	"time"
)

// --- Handler: GET /admin/overview ---

func (handler *DashboardHTTPHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	// bound service call
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// collect the overview metrics
	overview, err := handler.svc.Overview(ctxWithTimeout)
	if err != nil {
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to build overview", err)
		return
	}

	// return the overview
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, overview)
}
