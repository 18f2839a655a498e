package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"transit-admin/internal/ports"
)

// --- Handler: GET /admin/{collection}?page=X&page_size=Y&search=Z ---

// listing returns a handler for one listing screen.
func (handler *DashboardHTTPHandler) listing(kind ports.CollectionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// generate a context with request ID
		ctx := handler.reqCtx(r)

		// bound service call
		ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		// render one page of the listing
		result, err := handler.svc.ListCollection(ctxWithTimeout, kind, listQueryFrom(r))
		if err != nil {
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to list "+kind.String(), err)
			return
		}

		// return the listing page
		handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, result)
	}
}

// listQueryFrom parses the shared page/page_size/search query parameters.
// Bad numbers fall back to defaults rather than erroring.
func listQueryFrom(r *http.Request) ports.ListQuery {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(query.Get("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	return ports.ListQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   query.Get("search"),
	}
}
