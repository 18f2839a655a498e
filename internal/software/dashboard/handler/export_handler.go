package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"transit-admin/internal/ports"
	"transit-admin/internal/software/dashboard/service"
)

// --- Handler: GET /admin/reports/{kind}/export?format=pdf|csv ---

func (handler *DashboardHTTPHandler) handleExportReport(w http.ResponseWriter, r *http.Request) {
	// generate a context with request ID
	ctx := handler.reqCtx(r)

	// validate the report kind
	kind, err := ports.ParseReportKind(r.PathValue("kind"))
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "unknown report", err)
		return
	}

	// rendering walks the full record set, so the bound is generous
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	// render the full report as a document
	result, err := handler.svc.ExportReport(ctxWithTimeout, kind, r.URL.Query().Get("format"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownExportFormat) {
			handler.httpError(ctxWithTimeout, w, http.StatusBadRequest, "unknown export format", err)
			return
		}
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to export report", err)
		return
	}

	// stream the document as an attachment
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}
