package service

import (
	"context"
	"strings"

	"transit-admin/internal/domain/report"
	"transit-admin/internal/ports"
)

// ExportReport renders the full (unpaginated) report as a downloadable
// document. Unlike the on-screen endpoints a fetch failure here is a hard
// error: there is no partial document to hand back.
func (service *dashboardService) ExportReport(ctx context.Context, kind ports.ReportKind, format string) (ports.ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "pdf"
	}
	exporter, ok := service.exporters[format]
	if !ok {
		return ports.ExportResult{}, ErrUnknownExportFormat
	}

	var build func(context.Context) (string, []string, [][]string, error)
	switch kind {
	case ports.ReportBookings:
		build = service.bookingReportCells
	case ports.ReportViolations:
		build = service.violationReportCells
	case ports.ReportTopDrivers:
		build = service.topDriverCells
	case ports.ReportRevenue:
		build = service.revenueCells
	default:
		return ports.ExportResult{}, ports.ErrInvalidReport
	}

	title, columns, cells, err := build(ctx)
	if err != nil {
		return ports.ExportResult{}, err
	}

	// full set, numbered from the first row
	table := report.BuildTable(title, columns, cells, 0)

	data, err := exporter.Render(table.Title, table.Columns, table.Rows)
	if err != nil {
		return ports.ExportResult{}, err
	}

	fileName := kind.String() + "-report-" + service.now().Format("20060102") + "." + exporter.FileExtension()
	service.logger.Info(ctx, "report_exported", "Rendered report document",
		map[string]any{"report": kind.String(), "format": format, "rows": len(table.Rows), "bytes": len(data)})

	return ports.ExportResult{
		FileName:    fileName,
		ContentType: exporter.ContentType(),
		Data:        data,
	}, nil
}
