package service

import (
	"errors"
	"time"

	"transit-admin/internal/general/logger"
	"transit-admin/internal/ports"
)

// fetchErrMsg is the inline error message listing/report screens carry when
// a platform fetch fails. The screen still renders, with an empty table.
const fetchErrMsg = "Error fetching data"

var (
	ErrDriverNotFound       = errors.New("driver not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrFareNotFound         = errors.New("fare not found")
	ErrInvalidFareUpdate    = errors.New("fare amounts must be non-negative")
	ErrUnknownExportFormat  = errors.New("unknown export format")
)

type dashboardService struct {
	gateway   ports.PlatformGateway
	resolver  ports.AddressResolver
	exporters map[string]ports.DocumentExporter

	uow         ports.UnitOfWork
	auditRepo   ports.AuditRepository
	receiptRepo ports.ReceiptRepository
	publisher   ports.EventPublisher

	logger *logger.Logger

	now func() time.Time
}

// NewDashboardService wires the platform gateway, address resolver, local
// persistence, broker publisher, and document exporters into the dashboard
// service implementation.
func NewDashboardService(
	gateway ports.PlatformGateway,
	resolver ports.AddressResolver,
	exporters map[string]ports.DocumentExporter,
	uow ports.UnitOfWork,
	auditRepo ports.AuditRepository,
	receiptRepo ports.ReceiptRepository,
	publisher ports.EventPublisher,
	logger *logger.Logger,
) ports.DashboardService {
	return &dashboardService{
		gateway:     gateway,
		resolver:    resolver,
		exporters:   exporters,
		uow:         uow,
		auditRepo:   auditRepo,
		receiptRepo: receiptRepo,
		publisher:   publisher,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}
