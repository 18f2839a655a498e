package dashboardservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"transit-admin/internal/general/config"
	"transit-admin/internal/general/contracts"
	"transit-admin/internal/general/export"
	"transit-admin/internal/general/geocode"
	"transit-admin/internal/general/jwt"
	"transit-admin/internal/general/logger"
	"transit-admin/internal/general/platform"
	"transit-admin/internal/general/postgres"
	"transit-admin/internal/general/rabbitmq"
	"transit-admin/internal/general/websocket"
	"transit-admin/internal/ports"
	"transit-admin/internal/software/dashboard/handler"
	"transit-admin/internal/software/dashboard/service"
)

// Run wires the dashboard service and blocks until ctx is cancelled.
func Run(ctx context.Context, maxConcurrent int) error {
	// local .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	// set up a new logger for the dashboard service with a static request ID for startup logs
	logger := logger.New("dashboard-service")
	ctx = logger.WithRequestID(ctx, "startup-001")

	// load a config from file
	cfg, err := config.LoadFromFile("config/config.yaml")
	if err != nil {
		logger.Error(ctx, "config_load_failed", "Failed to load configuration", err, nil)
		return err
	}

	// set up a Postgres connection pool
	pool, err := postgres.NewPool(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "db_connection_failed", "Failed to initialize Postgres pool", err, nil)
		return err
	}
	defer pool.Close()

	// set up the RabbitMQ client (topology declared on connect)
	mq, err := rabbitmq.ConnectRabbitMQ(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "mq_connection_failed", "Failed to connect to RabbitMQ", err, nil)
		return err
	}
	defer mq.Close()

	// set up the JWT manager
	jwtManager := jwt.NewManager(cfg.JWT.SecretKey, 2*time.Hour)

	// set up the local persistence layer
	uow := postgres.NewUnitOfWork(pool)
	auditRepo := postgres.NewAuditRepo()
	receiptRepo := postgres.NewReceiptRepo()

	// set up the outbound collaborators
	gateway := platform.NewClient(cfg, logger)
	resolver := geocode.NewResolver(cfg, logger)
	publisher := rabbitmq.NewMQPublisher(mq)
	exporters := map[string]ports.DocumentExporter{
		"pdf": export.NewPDFExporter(),
		"csv": export.NewCSVExporter(),
	}

	// set up the service
	svc := service.NewDashboardService(gateway, resolver, exporters, uow, auditRepo, receiptRepo, publisher, logger)

	// set up the live feed: periodic pushes plus broker-triggered refreshes
	live := websocket.NewLiveFeed(logger)
	go live.Run(ctx, time.Duration(cfg.Dashboard.LiveRefreshSeconds)*time.Second,
		func(snapCtx context.Context) (any, error) {
			return svc.Overview(snapCtx)
		})

	// consume platform activity to trigger immediate live refreshes
	go func() {
		for {
			err := mq.Consume(ctx, contracts.QueuePlatformActivity, "dashboard-live", 8,
				func(_ context.Context, d amqp.Delivery) error {
					live.Trigger()
					return nil
				})
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				logger.Error(ctx, "activity_consume_failed", "Platform activity consumer stopped, retrying", err, nil)
			}
			// back off before re-subscribing; the client reconnects underneath
			select {
			case <-ctx.Done():
				return
			case <-time.After(3 * time.Second):
			}
		}
	}()

	// set up the HTTP handler and its routes
	mux := http.NewServeMux()
	httpHandler := handler.NewDashboardHTTPHandler(svc, logger, jwtManager, live)
	httpHandler.RegisterRoutes(mux)

	// concurrency limiter (global) — blocks when capacity is full
	limitedHandler := withConcurrencyLimit(maxConcurrent, mux)

	// log service start
	logger.Info(ctx, "service_started",
		fmt.Sprintf("Dashboard service started on port %d", cfg.Dashboard.Port),
		map[string]any{"port": cfg.Dashboard.Port, "max_concurrent": maxConcurrent},
	)

	// set up the server configurations
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Dashboard.Port),            // listen on the specified port
		Handler:           limitedHandler,                                    // apply the concurrency limiter to the HTTP handler
		ReadHeaderTimeout: 5 * time.Second,                                   // time to read headers
		ReadTimeout:       10 * time.Second,                                  // time to read full request body
		WriteTimeout:      60 * time.Second,                                  // generous: document exports stream full reports
		IdleTimeout:       60 * time.Second,                                  // keep-alive window
		BaseContext:       func(net.Listener) context.Context { return ctx }, // pass base ctx to all handlers
	}

	// start the server in a background goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	// wait for context cancellation or server error
	select {
	case <-ctx.Done():
		// graceful HTTP shutdown on context cancel
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "http_shutdown_failed", "Failed to gracefully shut down HTTP server", err, nil)
		}
	case err := <-errCh:
		// server returned a terminal error at startup or during run
		if err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "http_server_error", "HTTP server terminated with error", err, map[string]any{"port": cfg.Dashboard.Port})
			return err
		}
		return nil
	}

	return nil
}

// withConcurrencyLimit wraps an http.Handler with a semaphore-based limiter.
// It controls how many HTTP requests can be in-progress at the same time.
func withConcurrencyLimit(n int, next http.Handler) http.Handler {
	if n <= 0 {
		return next
	}
	sem := make(chan struct{}, n)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}: // acquire
			defer func() { <-sem }() // release
			next.ServeHTTP(w, r)
		case <-r.Context().Done():
			// client canceled or server is shutting down
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	})
}
