package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"transit-admin/internal/general/logger"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsReadLimit    = 1 << 16 // dashboard clients only send pings/close frames
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// LiveFeed pushes refreshed overview snapshots to connected dashboard
// clients. Pushes happen on a fixed interval and immediately after a
// platform activity message arrives on the broker.
type LiveFeed struct {
	logger *logger.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}

	refresh chan struct{}
}

// NewLiveFeed creates an empty feed; Run starts the push loop.
func NewLiveFeed(logger *logger.Logger) *LiveFeed {
	return &LiveFeed{
		logger:  logger,
		conns:   make(map[*websocket.Conn]struct{}),
		refresh: make(chan struct{}, 1),
	}
}

// Handle upgrades an (already authenticated) HTTP request and keeps the
// connection registered until the client goes away.
func (feed *LiveFeed) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		feed.logger.Error(r.Context(), "websocket_upgrade_failed", "Failed to upgrade to WebSocket", err, nil)
		return
	}
	conn.SetReadLimit(wsReadLimit)

	feed.mu.Lock()
	feed.conns[conn] = struct{}{}
	total := len(feed.conns)
	feed.mu.Unlock()

	feed.logger.Info(r.Context(), "live_client_connected", "Dashboard live client connected",
		map[string]any{"clients": total})

	// read loop exists only to observe the close; clients never send data
	go func() {
		defer feed.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Trigger requests an immediate push (e.g., when platform activity arrives).
// Non-blocking: coalesces with any pending trigger.
func (feed *LiveFeed) Trigger() {
	select {
	case feed.refresh <- struct{}{}:
	default:
	}
}

// Run pushes snapshots until ctx is cancelled: every interval, and on each
// Trigger. snapshot failures are logged and skipped; the loop keeps going.
func (feed *LiveFeed) Run(ctx context.Context, interval time.Duration, snapshot func(context.Context) (any, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			feed.closeAll()
			return
		case <-ticker.C:
		case <-feed.refresh:
		}

		if !feed.hasClients() {
			continue
		}

		payload, err := snapshot(ctx)
		if err != nil {
			feed.logger.Error(ctx, "live_snapshot_failed", "Failed to build live overview snapshot", err, nil)
			continue
		}
		feed.broadcast(ctx, payload)
	}
}

// ----- internals -----

func (feed *LiveFeed) hasClients() bool {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	return len(feed.conns) > 0
}

// broadcast writes the payload to every client, dropping the ones that fail.
func (feed *LiveFeed) broadcast(ctx context.Context, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		feed.logger.Error(ctx, "live_encode_failed", "Failed to encode live payload", err, nil)
		return
	}

	feed.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(feed.conns))
	for c := range feed.conns {
		conns = append(conns, c)
	}
	feed.mu.Unlock()

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
			feed.drop(conn)
		}
	}
}

// drop unregisters and closes a connection (idempotent).
func (feed *LiveFeed) drop(conn *websocket.Conn) {
	feed.mu.Lock()
	_, known := feed.conns[conn]
	delete(feed.conns, conn)
	feed.mu.Unlock()

	if known {
		_ = conn.Close()
	}
}

// closeAll tears down every client connection on shutdown.
func (feed *LiveFeed) closeAll() {
	feed.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(feed.conns))
	for c := range feed.conns {
		conns = append(conns, c)
	}
	feed.conns = make(map[*websocket.Conn]struct{})
	feed.mu.Unlock()

	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(wsWriteTimeout))
		_ = conn.Close()
	}
}
