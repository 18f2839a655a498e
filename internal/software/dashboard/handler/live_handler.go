package handler

import "net/http"

// --- Handler: GET /admin/live (WebSocket) ---

// handleLive upgrades the request and hands the connection to the live
// feed. Auth already ran in the middleware; browsers that cannot set an
// Authorization header pass the token as a query parameter instead.
func (handler *DashboardHTTPHandler) handleLive(w http.ResponseWriter, r *http.Request) {
	handler.live.Handle(w, r)
}
