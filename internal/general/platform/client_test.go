package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"transit-admin/internal/domain/fare"
	"transit-admin/internal/general/config"
	"transit-admin/internal/general/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Platform.BaseURL = srv.URL
	cfg.Platform.TimeoutSeconds = 2

	return NewClient(cfg, logger.New("platform-test"))
}

func TestFetchListBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drivers", r.URL.Path)
		w.Write([]byte(`[{"id":"d1","name":"Alice"},{"id":"d2","name":"Bob"}]`))
	})

	drivers, err := client.Drivers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, drivers, 2)
	assert.Equal(t, "Alice", drivers[0].Name)
}

func TestFetchListEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","data":[{"id":"c1","name":"Carol"}]}`))
	})

	commuters, err := client.Commuters(context.Background())
	assert.NoError(t, err)
	assert.Len(t, commuters, 1)
	assert.Equal(t, "Carol", commuters[0].Name)
}

func TestFetchListEnvelopeBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","data":null}`))
	})

	_, err := client.Commuters(context.Background())
	assert.Error(t, err)
}

func TestFetchListNon2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Violations(context.Background())
	assert.Error(t, err)
}

func TestFetchListEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	fares, err := client.Fares(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, fares)
}

func TestApproveApplicationPostsID(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	err := client.ApproveApplication(context.Background(), "app-1")
	assert.NoError(t, err)
	assert.Equal(t, "/applications/approve", gotPath)
	assert.Equal(t, "app-1", gotBody["id"])
}

func TestActionFailureIsSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	err := client.AcceptPayment(context.Background(), "sub-1")
	assert.Error(t, err)
}

func TestUpdateFarePutsPayload(t *testing.T) {
	var gotMethod, gotPath string
	var gotUpdate fare.Update

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotUpdate)
		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateFare(context.Background(), "fare-1", fare.Update{BaseFare: 45, PerKM: 12, PerMinute: 2})
	assert.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/fares/fare-1", gotPath)
	assert.Equal(t, 45.0, gotUpdate.BaseFare)
}
