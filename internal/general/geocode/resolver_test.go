package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"transit-admin/internal/general/config"
	"transit-admin/internal/general/logger"
	"transit-admin/internal/ports"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Geocoding.BaseURL = srv.URL
	cfg.Geocoding.Token = "test-token"
	cfg.Geocoding.TimeoutSeconds = 2

	return NewResolver(cfg, logger.New("geocode-test"))
}

func TestResolveLocalityAndDistrict(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
		w.Write([]byte(`{"features":[{"text":"Poblacion","place_type":["neighborhood"],"context":[{"id":"place.123","text":"Makati"}]}]}`))
	})

	got := resolver.Resolve(context.Background(), 14.5547, 121.0244)
	assert.Equal(t, "Poblacion, Makati", got)
}

func TestResolveLocalityOnly(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[{"text":"Poblacion","place_type":["locality"]}]}`))
	})

	got := resolver.Resolve(context.Background(), 14.5, 121.0)
	assert.Equal(t, "Poblacion", got)
}

func TestResolveEmptyFeaturesFallsBack(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	})

	got := resolver.Resolve(context.Background(), 14.5, 121.0)
	assert.Equal(t, FallbackAddress, got)
}

func TestResolveServerErrorFallsBack(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	got := resolver.Resolve(context.Background(), 14.5, 121.0)
	assert.Equal(t, FallbackAddress, got)
}

func TestResolveMalformedBodyFallsBack(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	got := resolver.Resolve(context.Background(), 14.5, 121.0)
	assert.Equal(t, FallbackAddress, got)
}

func TestResolveUnreachableEndpointFallsBack(t *testing.T) {
	cfg := &config.Config{}
	cfg.Geocoding.BaseURL = "http://127.0.0.1:1"
	cfg.Geocoding.TimeoutSeconds = 1
	resolver := NewResolver(cfg, logger.New("geocode-test"))

	got := resolver.Resolve(context.Background(), 14.5, 121.0)
	assert.Equal(t, FallbackAddress, got)
}

func TestResolveManyKeepsInputOrder(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[{"text":"Somewhere","place_type":["locality"]}]}`))
	})

	got := resolver.ResolveMany(context.Background(), []ports.CoordinatePair{
		{Latitude: 14.5, Longitude: 121.0, Valid: true},
		{Valid: false}, // skipped straight to fallback, no call made
		{Latitude: 14.6, Longitude: 121.1, Valid: true},
	})

	assert.Equal(t, []string{"Somewhere", FallbackAddress, "Somewhere"}, got)
}

func TestResolveManyEmpty(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Empty(t, resolver.ResolveMany(context.Background(), nil))
}
