package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"transit-admin/internal/general/config"
	"transit-admin/internal/general/logger"
	"transit-admin/internal/ports"
)

// FallbackAddress is returned for every failure mode: network error, empty
// feature list, malformed response. Resolution failures are recovered, not
// propagated, so a broken geocoder never blocks a report from rendering.
const FallbackAddress = "Address not found"

// Resolver reverse-geocodes coordinate pairs into locality strings via an
// external geocoding endpoint.
type Resolver struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *logger.Logger
}

// NewResolver builds a Resolver with a bounded per-call timeout.
func NewResolver(cfg *config.Config, logger *logger.Logger) *Resolver {
	return &Resolver{
		baseURL: strings.TrimRight(cfg.Geocoding.BaseURL, "/"),
		token:   cfg.Geocoding.Token,
		client:  &http.Client{Timeout: time.Duration(cfg.Geocoding.TimeoutSeconds) * time.Second},
		logger:  logger,
	}
}

// ensure Resolver implements the AddressResolver port
var _ ports.AddressResolver = (*Resolver)(nil)

// ----- wire types -----

// feature is one entry in the geocoder's feature list. The context list
// carries coarser address components from neighborhood up to region.
type feature struct {
	Text      string   `json:"text"`
	PlaceType []string `json:"place_type"`
	Context   []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"context"`
}

type featureResponse struct {
	Features []feature `json:"features"`
}

// Resolve turns a coordinate pair into "{locality}, {district}". It prefers
// a neighborhood-level component and falls back to the district/city-level
// one. Any failure returns FallbackAddress; this function never errors.
func (r *Resolver) Resolve(ctx context.Context, latitude, longitude float64) string {
	// query is keyed by longitude,latitude per the geocoder's convention
	endpoint := fmt.Sprintf("%s/%f,%f.json?%s", r.baseURL, longitude, latitude,
		url.Values{"access_token": {r.token}, "types": {"neighborhood,locality,place,district"}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		r.logger.Error(ctx, "geocode_request_build_failed", "Failed to build geocoding request", err, nil)
		return FallbackAddress
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug(ctx, "geocode_call_failed", "Geocoding call failed, using fallback address",
			map[string]any{"latitude": latitude, "longitude": longitude})
		return FallbackAddress
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FallbackAddress
	}

	var payload featureResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return FallbackAddress
	}

	return extractLocality(payload.Features)
}

// extractLocality picks the finest-grained locality from the first feature:
// neighborhood/locality first, then place/district, formatted as
// "{locality}, {district}".
func extractLocality(features []feature) string {
	if len(features) == 0 {
		return FallbackAddress
	}
	f := features[0]

	var locality, district string

	// the feature itself may already be the locality-level component
	for _, pt := range f.PlaceType {
		switch pt {
		case "neighborhood", "locality":
			locality = f.Text
		case "place", "district":
			district = f.Text
		}
	}

	// coarser components live in the context list
	for _, c := range f.Context {
		switch {
		case hasPrefix(c.ID, "neighborhood", "locality"):
			if locality == "" {
				locality = c.Text
			}
		case hasPrefix(c.ID, "place", "district"):
			if district == "" {
				district = c.Text
			}
		}
	}

	switch {
	case locality != "" && district != "":
		return locality + ", " + district
	case locality != "":
		return locality
	case district != "":
		return district
	default:
		return FallbackAddress
	}
}

func hasPrefix(id string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(id, p+".") || id == p {
			return true
		}
	}
	return false
}

// ResolveMany resolves all pairs concurrently and returns one result per
// input pair, index-aligned. Grouping that depends on resolved addresses
// must not start before this returns; the join waits for every resolution
// (success or fallback).
func (r *Resolver) ResolveMany(ctx context.Context, pairs []ports.CoordinatePair) []string {
	out := make([]string, len(pairs))

	var wg sync.WaitGroup
	for i, p := range pairs {
		if !p.Valid {
			out[i] = FallbackAddress
			continue
		}
		wg.Add(1)
		go func(i int, p ports.CoordinatePair) {
			defer wg.Done()
			out[i] = r.Resolve(ctx, p.Latitude, p.Longitude)
		}(i, p)
	}
	wg.Wait()

	return out
}
