package booking

import (
	"math"
	"time"
)

// GeoPoint is an optional coordinate pair as served by the booking service.
// Pointers keep "absent" distinguishable from a legitimate zero coordinate.
type GeoPoint struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Valid reports whether both components are present, finite, and in range.
func (p *GeoPoint) Valid() bool {
	if p == nil || p.Latitude == nil || p.Longitude == nil {
		return false
	}
	lat, lng := *p.Latitude, *p.Longitude
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Booking is a raw booking record from the platform API. Every field is
// optional; normalization happens at the report boundary, not here.
type Booking struct {
	ID            string     `json:"id"`
	PassengerName string     `json:"passengerName"`
	Pickup        *GeoPoint  `json:"pickupLocation"`
	Destination   *GeoPoint  `json:"destinationLocation"`
	CoPassengers  []Booking  `json:"copassengers"`
	StartDate     *time.Time `json:"startDate"`
}

// Flatten expands each booking and its co-passengers (recursively) into
// independent rows. The parent/child relation is not preserved past this
// point: a co-passenger without its own coordinates inherits the parent's.
func Flatten(list []Booking) []Booking {
	var out []Booking
	for _, b := range list {
		out = append(out, flattenOne(b)...)
	}
	return out
}

// flattenOne returns the booking followed by its flattened co-passengers.
func flattenOne(b Booking) []Booking {
	parent := b
	parent.CoPassengers = nil

	out := []Booking{parent}
	for _, co := range b.CoPassengers {
		if !co.Pickup.Valid() {
			co.Pickup = b.Pickup
		}
		if !co.Destination.Valid() {
			co.Destination = b.Destination
		}
		if co.StartDate == nil {
			co.StartDate = b.StartDate
		}
		out = append(out, flattenOne(co)...)
	}
	return out
}
