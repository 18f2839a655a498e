package fare

import "time"

// Fare is a fare settings record from the platform API.
type Fare struct {
	ID          string     `json:"id"`
	VehicleType string     `json:"vehicleType"`
	BaseFare    *float64   `json:"baseFare"`
	PerKM       *float64   `json:"perKm"`
	PerMinute   *float64   `json:"perMinute"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// Update is the mutable subset of fare settings an operator may edit.
type Update struct {
	BaseFare  float64 `json:"baseFare"`
	PerKM     float64 `json:"perKm"`
	PerMinute float64 `json:"perMinute"`
}

// Valid reports whether all edited amounts are non-negative.
func (u Update) Valid() bool {
	return u.BaseFare >= 0 && u.PerKM >= 0 && u.PerMinute >= 0
}
