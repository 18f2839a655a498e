package driver

import "time"

// Rating is a per-booking driver rating record from the platform API.
// Rating values arrive in a bounded range (1..5); records without a value
// are kept for counting but excluded from sums.
type Rating struct {
	ID        string     `json:"id"`
	Driver    *Ref       `json:"driver"`
	BookingID string     `json:"booking"`
	Rating    *float64   `json:"rating"`
	Comment   string     `json:"comment"`
	RatedAt   *time.Time `json:"ratedAt"`
}

// Value returns the rating value and whether one is present.
func (r *Rating) Value() (float64, bool) {
	if r.Rating == nil {
		return 0, false
	}
	return *r.Rating, true
}
