package driver

import "time"

// Driver is a driver account record from the platform API.
type Driver struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	ProfilePic  string     `json:"profilePic"`
	VehicleType string     `json:"vehicleType"`
	PlateNumber string     `json:"plateNumber"`
	Status      string     `json:"status"`
	JoinedAt    *time.Time `json:"joinedAt"`
}

// Ref is the embedded driver reference carried by violations, ratings, and
// subscriptions. It may be entirely absent on malformed records.
type Ref struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProfilePic string `json:"profilePic"`
}

// Key returns the driver id used as a grouping key, or "" when the
// reference is missing so callers can collapse it into the unknown group.
func (r *Ref) Key() string {
	if r == nil {
		return ""
	}
	return r.ID
}

// DisplayName returns the driver name, or "" when the reference is missing.
func (r *Ref) DisplayName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

// Picture returns the profile picture URL, or "" when missing.
func (r *Ref) Picture() string {
	if r == nil {
		return ""
	}
	return r.ProfilePic
}
