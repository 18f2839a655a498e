package driver

import "time"

// Violation is a driver violation report record from the platform API.
type Violation struct {
	ID          string     `json:"id"`
	Driver      *Ref       `json:"driver"`
	ReportedBy  *Reporter  `json:"user"`
	BookingID   string     `json:"booking"`
	Report      string     `json:"report"`
	Description string     `json:"description"`
	ReportedAt  *time.Time `json:"reportedAt"`
}

// Reporter is the commuter who filed a violation report.
type Reporter struct {
	Name string `json:"name"`
}

// ReporterName returns the reporting commuter's name, or "" when absent.
func (v *Violation) ReporterName() string {
	if v.ReportedBy == nil {
		return ""
	}
	return v.ReportedBy.Name
}
