package driver

import "time"

// Application is a pending driver application record from the platform API.
type Application struct {
	ID            string     `json:"id"`
	ApplicantName string     `json:"applicantName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	VehicleType   string     `json:"vehicleType"`
	PlateNumber   string     `json:"plateNumber"`
	LicenseNumber string     `json:"licenseNumber"`
	Status        string     `json:"status"`
	SubmittedAt   *time.Time `json:"submittedAt"`
}
