package booking

import "time"

// Cancellation is a cancelled-booking record from the platform API.
type Cancellation struct {
	ID            string     `json:"id"`
	BookingID     string     `json:"bookingId"`
	PassengerName string     `json:"passengerName"`
	DriverName    string     `json:"driverName"`
	Reason        string     `json:"reason"`
	CancelledAt   *time.Time `json:"cancelledAt"`
}
