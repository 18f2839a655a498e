package commuter

import "time"

// Commuter is a passenger account record from the platform API.
type Commuter struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	ProfilePic   string     `json:"profilePic"`
	Status       string     `json:"status"`
	RegisteredAt *time.Time `json:"registeredAt"`
}
