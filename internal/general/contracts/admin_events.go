package contracts

// ApplicationApprovedEvent is published after a driver application is
// confirmed approved on the platform.
type ApplicationApprovedEvent struct {
	Envelope
	ApplicationID string `json:"application_id"`
	OperatorID    string `json:"operator_id"`
}

// PaymentAcceptedEvent is published after a subscription payment is
// confirmed accepted and a local receipt is stored.
type PaymentAcceptedEvent struct {
	Envelope
	SubscriptionID string  `json:"subscription_id"`
	ReceiptID      string  `json:"receipt_id,omitempty"`
	Amount         float64 `json:"amount,omitempty"`
	OperatorID     string  `json:"operator_id"`
}

// FareUpdatedEvent is published after fare settings are confirmed updated.
type FareUpdatedEvent struct {
	Envelope
	FareID     string  `json:"fare_id"`
	BaseFare   float64 `json:"base_fare"`
	PerKM      float64 `json:"per_km"`
	PerMinute  float64 `json:"per_minute"`
	OperatorID string  `json:"operator_id"`
}
