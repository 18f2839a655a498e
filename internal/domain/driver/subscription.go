package driver

import (
	"errors"
	"strings"
	"time"
)

// SubscriptionType is a subscription billing period.
type SubscriptionType string

const (
	SubscriptionMonthly   SubscriptionType = "MONTHLY"
	SubscriptionQuarterly SubscriptionType = "QUARTERLY"
	SubscriptionAnnually  SubscriptionType = "ANNUALLY"
)

var ErrInvalidSubscriptionType = errors.New("invalid subscription type")

// ParseSubscriptionType normalizes (uppercases+trims) and validates a subscription type string.
func ParseSubscriptionType(in string) (SubscriptionType, error) {
	st := SubscriptionType(strings.ToUpper(strings.TrimSpace(in)))
	if st.Valid() {
		return st, nil
	}
	return "", ErrInvalidSubscriptionType
}

// Valid reports whether subscriptionType is one of the allowed constants.
func (subscriptionType SubscriptionType) Valid() bool {
	switch subscriptionType {
	case SubscriptionMonthly, SubscriptionQuarterly, SubscriptionAnnually:
		return true
	default:
		return false
	}
}

// String returns the string representation of the SubscriptionType.
func (subscriptionType SubscriptionType) String() string {
	return string(subscriptionType)
}

// SubscriptionStatus is a subscription lifecycle state.
type SubscriptionStatus string

const (
	SubscriptionPending SubscriptionStatus = "PENDING"
	SubscriptionActive  SubscriptionStatus = "ACTIVE"
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
)

// Subscription is a driver subscription record from the platform API.
// The stored Status string is not trusted for expiry: EffectiveStatus
// computes it from EndDate so filtering and display never disagree.
type Subscription struct {
	ID               string     `json:"id"`
	Driver           *Ref       `json:"driver"`
	VehicleType      string     `json:"vehicleType"`
	SubscriptionType string     `json:"subscriptionType"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	Status           string     `json:"status"`
	Price            *float64   `json:"price"`
}

// ExpiredAt reports whether the subscription is expired at the given time.
// A subscription with no end date has no basis for expiry and reports false.
func (s *Subscription) ExpiredAt(now time.Time) bool {
	if s == nil || s.EndDate == nil {
		return false
	}
	return now.After(*s.EndDate)
}

// EffectiveStatus derives the authoritative status at the given time.
// Expiry always wins over the stored status string; otherwise the stored
// status is normalized and returned, defaulting to PENDING when absent.
func (s *Subscription) EffectiveStatus(now time.Time) SubscriptionStatus {
	if s.ExpiredAt(now) {
		return SubscriptionExpired
	}
	switch SubscriptionStatus(strings.ToUpper(strings.TrimSpace(s.Status))) {
	case SubscriptionActive:
		return SubscriptionActive
	case SubscriptionExpired:
		// stored says expired but the end date disagrees: trust the computed value
		return SubscriptionActive
	default:
		return SubscriptionPending
	}
}
