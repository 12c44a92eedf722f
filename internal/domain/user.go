package domain

import "time"

// User is a payer: the prepaid account charged for reservations.
type User struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"-"`
	// BalanceCents is the prepaid credit. It never goes negative; a charge
	// that would violate this is rejected in full.
	BalanceCents int32 `json:"balance_cents"`
	// FCMToken is the device registration token for mobile push, empty when
	// the payer has no registered device.
	FCMToken  string    `json:"-"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Vehicle belongs to exactly one payer. A vehicle may hold at most one
// confirmed reservation whose end time is in the future.
type Vehicle struct {
	ID                int32     `json:"id"`
	PayerID           int32     `json:"payer_id"`
	RegistrationPlate string    `json:"registration_plate"`
	Model             string    `json:"model,omitempty"`
	Color             string    `json:"color,omitempty"`
	CreatedOn         time.Time `json:"created_on"`
}
