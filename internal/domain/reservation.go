package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusUnconfirmed ReservationStatus = "UNCONFIRMED"
	ReservationStatusConfirmed   ReservationStatus = "CONFIRMED"
	ReservationStatusEnded       ReservationStatus = "ENDED"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// Reservation is a time-bounded occupancy of one space by one vehicle,
// billed to a payer. Ended reservations are archived, never deleted.
type Reservation struct {
	ID        string `json:"id"`
	SpaceID   int32  `json:"space_id"`
	VehicleID int32  `json:"vehicle_id"`
	PayerID   int32  `json:"payer_id"`
	// Price snapshot in cents per hour, captured at reservation time.
	// Extensions are billed against this snapshot, not the live tariff.
	PriceCentsPerHour int32             `json:"price_cents_per_hour"`
	StartTime         time.Time         `json:"start_time"`
	EndTime           time.Time         `json:"end_time"`
	AmountCents       int32             `json:"amount_cents"`
	Status            ReservationStatus `json:"status"`
	PaymentStatus     PaymentStatus     `json:"payment_status"`
	CreatedOn         time.Time         `json:"created_on"`
	UpdatedOn         time.Time         `json:"updated_on"`
}

// Active reports whether the reservation still occupies its space at t.
func (r *Reservation) Active(t time.Time) bool {
	return r.Status == ReservationStatusConfirmed && t.Before(r.EndTime)
}

// Duration is the currently booked parking duration.
func (r *Reservation) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
