package domain

import "time"

type PaymentType string

const (
	PaymentTypeCharge  PaymentType = "CHARGE"
	PaymentTypeDeposit PaymentType = "DEPOSIT"
)

// Payment is an immutable append-only ledger entry, created exactly once
// per successful charge or deposit. BalanceCents is a snapshot of the
// payer's balance after the operation was applied.
type Payment struct {
	ID            string      `json:"id"`
	PayerID       int32       `json:"payer_id"`
	Type          PaymentType `json:"type"`
	AmountCents   int32       `json:"amount_cents"`
	ReservationID *string     `json:"reservation_id,omitempty"`
	BalanceCents  int32       `json:"balance_cents"`
	Description   string      `json:"description,omitempty"`
	CreatedOn     time.Time   `json:"created_on"`
}
