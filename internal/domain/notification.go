package domain

import "time"

type NotificationType string

const (
	NotificationTypeReservationStarted NotificationType = "RESERVATION_STARTED"
	NotificationTypeReservationEnded   NotificationType = "RESERVATION_ENDED"
	NotificationTypeReservationExpired NotificationType = "RESERVATION_EXPIRED"
	NotificationTypeExpiringSoon       NotificationType = "EXPIRING_SOON"
	NotificationTypePaymentMade        NotificationType = "PAYMENT_MADE"
)

// Notification is a human-readable lifecycle event stored for the mobile
// client. Delivery to push/email channels is fire-and-forget; this row is
// the durable copy.
type Notification struct {
	ID        int32            `json:"id"`
	PayerID   int32            `json:"payer_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedOn time.Time        `json:"created_on"`
}
