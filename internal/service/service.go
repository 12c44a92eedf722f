package service

import (
	"context"
	"time"

	"totalpark-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	RegisterDevice(ctx context.Context, userID int32, fcmToken string) error
}

// ReservationService owns the lifecycle of reservations: free → confirmed →
// ended, with the expired path as a system-triggered end.
type ReservationService interface {
	Reserve(ctx context.Context, payerID, spaceID, vehicleID int32, duration time.Duration) (*domain.Reservation, error)
	Extend(ctx context.Context, payerID int32, reservationID string, extra time.Duration) (*domain.Reservation, error)
	End(ctx context.Context, payerID int32, reservationID string) error
	Expire(ctx context.Context, reservationID string) error
	GetReservation(ctx context.Context, payerID int32, reservationID string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Reservation, int32, error)
	// ApplySpaceChange ingests an externally observed space update (the
	// change feed) so local bookkeeping follows writes made elsewhere.
	ApplySpaceChange(ctx context.Context, space *domain.Space) error
	// StopMonitors cancels any per-reservation expiry monitors and waits
	// for them to exit. Safe to call when none are running.
	StopMonitors()
}

type LedgerService interface {
	// Charge debits the payer and appends a payment record carrying the
	// resulting balance snapshot. No partial charge is ever observable.
	Charge(ctx context.Context, payerID, amountCents int32, reservationID, description string) (*domain.Payment, error)
	Deposit(ctx context.Context, payerID, amountCents int32, description string) (*domain.Payment, error)
	GetBalance(ctx context.Context, payerID int32) (int32, error)
	ListPayments(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error)
}

type SpaceService interface {
	GetSpace(ctx context.Context, id int32) (*domain.Space, error)
	FindSpaceByNumber(ctx context.Context, number string) (*domain.Space, error)
	ListSpacesByZone(ctx context.Context, zoneID int32) ([]domain.Space, error)
	ListZones(ctx context.Context) ([]domain.Zone, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	ListVehicles(ctx context.Context, payerID int32) ([]domain.Vehicle, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, payerID, notificationID int32) error
}

// Notifier is the fire-and-forget sink for lifecycle events. Callers never
// block on it and tolerate its failure silently.
type Notifier interface {
	Notify(ctx context.Context, payerID int32, kind domain.NotificationType, title, message string)
}
