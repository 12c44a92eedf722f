package repository

import (
	"context"
	"time"

	"totalpark-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateFCMToken(ctx context.Context, userID int32, token string) error

	// DebitBalance atomically subtracts amountCents and returns the
	// resulting balance. It must fail with domain.ErrInsufficientFunds
	// without any deduction when the balance is too low.
	DebitBalance(ctx context.Context, userID, amountCents int32) (int32, error)
	// CreditBalance atomically adds amountCents and returns the resulting
	// balance.
	CreditBalance(ctx context.Context, userID, amountCents int32) (int32, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id, payerID int32) (*domain.Vehicle, error)
	ListByPayer(ctx context.Context, payerID int32) ([]domain.Vehicle, error)
}

type SpaceRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Space, error)
	GetByNumber(ctx context.Context, number string) (*domain.Space, error)
	ListByZone(ctx context.Context, zoneID int32) ([]domain.Space, error)
	Update(ctx context.Context, space *domain.Space) error
}

type ZoneRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Zone, error)
	List(ctx context.Context) ([]domain.Zone, error)
}

type ReservationRepository interface {
	// Create inserts the reservation and marks its space busy in one
	// transaction. It must fail with domain.ErrConflict, writing nothing,
	// when the space is no longer free.
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	// GetActiveByVehicle returns the confirmed reservation for the vehicle
	// whose end time is after now, or domain.ErrNotFound.
	GetActiveByVehicle(ctx context.Context, vehicleID int32, now time.Time) (*domain.Reservation, error)
	// Extend persists a new end time and amount for a confirmed
	// reservation. It must fail with domain.ErrConflict when the
	// reservation is no longer confirmed.
	Extend(ctx context.Context, res *domain.Reservation) error
	// Close marks the reservation ended and frees its space in one
	// transaction. Closing an already ended reservation writes nothing.
	Close(ctx context.Context, res *domain.Reservation) error
	// ListDue returns confirmed reservations whose end time is at or
	// before now.
	ListDue(ctx context.Context, now time.Time) ([]domain.Reservation, error)
	// ListEndingBetween returns confirmed reservations whose end time
	// falls in (from, to]; used for expiry reminders.
	ListEndingBetween(ctx context.Context, from, to time.Time) ([]domain.Reservation, error)
	ListByPayer(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Reservation, int32, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByPayer(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, payerID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, payerID int32) error
}
