package postgres

import (
	"database/sql"

	"totalpark-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.SpaceRepository
	repository.ZoneRepository
	repository.ReservationRepository
	repository.PaymentRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		SpaceRepository:        NewSpaceRepository(db),
		ZoneRepository:         NewZoneRepository(db),
		ReservationRepository:  NewReservationRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
