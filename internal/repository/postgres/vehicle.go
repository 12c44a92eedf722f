package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (payer_id, registration_plate, model, color, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, v.PayerID, v.RegistrationPlate, v.Model, v.Color, now).Scan(&v.ID)
	if err != nil {
		return domain.WrapPersistence("vehicles.create", err)
	}
	v.CreatedOn = now
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id, payerID int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, payer_id, registration_plate, COALESCE(model, ''), COALESCE(color, ''), created_on
	          FROM vehicles WHERE id = $1 AND payer_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, payerID).Scan(&v.ID, &v.PayerID, &v.RegistrationPlate, &v.Model, &v.Color, &v.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: vehicle %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, domain.WrapPersistence("vehicles.get", err)
	}
	return v, nil
}

func (r *vehicleRepository) ListByPayer(ctx context.Context, payerID int32) ([]domain.Vehicle, error) {
	query := `SELECT id, payer_id, registration_plate, COALESCE(model, ''), COALESCE(color, ''), created_on
	          FROM vehicles WHERE payer_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, payerID)
	if err != nil {
		return nil, domain.WrapPersistence("vehicles.list", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.PayerID, &v.RegistrationPlate, &v.Model, &v.Color, &v.CreatedOn); err != nil {
			return nil, domain.WrapPersistence("vehicles.list", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
