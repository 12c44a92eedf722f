package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/repository"
)

type zoneRepository struct {
	db *sql.DB
}

func NewZoneRepository(db *sql.DB) repository.ZoneRepository {
	return &zoneRepository{db: db}
}

func (r *zoneRepository) GetByID(ctx context.Context, id int32) (*domain.Zone, error) {
	z := &domain.Zone{}
	var boundary []byte
	query := `SELECT id, name, price_cents_per_hour, COALESCE(boundary, '[]') FROM zones WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&z.ID, &z.Name, &z.PriceCentsPerHour, &boundary)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: zone %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, domain.WrapPersistence("zones.get", err)
	}
	if len(boundary) > 0 {
		if err := json.Unmarshal(boundary, &z.Boundary); err != nil {
			return nil, domain.WrapPersistence("zones.get", err)
		}
	}
	return z, nil
}

func (r *zoneRepository) List(ctx context.Context) ([]domain.Zone, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price_cents_per_hour, COALESCE(boundary, '[]') FROM zones ORDER BY name`)
	if err != nil {
		return nil, domain.WrapPersistence("zones.list", err)
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		var z domain.Zone
		var boundary []byte
		if err := rows.Scan(&z.ID, &z.Name, &z.PriceCentsPerHour, &boundary); err != nil {
			return nil, domain.WrapPersistence("zones.list", err)
		}
		if len(boundary) > 0 {
			if err := json.Unmarshal(boundary, &z.Boundary); err != nil {
				return nil, domain.WrapPersistence("zones.list", err)
			}
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}
