package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/repository"
)

type spaceRepository struct {
	db *sql.DB
}

func NewSpaceRepository(db *sql.DB) repository.SpaceRepository {
	return &spaceRepository{db: db}
}

const spaceColumns = `id, number, zone_id, latitude, longitude, category, status, occupied_by, price_cents_per_hour`

func scanSpace(row interface{ Scan(...any) error }) (*domain.Space, error) {
	s := &domain.Space{}
	var occupiedBy sql.NullString
	err := row.Scan(&s.ID, &s.Number, &s.ZoneID, &s.Latitude, &s.Longitude, &s.Category, &s.Status, &occupiedBy, &s.PriceCentsPerHour)
	if err != nil {
		return nil, err
	}
	if occupiedBy.Valid {
		s.OccupiedBy = &occupiedBy.String
	}
	return s, nil
}

func (r *spaceRepository) GetByID(ctx context.Context, id int32) (*domain.Space, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE id = $1`, id)
	s, err := scanSpace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: space %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, domain.WrapPersistence("spaces.get", err)
	}
	return s, nil
}

func (r *spaceRepository) GetByNumber(ctx context.Context, number string) (*domain.Space, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE number = $1`, number)
	s, err := scanSpace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: space %q", domain.ErrNotFound, number)
	}
	if err != nil {
		return nil, domain.WrapPersistence("spaces.get_by_number", err)
	}
	return s, nil
}

func (r *spaceRepository) ListByZone(ctx context.Context, zoneID int32) ([]domain.Space, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE zone_id = $1 ORDER BY number`, zoneID)
	if err != nil {
		return nil, domain.WrapPersistence("spaces.list_by_zone", err)
	}
	defer rows.Close()

	var spaces []domain.Space
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, domain.WrapPersistence("spaces.list_by_zone", err)
		}
		spaces = append(spaces, *s)
	}
	return spaces, rows.Err()
}

func (r *spaceRepository) Update(ctx context.Context, s *domain.Space) error {
	query := `UPDATE spaces SET status = $1, occupied_by = $2, price_cents_per_hour = $3 WHERE id = $4`
	var occupiedBy sql.NullString
	if s.OccupiedBy != nil {
		occupiedBy = sql.NullString{String: *s.OccupiedBy, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, s.Status, occupiedBy, s.PriceCentsPerHour, s.ID)
	return domain.WrapPersistence("spaces.update", err)
}
