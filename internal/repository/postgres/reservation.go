package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/repository"

	"github.com/google/uuid"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, space_id, vehicle_id, payer_id, price_cents_per_hour, start_time, end_time, amount_cents, status, payment_status, created_on, updated_on`

func scanReservation(row interface{ Scan(...any) error }) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	err := row.Scan(&res.ID, &res.SpaceID, &res.VehicleID, &res.PayerID, &res.PriceCentsPerHour,
		&res.StartTime, &res.EndTime, &res.AmountCents, &res.Status, &res.PaymentStatus,
		&res.CreatedOn, &res.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Create claims the space and inserts the reservation in one transaction.
// The conditional space update is the cross-process guard: if a competing
// reservation got there first, zero rows match and nothing is written.
func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapPersistence("reservations.create", err)
	}
	defer tx.Rollback()

	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	now := time.Now()

	claim, err := tx.ExecContext(ctx,
		`UPDATE spaces SET status = $1, occupied_by = $2 WHERE id = $3 AND status = $4`,
		domain.SpaceStatusBusy, res.ID, res.SpaceID, domain.SpaceStatusFree)
	if err != nil {
		return domain.WrapPersistence("reservations.create", err)
	}
	claimed, err := claim.RowsAffected()
	if err != nil {
		return domain.WrapPersistence("reservations.create", err)
	}
	if claimed == 0 {
		return fmt.Errorf("%w: space %d is no longer free", domain.ErrConflict, res.SpaceID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reservations (`+reservationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		res.ID, res.SpaceID, res.VehicleID, res.PayerID, res.PriceCentsPerHour,
		res.StartTime, res.EndTime, res.AmountCents, res.Status, res.PaymentStatus, now, now)
	if err != nil {
		return domain.WrapPersistence("reservations.create", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapPersistence("reservations.create", err)
	}
	res.CreatedOn = now
	res.UpdatedOn = now
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reservation %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, domain.WrapPersistence("reservations.get", err)
	}
	return res, nil
}

func (r *reservationRepository) GetActiveByVehicle(ctx context.Context, vehicleID int32, now time.Time) (*domain.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE vehicle_id = $1 AND status = $2 AND end_time > $3
		 ORDER BY end_time DESC LIMIT 1`,
		vehicleID, domain.ReservationStatusConfirmed, now)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no active reservation for vehicle %d", domain.ErrNotFound, vehicleID)
	}
	if err != nil {
		return nil, domain.WrapPersistence("reservations.get_active_by_vehicle", err)
	}
	return res, nil
}

func (r *reservationRepository) Extend(ctx context.Context, res *domain.Reservation) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET end_time = $1, amount_cents = $2, payment_status = $3, updated_on = $4
		 WHERE id = $5 AND status = $6`,
		res.EndTime, res.AmountCents, res.PaymentStatus, time.Now(), res.ID, domain.ReservationStatusConfirmed)
	if err != nil {
		return domain.WrapPersistence("reservations.extend", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.WrapPersistence("reservations.extend", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: reservation %s already ended", domain.ErrConflict, res.ID)
	}
	return nil
}

// Close marks the reservation ended and releases its space together. The
// status guard makes redundant closes write nothing, which is what keeps
// End and Expire idempotent all the way down.
func (r *reservationRepository) Close(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapPersistence("reservations.close", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = $1, end_time = $2, updated_on = $3
		 WHERE id = $4 AND status = $5`,
		domain.ReservationStatusEnded, res.EndTime, time.Now(), res.ID, domain.ReservationStatusConfirmed)
	if err != nil {
		return domain.WrapPersistence("reservations.close", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.WrapPersistence("reservations.close", err)
	}
	if affected == 0 {
		// Already ended elsewhere. Nothing to write.
		return nil
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE spaces SET status = $1, occupied_by = NULL WHERE id = $2 AND occupied_by = $3`,
		domain.SpaceStatusFree, res.SpaceID, res.ID)
	if err != nil {
		return domain.WrapPersistence("reservations.close", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapPersistence("reservations.close", err)
	}
	res.Status = domain.ReservationStatusEnded
	return nil
}

func (r *reservationRepository) ListDue(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE status = $1 AND end_time <= $2`,
		domain.ReservationStatusConfirmed, now)
	if err != nil {
		return nil, domain.WrapPersistence("reservations.list_due", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *reservationRepository) ListEndingBetween(ctx context.Context, from, to time.Time) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE status = $1 AND end_time > $2 AND end_time <= $3`,
		domain.ReservationStatusConfirmed, from, to)
	if err != nil {
		return nil, domain.WrapPersistence("reservations.list_ending_between", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *reservationRepository) ListByPayer(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Reservation, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM reservations WHERE payer_id = $1`, payerID).Scan(&count)
	if err != nil {
		return nil, 0, domain.WrapPersistence("reservations.list_by_payer", err)
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE payer_id = $1
		 ORDER BY created_on DESC LIMIT $2 OFFSET $3`,
		payerID, pageSize, offset)
	if err != nil {
		return nil, 0, domain.WrapPersistence("reservations.list_by_payer", err)
	}
	defer rows.Close()

	reservations, err := collectReservations(rows)
	if err != nil {
		return nil, 0, err
	}
	return reservations, count, nil
}

func collectReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, domain.WrapPersistence("reservations.scan", err)
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}
