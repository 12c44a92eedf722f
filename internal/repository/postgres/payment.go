package postgres

import (
	"context"
	"database/sql"
	"time"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/repository"

	"github.com/google/uuid"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	var reservationID sql.NullString
	if p.ReservationID != nil {
		reservationID = sql.NullString{String: *p.ReservationID, Valid: true}
	}
	query := `INSERT INTO payments (id, payer_id, type, amount_cents, reservation_id, balance_cents, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.PayerID, p.Type, p.AmountCents, reservationID, p.BalanceCents, p.Description, now)
	if err != nil {
		return domain.WrapPersistence("payments.create", err)
	}
	p.CreatedOn = now
	return nil
}

func (r *paymentRepository) ListByPayer(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payments WHERE payer_id = $1`, payerID).Scan(&count)
	if err != nil {
		return nil, 0, domain.WrapPersistence("payments.list", err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, payer_id, type, amount_cents, reservation_id, balance_cents, COALESCE(description, ''), created_on
	          FROM payments WHERE payer_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, payerID, pageSize, offset)
	if err != nil {
		return nil, 0, domain.WrapPersistence("payments.list", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var reservationID sql.NullString
		if err := rows.Scan(&p.ID, &p.PayerID, &p.Type, &p.AmountCents, &reservationID, &p.BalanceCents, &p.Description, &p.CreatedOn); err != nil {
			return nil, 0, domain.WrapPersistence("payments.list", err)
		}
		if reservationID.Valid {
			p.ReservationID = &reservationID.String
		}
		payments = append(payments, p)
	}
	return payments, count, rows.Err()
}
