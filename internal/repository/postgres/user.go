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

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, phone, password_hash, balance_cents, fcm_token, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.Phone, u.PasswordHash, u.BalanceCents, u.FCMToken, now, now).Scan(&u.ID)
	if err != nil {
		return domain.WrapPersistence("users.create", err)
	}
	u.CreatedOn = now
	u.UpdatedOn = now
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, COALESCE(phone, ''), password_hash, balance_cents, COALESCE(fcm_token, ''), created_on, updated_on
	          FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.BalanceCents, &u.FCMToken, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, domain.WrapPersistence("users.get", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, COALESCE(phone, ''), password_hash, balance_cents, COALESCE(fcm_token, ''), created_on, updated_on
	          FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.BalanceCents, &u.FCMToken, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, email)
	}
	if err != nil {
		return nil, domain.WrapPersistence("users.get_by_email", err)
	}
	return u, nil
}

func (r *userRepository) UpdateFCMToken(ctx context.Context, userID int32, token string) error {
	query := `UPDATE users SET fcm_token = $1, updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, token, time.Now(), userID)
	return domain.WrapPersistence("users.update_fcm_token", err)
}

// DebitBalance uses a conditional UPDATE so the check and the deduction are
// one atomic statement; a balance below the amount matches no row and the
// payer's credit is untouched.
func (r *userRepository) DebitBalance(ctx context.Context, userID, amountCents int32) (int32, error) {
	var balance int32
	query := `UPDATE users SET balance_cents = balance_cents - $1, updated_on = $2
	          WHERE id = $3 AND balance_cents >= $1 RETURNING balance_cents`
	err := r.db.QueryRowContext(ctx, query, amountCents, time.Now(), userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the payer does not exist or the balance is too low.
		if _, getErr := r.GetByID(ctx, userID); getErr != nil {
			return 0, getErr
		}
		return 0, fmt.Errorf("%w: balance below %d cents", domain.ErrInsufficientFunds, amountCents)
	}
	if err != nil {
		return 0, domain.WrapPersistence("users.debit_balance", err)
	}
	return balance, nil
}

func (r *userRepository) CreditBalance(ctx context.Context, userID, amountCents int32) (int32, error) {
	var balance int32
	query := `UPDATE users SET balance_cents = balance_cents + $1, updated_on = $2
	          WHERE id = $3 RETURNING balance_cents`
	err := r.db.QueryRowContext(ctx, query, amountCents, time.Now(), userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	if err != nil {
		return 0, domain.WrapPersistence("users.credit_balance", err)
	}
	return balance, nil
}
