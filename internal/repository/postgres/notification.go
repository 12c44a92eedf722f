package postgres

import (
	"context"
	"database/sql"
	"time"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (payer_id, type, title, message, read, created_on)
	          VALUES ($1, $2, $3, $4, false, $5) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, n.PayerID, n.Type, n.Title, n.Message, now).Scan(&n.ID)
	if err != nil {
		return domain.WrapPersistence("notifications.create", err)
	}
	n.CreatedOn = now
	return nil
}

func (r *notificationRepository) List(ctx context.Context, payerID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE payer_id = $1`, payerID).Scan(&count)
	if err != nil {
		return nil, 0, domain.WrapPersistence("notifications.list", err)
	}

	query := `SELECT id, payer_id, type, title, message, read, created_on
	          FROM notifications WHERE payer_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, payerID, limit, offset)
	if err != nil {
		return nil, 0, domain.WrapPersistence("notifications.list", err)
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.PayerID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedOn); err != nil {
			return nil, 0, domain.WrapPersistence("notifications.list", err)
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, payerID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND payer_id = $2`, id, payerID)
	return domain.WrapPersistence("notifications.mark_read", err)
}
