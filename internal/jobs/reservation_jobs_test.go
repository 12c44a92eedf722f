package jobs

import (
	"context"
	"regexp"
	"testing"
	"time"

	"totalpark-backend/internal/config"
	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/repository/postgres"
	"totalpark-backend/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubReservationService struct {
	service.ReservationService

	expired []string
	fail    map[string]error
}

func (s *stubReservationService) Expire(ctx context.Context, reservationID string) error {
	if err, ok := s.fail[reservationID]; ok {
		return err
	}
	s.expired = append(s.expired, reservationID)
	return nil
}

type recordingNotifier struct {
	notes []domain.NotificationType
}

func (n *recordingNotifier) Notify(ctx context.Context, payerID int32, kind domain.NotificationType, title, message string) {
	n.notes = append(n.notes, kind)
}

func dueRows(now time.Time, ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "space_id", "vehicle_id", "payer_id", "price_cents_per_hour",
		"start_time", "end_time", "amount_cents", "status", "payment_status",
		"created_on", "updated_on",
	})
	for _, id := range ids {
		rows.AddRow(id, 7, 3, 1, 1000, now.Add(-time.Hour), now.Add(-time.Minute), 1000,
			string(domain.ReservationStatusConfirmed), string(domain.PaymentStatusPending), now, now)
	}
	return rows
}

func TestExpireOverdueReservations(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("expires every due reservation", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE status = $1 AND end_time <= $2`)).
			WithArgs(string(domain.ReservationStatusConfirmed), now).
			WillReturnRows(dueRows(now, "res-1", "res-2"))

		stub := &stubReservationService{}
		runner := NewJobRunner(db, postgres.NewStore(db), &Services{Reservation: stub}, &config.Config{}, fixedClock{now})

		runner.ExpireOverdueReservations()
		assert.Equal(t, []string{"res-1", "res-2"}, stub.expired)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})

	t.Run("a reservation ended meanwhile does not stop the sweep", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE status = $1 AND end_time <= $2`)).
			WithArgs(string(domain.ReservationStatusConfirmed), now).
			WillReturnRows(dueRows(now, "res-1", "res-2", "res-3"))

		stub := &stubReservationService{fail: map[string]error{"res-2": domain.ErrNotFound}}
		runner := NewJobRunner(db, postgres.NewStore(db), &Services{Reservation: stub}, &config.Config{}, fixedClock{now})

		runner.ExpireOverdueReservations()
		assert.Equal(t, []string{"res-1", "res-3"}, stub.expired)
	})
}

func TestSendExpiryReminders(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	db, dbmock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	lead := 5
	dbmock.ExpectQuery(regexp.QuoteMeta(`FROM reservations WHERE status = $1 AND end_time > $2 AND end_time <= $3`)).
		WithArgs(string(domain.ReservationStatusConfirmed), now, now.Add(time.Duration(lead)*time.Minute)).
		WillReturnRows(dueRows(now, "res-1"))

	notifier := &recordingNotifier{}
	cfg := &config.Config{}
	cfg.Scheduler.ReminderLeadMinutes = lead
	runner := NewJobRunner(db, postgres.NewStore(db), &Services{Notifier: notifier}, cfg, fixedClock{now})

	runner.SendExpiryReminders()
	assert.Equal(t, []domain.NotificationType{domain.NotificationTypeExpiringSoon}, notifier.notes)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}
