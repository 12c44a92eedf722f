package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/logger"
)

// ExpireOverdueReservations is the safety net behind the per-session expiry
// monitors: it ends every confirmed reservation whose end time has passed.
// A monitor that already fired leaves nothing for the sweep to do.
func (jr *JobRunner) ExpireOverdueReservations() {
	jr.runWithRecovery("ExpireOverdueReservations", func() {
		ctx := context.Background()
		now := jr.clock.Now()

		due, err := jr.store.ReservationRepository.ListDue(ctx, now)
		if err != nil {
			logger.Error("Failed to list due reservations", "error", err)
			return
		}

		expired := 0
		for _, res := range due {
			if err := jr.services.Reservation.Expire(ctx, res.ID); err != nil {
				// Ended by a monitor or another worker between the list
				// and the expire. Not a failure.
				if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
					continue
				}
				logger.Error("Failed to expire reservation",
					"reservation_id", res.ID, "error", err)
				continue
			}
			expired++
		}

		logger.Info("Expired overdue reservations", "due", len(due), "expired", expired)
	})
}

// SendExpiryReminders notifies payers whose reservations end within the
// configured lead window.
func (jr *JobRunner) SendExpiryReminders() {
	jr.runWithRecovery("SendExpiryReminders", func() {
		ctx := context.Background()
		now := jr.clock.Now()
		lead := time.Duration(jr.config.Scheduler.ReminderLeadMinutes) * time.Minute

		ending, err := jr.store.ReservationRepository.ListEndingBetween(ctx, now, now.Add(lead))
		if err != nil {
			logger.Error("Failed to list expiring reservations", "error", err)
			return
		}

		for _, res := range ending {
			remaining := res.EndTime.Sub(now).Round(time.Minute)
			jr.services.Notifier.Notify(ctx, res.PayerID, domain.NotificationTypeExpiringSoon,
				"Parking expiring soon",
				fmt.Sprintf("Your parking ends in about %d minutes. Extend it from the app to keep the space.",
					int(remaining.Minutes())))
		}

		logger.Info("Sent expiry reminders", "count", len(ending))
	})
}
