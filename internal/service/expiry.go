package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"totalpark-backend/internal/clock"
	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/logger"
)

// ExpiryMonitor watches a single reservation and fires Expire exactly once
// when the clock passes its end time, then stops itself. It replaces the
// mobile client's per-session interval check with an explicit, cancellable
// task. Redundant ticks around the boundary are harmless because Expire is
// idempotent.
type ExpiryMonitor struct {
	reservations ReservationService
	clock        clock.Clock
	interval     time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewExpiryMonitor(reservations ReservationService, clk clock.Clock, interval time.Duration) *ExpiryMonitor {
	if interval <= 0 {
		interval = time.Second
	}
	return &ExpiryMonitor{
		reservations: reservations,
		clock:        clk,
		interval:     interval,
	}
}

// Watch starts polling the reservation. It is single-shot: after Expire
// succeeds the monitor exits on its own. Calling Watch on a monitor that is
// already watching returns an error rather than doubling the work.
func (m *ExpiryMonitor) Watch(ctx context.Context, reservation *domain.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		return errors.New("expiry monitor is already watching")
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.run(ctx, reservation.ID, reservation.EndTime)
	return nil
}

func (m *ExpiryMonitor) run(ctx context.Context, reservationID string, endTime time.Time) {
	defer close(m.done)
	defer m.cancel()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.clock.Now().Before(endTime) {
				continue
			}
			if err := m.reservations.Expire(ctx, reservationID); err != nil {
				// A reservation ended elsewhere is done; anything else is
				// worth retrying on the next tick.
				if errors.Is(err, domain.ErrNotFound) {
					return
				}
				// Extended since Watch began. Keep ticking until the new
				// end time passes.
				if errors.Is(err, domain.ErrInvalidRequest) {
					continue
				}
				logger.Warn("expire attempt failed", "reservation_id", reservationID, "error", err)
				continue
			}
			return
		}
	}
}

// Cancel stops the monitor immediately with no further side effects. Safe
// to call more than once and before Watch.
func (m *ExpiryMonitor) Cancel() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done exposes completion for callers that tie the monitor to a session.
func (m *ExpiryMonitor) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}
