package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"totalpark-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

// stubReservations counts Expire calls; the other lifecycle methods are
// never reached by the monitor.
type stubReservations struct {
	ReservationService

	mu      sync.Mutex
	expires int
	err     error
}

func (s *stubReservations) Expire(ctx context.Context, reservationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.expires++
	return nil
}

func (s *stubReservations) expireCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expires
}

func TestExpiryMonitor_FiresOnceWhenDue(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clk := newFakeClock(now)
	stub := &stubReservations{}
	monitor := NewExpiryMonitor(stub, clk, 5*time.Millisecond)

	res := &domain.Reservation{ID: "res-1", EndTime: now.Add(time.Hour)}
	assert.NoError(t, monitor.Watch(context.Background(), res))

	// Still before the end time: several ticks, no expire.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, stub.expireCount())

	clk.Advance(2 * time.Hour)

	select {
	case <-monitor.Done():
	case <-time.After(time.Second):
		t.Fatal("monitor did not finish after the end time passed")
	}
	assert.Equal(t, 1, stub.expireCount())
}

func TestExpiryMonitor_CancelStopsWithoutFiring(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clk := newFakeClock(now)
	stub := &stubReservations{}
	monitor := NewExpiryMonitor(stub, clk, 5*time.Millisecond)

	res := &domain.Reservation{ID: "res-1", EndTime: now.Add(time.Hour)}
	assert.NoError(t, monitor.Watch(context.Background(), res))

	monitor.Cancel()
	assert.Equal(t, 0, stub.expireCount())

	// Cancel is idempotent.
	monitor.Cancel()
}

func TestExpiryMonitor_WatchTwiceFails(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clk := newFakeClock(now)
	stub := &stubReservations{}
	monitor := NewExpiryMonitor(stub, clk, 5*time.Millisecond)

	res := &domain.Reservation{ID: "res-1", EndTime: now.Add(time.Hour)}
	assert.NoError(t, monitor.Watch(context.Background(), res))
	assert.Error(t, monitor.Watch(context.Background(), res))

	monitor.Cancel()
}

func TestExpiryMonitor_StopsWhenReservationGone(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clk := newFakeClock(now)
	stub := &stubReservations{err: domain.ErrNotFound}
	monitor := NewExpiryMonitor(stub, clk, 5*time.Millisecond)

	res := &domain.Reservation{ID: "res-1", EndTime: now.Add(-time.Minute)}
	assert.NoError(t, monitor.Watch(context.Background(), res))

	select {
	case <-monitor.Done():
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after the reservation disappeared")
	}
	assert.Equal(t, 0, stub.expireCount())
}
