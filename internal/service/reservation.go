package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"totalpark-backend/internal/clock"
	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/locks"
	"totalpark-backend/internal/logger"
	"totalpark-backend/internal/observability/metrics"
	"totalpark-backend/internal/repository"
	"totalpark-backend/internal/utils"
)

// notifyTimeout bounds the detached delivery of a lifecycle event.
const notifyTimeout = 5 * time.Second

type reservationService struct {
	reservationRepo repository.ReservationRepository
	spaceRepo       repository.SpaceRepository
	zoneRepo        repository.ZoneRepository
	vehicleRepo     repository.VehicleRepository
	ledger          LedgerService
	notifier        Notifier
	clock           clock.Clock
	spaceLocks      *locks.KeyedMutex

	// monitorTick, when positive, makes Reserve attach a single-shot
	// expiry monitor to each new reservation. The cron sweep remains the
	// backstop either way.
	monitorTick time.Duration

	monitorsMu sync.Mutex
	monitors   map[string]*ExpiryMonitor
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	spaceRepo repository.SpaceRepository,
	zoneRepo repository.ZoneRepository,
	vehicleRepo repository.VehicleRepository,
	ledger LedgerService,
	notifier Notifier,
	clk clock.Clock,
	monitorTick time.Duration,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		zoneRepo:        zoneRepo,
		vehicleRepo:     vehicleRepo,
		ledger:          ledger,
		notifier:        notifier,
		clock:           clk,
		spaceLocks:      locks.NewKeyedMutex(),
		monitorTick:     monitorTick,
		monitors:        make(map[string]*ExpiryMonitor),
	}
}

func spaceKey(spaceID int32) string {
	return fmt.Sprintf("space/%d", spaceID)
}

func (s *reservationService) Reserve(ctx context.Context, payerID, spaceID, vehicleID int32, duration time.Duration) (*domain.Reservation, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidRequest)
	}

	// Serialize against extend/end/expire on the same space. An expire
	// that is releasing the space finishes its write before this reserve
	// reads the space status.
	key := spaceKey(spaceID)
	s.spaceLocks.Lock(key)
	defer s.spaceLocks.Unlock(key)

	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if space.Status != domain.SpaceStatusFree {
		return nil, fmt.Errorf("%w: space %s is not free", domain.ErrInvalidRequest, space.Number)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID, payerID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	// A vehicle holds at most one confirmed reservation with a future end
	// time. Other vehicles of the same payer may park concurrently.
	if _, err := s.reservationRepo.GetActiveByVehicle(ctx, vehicle.ID, now); err == nil {
		return nil, fmt.Errorf("%w: vehicle %s already has an active reservation", domain.ErrConflict, vehicle.RegistrationPlate)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	zone, err := s.zoneRepo.GetByID(ctx, space.ZoneID)
	if err != nil {
		return nil, err
	}

	price := utils.ResolvePriceCentsPerHour(space, zone)
	amount, err := utils.AmountCents(duration, price)
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		SpaceID:           space.ID,
		VehicleID:         vehicle.ID,
		PayerID:           payerID,
		PriceCentsPerHour: price,
		StartTime:         now,
		EndTime:           now.Add(duration),
		AmountCents:       amount,
		Status:            domain.ReservationStatusConfirmed,
		PaymentStatus:     domain.PaymentStatusPending,
	}

	// The repository claims the space and inserts the reservation in one
	// transaction, so there is no window where the space is busy without
	// an owning reservation or vice versa.
	if err := s.reservationRepo.Create(ctx, res); err != nil {
		return nil, err
	}

	metrics.ReservationsCreated.Inc()

	if s.monitorTick > 0 {
		monitor := NewExpiryMonitor(s, s.clock, s.monitorTick)
		if err := monitor.Watch(context.Background(), res); err != nil {
			logger.Warn("expiry monitor not started", "reservation_id", res.ID, "error", err)
		} else {
			s.trackMonitor(res.ID, monitor)
		}
	}

	s.notifyAsync(payerID, domain.NotificationTypeReservationStarted,
		"Reservation started",
		fmt.Sprintf("Space %s is yours until %s", space.Number, res.EndTime.Format("3:04 pm")))

	return res, nil
}

func (s *reservationService) Extend(ctx context.Context, payerID int32, reservationID string, extra time.Duration) (*domain.Reservation, error) {
	if extra <= 0 {
		return nil, fmt.Errorf("%w: extension must be positive", domain.ErrInvalidRequest)
	}

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.PayerID != payerID {
		return nil, fmt.Errorf("%w: reservation %s", domain.ErrNotFound, reservationID)
	}

	key := spaceKey(res.SpaceID)
	s.spaceLocks.Lock(key)
	defer s.spaceLocks.Unlock(key)

	// Re-read under the lock; an expire may have ended it meanwhile.
	res, err = s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != domain.ReservationStatusConfirmed {
		return nil, fmt.Errorf("%w: reservation %s already ended", domain.ErrConflict, reservationID)
	}

	increment, err := utils.AmountCents(extra, res.PriceCentsPerHour)
	if err != nil {
		return nil, err
	}

	// The charge commits before any reservation state changes. When it is
	// rejected the extension is rejected whole: end time and amount stay
	// exactly as they were.
	payment, err := s.ledger.Charge(ctx, payerID, increment, res.ID,
		fmt.Sprintf("parking extension of %s", extra))
	if err != nil {
		return nil, err
	}

	res.EndTime = res.EndTime.Add(extra)
	res.AmountCents += increment
	res.PaymentStatus = domain.PaymentStatusPaid
	if err := s.reservationRepo.Extend(ctx, res); err != nil {
		// The charge already went through; surface the write failure and
		// leave reconciliation to the operator (there is no refund path).
		logger.Error("extension write failed after charge",
			"reservation_id", res.ID, "payment_id", payment.ID, "error", err)
		return nil, err
	}

	metrics.ReservationsExtended.Inc()
	s.notifyAsync(payerID, domain.NotificationTypePaymentMade,
		"Payment made",
		fmt.Sprintf("You paid $%.2f, remaining balance $%.2f", float64(increment)/100, float64(payment.BalanceCents)/100))

	return res, nil
}

func (s *reservationService) End(ctx context.Context, payerID int32, reservationID string) error {
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.PayerID != payerID {
		return fmt.Errorf("%w: reservation %s", domain.ErrNotFound, reservationID)
	}

	key := spaceKey(res.SpaceID)
	s.spaceLocks.Lock(key)
	defer s.spaceLocks.Unlock(key)

	res, err = s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.Status == domain.ReservationStatusEnded {
		// Ending twice is a no-op, not an error.
		return nil
	}

	res.EndTime = s.clock.Now() // trim the unused tail
	if err := s.reservationRepo.Close(ctx, res); err != nil {
		return err
	}

	// The monitor goroutine may be blocked on the space lock still held
	// here, and Cancel waits for it to exit. Detach now, cancel off the
	// lock; a stray tick after this point sees an ended reservation and
	// does nothing.
	if m := s.detachMonitor(res.ID); m != nil {
		go m.Cancel()
	}

	metrics.ReservationsEnded.Inc()
	s.notifyAsync(payerID, domain.NotificationTypeReservationEnded,
		"Reservation ended",
		fmt.Sprintf("Your parking ended at %s", res.EndTime.Format("3:04 pm")))
	return nil
}

func (s *reservationService) Expire(ctx context.Context, reservationID string) error {
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}

	key := spaceKey(res.SpaceID)
	s.spaceLocks.Lock(key)
	defer s.spaceLocks.Unlock(key)

	res, err = s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.Status == domain.ReservationStatusEnded {
		// A redundant monitor tick. Swallow it.
		return nil
	}

	now := s.clock.Now()
	if now.Before(res.EndTime) {
		return fmt.Errorf("%w: reservation %s is not due until %s", domain.ErrInvalidRequest, res.ID, res.EndTime)
	}

	if err := s.reservationRepo.Close(ctx, res); err != nil {
		return err
	}

	metrics.ReservationsExpired.Inc()
	s.notifyAsync(res.PayerID, domain.NotificationTypeReservationExpired,
		"Parking time expired",
		fmt.Sprintf("Your parking time ended at %s", res.EndTime.Format("3:04 pm")))
	return nil
}

func (s *reservationService) GetReservation(ctx context.Context, payerID int32, reservationID string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.PayerID != payerID {
		return nil, fmt.Errorf("%w: reservation %s", domain.ErrNotFound, reservationID)
	}
	return res, nil
}

func (s *reservationService) ListReservations(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return s.reservationRepo.ListByPayer(ctx, payerID, page, pageSize)
}

// ApplySpaceChange writes through an update observed on the space change
// feed. The per-space lock orders it against in-flight transitions.
func (s *reservationService) ApplySpaceChange(ctx context.Context, space *domain.Space) error {
	if space == nil {
		return fmt.Errorf("%w: nil space", domain.ErrInvalidRequest)
	}

	key := spaceKey(space.ID)
	s.spaceLocks.Lock(key)
	defer s.spaceLocks.Unlock(key)

	return s.spaceRepo.Update(ctx, space)
}

// trackMonitor registers a running monitor under its reservation ID and
// removes the entry once the monitor finishes on its own.
func (s *reservationService) trackMonitor(reservationID string, m *ExpiryMonitor) {
	s.monitorsMu.Lock()
	s.monitors[reservationID] = m
	s.monitorsMu.Unlock()

	go func() {
		<-m.Done()
		s.detachMonitor(reservationID)
	}()
}

// detachMonitor removes and returns the monitor for a reservation, or nil
// when none is registered.
func (s *reservationService) detachMonitor(reservationID string) *ExpiryMonitor {
	s.monitorsMu.Lock()
	defer s.monitorsMu.Unlock()
	m := s.monitors[reservationID]
	delete(s.monitors, reservationID)
	return m
}

// StopMonitors cancels every running expiry monitor and waits for each to
// exit. Called on shutdown; the cron sweep picks up whatever was in
// flight on the next run.
func (s *reservationService) StopMonitors() {
	s.monitorsMu.Lock()
	running := make([]*ExpiryMonitor, 0, len(s.monitors))
	for id, m := range s.monitors {
		running = append(running, m)
		delete(s.monitors, id)
	}
	s.monitorsMu.Unlock()

	for _, m := range running {
		m.Cancel()
	}
}

// notifyAsync delivers a lifecycle event without blocking the transition
// that produced it.
func (s *reservationService) notifyAsync(payerID int32, kind domain.NotificationType, title, message string) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		s.notifier.Notify(ctx, payerID, kind, title, message)
	}()
}
