package service

import (
	"context"
	"sync"
	"time"

	"totalpark-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// fakeClock is a settable clock shared by the lifecycle tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateFCMToken(ctx context.Context, userID int32, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockUserRepo) DebitBalance(ctx context.Context, userID, amountCents int32) (int32, error) {
	args := m.Called(ctx, userID, amountCents)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockUserRepo) CreditBalance(ctx context.Context, userID, amountCents int32) (int32, error) {
	args := m.Called(ctx, userID, amountCents)
	return args.Get(0).(int32), args.Error(1)
}

type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id, payerID int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id, payerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) ListByPayer(ctx context.Context, payerID int32) ([]domain.Vehicle, error) {
	args := m.Called(ctx, payerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

type MockSpaceRepo struct {
	mock.Mock
}

func (m *MockSpaceRepo) GetByID(ctx context.Context, id int32) (*domain.Space, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Space), args.Error(1)
}

func (m *MockSpaceRepo) GetByNumber(ctx context.Context, number string) (*domain.Space, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Space), args.Error(1)
}

func (m *MockSpaceRepo) ListByZone(ctx context.Context, zoneID int32) ([]domain.Space, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Space), args.Error(1)
}

func (m *MockSpaceRepo) Update(ctx context.Context, space *domain.Space) error {
	args := m.Called(ctx, space)
	return args.Error(0)
}

type MockZoneRepo struct {
	mock.Mock
}

func (m *MockZoneRepo) GetByID(ctx context.Context, id int32) (*domain.Zone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Zone), args.Error(1)
}

func (m *MockZoneRepo) List(ctx context.Context) ([]domain.Zone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Zone), args.Error(1)
}

type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepo) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetActiveByVehicle(ctx context.Context, vehicleID int32, now time.Time) (*domain.Reservation, error) {
	args := m.Called(ctx, vehicleID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) Extend(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepo) Close(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepo) ListDue(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) ListEndingBetween(ctx context.Context, from, to time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) ListByPayer(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, payerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) ListByPayer(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, payerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, payerID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, payerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, payerID int32) error {
	args := m.Called(ctx, id, payerID)
	return args.Error(0)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Charge(ctx context.Context, payerID, amountCents int32, reservationID, description string) (*domain.Payment, error) {
	args := m.Called(ctx, payerID, amountCents, reservationID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockLedger) Deposit(ctx context.Context, payerID, amountCents int32, description string) (*domain.Payment, error) {
	args := m.Called(ctx, payerID, amountCents, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockLedger) GetBalance(ctx context.Context, payerID int32) (int32, error) {
	args := m.Called(ctx, payerID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockLedger) ListPayments(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	args := m.Called(ctx, payerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Get(1).(int32), args.Error(2)
}
