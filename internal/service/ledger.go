package service

import (
	"context"
	"errors"
	"fmt"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/locks"
	"totalpark-backend/internal/observability/metrics"
	"totalpark-backend/internal/repository"
)

type ledgerService struct {
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	payerLocks  *locks.KeyedMutex
}

func NewLedgerService(userRepo repository.UserRepository, paymentRepo repository.PaymentRepository) LedgerService {
	return &ledgerService{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		payerLocks:  locks.NewKeyedMutex(),
	}
}

func payerKey(payerID int32) string {
	return fmt.Sprintf("payer/%d", payerID)
}

// Charge debits the payer's prepaid balance and appends exactly one payment
// record with the post-charge balance snapshot. The debit is a conditional
// write, so a rejected charge deducts nothing; the per-payer lock keeps the
// snapshot in step with the balance under concurrent charges.
func (s *ledgerService) Charge(ctx context.Context, payerID, amountCents int32, reservationID, description string) (*domain.Payment, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: charge amount must be positive", domain.ErrInvalidRequest)
	}

	key := payerKey(payerID)
	s.payerLocks.Lock(key)
	defer s.payerLocks.Unlock(key)

	balance, err := s.userRepo.DebitBalance(ctx, payerID, amountCents)
	if err != nil {
		if isInsufficient(err) {
			metrics.ChargesRejected.Inc()
		}
		return nil, err
	}

	payment := &domain.Payment{
		PayerID:      payerID,
		Type:         domain.PaymentTypeCharge,
		AmountCents:  amountCents,
		BalanceCents: balance,
		Description:  description,
	}
	if reservationID != "" {
		payment.ReservationID = &reservationID
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	metrics.ChargesApplied.Inc()
	return payment, nil
}

func (s *ledgerService) Deposit(ctx context.Context, payerID, amountCents int32, description string) (*domain.Payment, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidRequest)
	}

	key := payerKey(payerID)
	s.payerLocks.Lock(key)
	defer s.payerLocks.Unlock(key)

	balance, err := s.userRepo.CreditBalance(ctx, payerID, amountCents)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		PayerID:      payerID,
		Type:         domain.PaymentTypeDeposit,
		AmountCents:  amountCents,
		BalanceCents: balance,
		Description:  description,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, payerID int32) (int32, error) {
	user, err := s.userRepo.GetByID(ctx, payerID)
	if err != nil {
		return 0, err
	}
	return user.BalanceCents, nil
}

func (s *ledgerService) ListPayments(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	return s.paymentRepo.ListByPayer(ctx, payerID, page, pageSize)
}

func isInsufficient(err error) bool {
	return errors.Is(err, domain.ErrInsufficientFunds)
}
