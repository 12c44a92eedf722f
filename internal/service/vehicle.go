package service

import (
	"context"
	"fmt"
	"strings"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle == nil {
		return fmt.Errorf("%w: nil vehicle", domain.ErrInvalidRequest)
	}
	vehicle.RegistrationPlate = strings.ToUpper(strings.TrimSpace(vehicle.RegistrationPlate))
	if vehicle.RegistrationPlate == "" {
		return fmt.Errorf("%w: registration plate is required", domain.ErrInvalidRequest)
	}

	existing, err := s.vehicleRepo.ListByPayer(ctx, vehicle.PayerID)
	if err != nil {
		return err
	}
	for _, v := range existing {
		if v.RegistrationPlate == vehicle.RegistrationPlate {
			return fmt.Errorf("%w: plate %s is already registered", domain.ErrConflict, vehicle.RegistrationPlate)
		}
	}

	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *vehicleService) ListVehicles(ctx context.Context, payerID int32) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListByPayer(ctx, payerID)
}
