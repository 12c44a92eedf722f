package service

import (
	"context"
	"fmt"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/repository"
)

type spaceService struct {
	spaceRepo repository.SpaceRepository
	zoneRepo  repository.ZoneRepository
}

func NewSpaceService(spaceRepo repository.SpaceRepository, zoneRepo repository.ZoneRepository) SpaceService {
	return &spaceService{spaceRepo: spaceRepo, zoneRepo: zoneRepo}
}

func (s *spaceService) GetSpace(ctx context.Context, id int32) (*domain.Space, error) {
	return s.spaceRepo.GetByID(ctx, id)
}

func (s *spaceService) FindSpaceByNumber(ctx context.Context, number string) (*domain.Space, error) {
	if number == "" {
		return nil, fmt.Errorf("%w: space number is required", domain.ErrInvalidRequest)
	}
	return s.spaceRepo.GetByNumber(ctx, number)
}

func (s *spaceService) ListSpacesByZone(ctx context.Context, zoneID int32) ([]domain.Space, error) {
	if _, err := s.zoneRepo.GetByID(ctx, zoneID); err != nil {
		return nil, err
	}
	return s.spaceRepo.ListByZone(ctx, zoneID)
}

func (s *spaceService) ListZones(ctx context.Context) ([]domain.Zone, error) {
	return s.zoneRepo.List(ctx)
}
