package equipment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

type Service struct {
	repo repository.EquipmentRepository
}

func NewService(repo repository.EquipmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, e *model.Equipment) (*model.Equipment, error) {
	if e.Status == "" {
		e.Status = model.EquipmentStatusAvailable
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Equipment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req model.UpdateEquipmentRequest) (*model.Equipment, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(e)
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	if !removed {
		return apperrors.NewNotFound("Equipment", nil)
	}
	return nil
}
