package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hmiyata/schedule-api/internal/model"
	"github.com/hmiyata/schedule-api/internal/repository"
	apperrors "github.com/hmiyata/schedule-api/pkg/errors"
	"github.com/hmiyata/schedule-api/pkg/validator"
)

// Refresher receives the coarse staleness signal after every mutation.
type Refresher interface {
	Refresh(ctx context.Context)
}

type Service struct {
	repo      repository.SlotRepository
	refresher Refresher
	validator validator.Validator
	logger    zerolog.Logger
}

func NewService(repo repository.SlotRepository, refresher Refresher, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		refresher: refresher,
		validator: validator.New(),
		logger:    logger,
	}
}

// CreateBatch inserts one slot per window for a single day. The write is
// all-or-nothing; nothing reaches the store when validation fails.
func (s *Service) CreateBatch(ctx context.Context, req *model.CreateSlotBatchRequest) ([]*model.AvailableSlot, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if len(req.Windows) == 0 {
		return nil, apperrors.Validation("at least one time window is required")
	}
	for i, w := range req.Windows {
		if !w.Start.Before(w.End) {
			return nil, apperrors.Validation(fmt.Sprintf("window %d: start time must precede end time", i+1))
		}
	}

	slots, err := s.repo.CreateBatch(ctx, req.StaffID, req.Date, req.Windows)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Store("failed to add availability slots", err)
	}

	s.logger.Info().
		Str("staff_id", req.StaffID.String()).
		Str("date", req.Date.String()).
		Int("count", len(slots)).
		Msg("slot batch created")

	s.refresher.Refresh(ctx)
	return slots, nil
}

// List returns slots joined with the owner name, ordered by date then start
// time. A nil filter lists every owner. Store failures surface as
// Unavailable, never as an empty result.
func (s *Service) List(ctx context.Context, filters *model.SlotFilters) ([]*model.AvailableSlot, error) {
	slots, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	if slots == nil {
		slots = []*model.AvailableSlot{}
	}
	return slots, nil
}

// SetCapacity updates only the capacity flag. Setting the same value twice
// is a no-op observably; concurrent toggles are last-write-wins.
func (s *Service) SetCapacity(ctx context.Context, id uuid.UUID, isFull bool) error {
	if err := s.repo.SetFull(ctx, id, isFull); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Store("failed to update slot capacity", err)
	}

	s.logger.Info().
		Str("slot_id", id.String()).
		Bool("is_full", isFull).
		Msg("slot capacity updated")

	s.refresher.Refresh(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Store("failed to delete slot", err)
	}

	s.logger.Info().Str("slot_id", id.String()).Msg("slot deleted")

	s.refresher.Refresh(ctx)
	return nil
}
