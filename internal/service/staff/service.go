package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hmiyata/schedule-api/internal/model"
	"github.com/hmiyata/schedule-api/internal/repository"
	apperrors "github.com/hmiyata/schedule-api/pkg/errors"
	"github.com/hmiyata/schedule-api/pkg/security"
	"github.com/hmiyata/schedule-api/pkg/validator"
)

// Refresher receives the coarse staleness signal after every mutation.
type Refresher interface {
	Refresh(ctx context.Context)
}

type Service struct {
	repo      repository.StaffRepository
	hasher    security.PasswordHasher
	refresher Refresher
	validator validator.Validator
	logger    zerolog.Logger
}

func NewService(repo repository.StaffRepository, hasher security.PasswordHasher, refresher Refresher, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		hasher:    hasher,
		refresher: refresher,
		validator: validator.New(),
		logger:    logger,
	}
}

// Create inserts one staff member. The email pre-check is a fast-path UX
// nicety only; the store's unique constraint is the source of truth and the
// repository maps its violation to the duplicate-email error.
func (s *Service) Create(ctx context.Context, req *model.CreateStaffRequest) (*model.Staff, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperrors.DuplicateEmail(req.Email)
	} else if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn().Err(err).Msg("email pre-check failed, deferring to store constraint")
	}

	var passwordHash string
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, apperrors.Validation("password does not meet requirements")
		}
		passwordHash = hash
	}

	staff := &model.Staff{
		Name:  req.Name,
		Email: req.Email,
	}
	if err := s.repo.Create(ctx, staff, passwordHash); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Store("failed to create staff member", err)
	}

	s.logger.Info().
		Str("staff_id", staff.ID.String()).
		Str("email", staff.Email).
		Msg("staff member created")

	s.refresher.Refresh(ctx)
	return staff, nil
}

// List returns staff ordered by name. Store failures surface as Unavailable
// so callers can tell "nobody registered" from "could not read".
func (s *Service) List(ctx context.Context) ([]*model.Staff, error) {
	staff, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}
	if staff == nil {
		staff = []*model.Staff{}
	}
	return staff, nil
}

// Delete removes the staff member; owned slots cascade away at the store.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Store("failed to delete staff member", err)
	}

	s.logger.Info().Str("staff_id", id.String()).Msg("staff member deleted")

	s.refresher.Refresh(ctx)
	return nil
}
