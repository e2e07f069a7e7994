package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hmiyata/schedule-api/internal/model"
	"github.com/hmiyata/schedule-api/internal/repository"
	"github.com/hmiyata/schedule-api/pkg/auth"
	apperrors "github.com/hmiyata/schedule-api/pkg/errors"
	"github.com/hmiyata/schedule-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service is the single authentication boundary: bcrypt-verified per-staff
// credentials and JWT sessions. There is no fallback password path.
type Service struct {
	staffRepo repository.StaffRepository
	jwtSvc    auth.JWTService
	hasher    security.PasswordHasher
	logger    zerolog.Logger
}

func NewService(staffRepo repository.StaffRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher, logger zerolog.Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		jwtSvc:    jwtSvc,
		hasher:    hasher,
		logger:    logger,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthorized(ErrInvalidCredentials)
	}

	cred, err := s.staffRepo.GetCredential(ctx, staff.ID)
	if err != nil {
		return nil, apperrors.Unauthorized(ErrInvalidCredentials)
	}

	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		s.logger.Warn().Str("email", email).Msg("failed login attempt")
		return nil, apperrors.Unauthorized(ErrInvalidCredentials)
	}

	tokens, err := s.jwtSvc.GenerateAccessToken(staff)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info().Str("staff_id", staff.ID.String()).Msg("staff signed in")
	return tokens, nil
}

// ValidateToken resolves a bearer token into session claims. Expired tokens
// are treated the same as absent ones.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

// Logout exists for client symmetry. Sessions are stateless JWTs, so the
// server has nothing to revoke; the client discards the token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return nil
}
