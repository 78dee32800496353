package service

import (
	"context"
	"errors"
	"strings"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUserNotFound is returned when no user matches the given id or email.
var ErrUserNotFound = errors.New("user not found")

// UserService handles account registration, login and profile management.
type UserService struct {
	userRepo *repository.UserRepository
	authSvc  *AuthService
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, authSvc *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		authSvc:  authSvc,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// Register creates a new account and signs it in. The very first account in
// an empty system becomes an administrator; everyone after that is a regular
// user.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, *model.TokenPair, error) {
	hash, err := s.authSvc.HashPassword(req.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		return nil, nil, err
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, nil, err
	}
	roles := []string{model.RoleUser}
	if total == 0 {
		roles = []string{model.RoleAdmin}
	}

	u := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: hash,
		Roles:        roles,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	tokens, err := s.authSvc.GenerateTokenPair(u)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("user_id", u.ID.String()).Strs("roles", u.Roles).Msg("user registered")
	return u, tokens, nil
}

// Login authenticates an email/password pair. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, *model.TokenPair, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := s.authSvc.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.authSvc.GenerateTokenPair(u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. Roles are
// re-read from the database so revocations take effect on the next refresh.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := s.authSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	id, err := claims.SubjectID()
	if err != nil {
		return nil, ErrTokenInvalid
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.authSvc.GenerateTokenPair(u)
}

// GetByID retrieves a user.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile modifies a user's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.FullName != "" {
		u.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Phone != "" {
		u.Phone = strings.TrimSpace(req.Phone)
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AssignRoles replaces a user's role set. Admin only, enforced upstream.
func (s *UserService) AssignRoles(ctx context.Context, id uuid.UUID, roles []string) (*model.User, error) {
	if err := s.userRepo.UpdateRoles(ctx, id, roles); err != nil {
		return nil, ErrUserNotFound
	}
	s.log.Info().Str("user_id", id.String()).Strs("roles", roles).Msg("roles assigned")
	return s.userRepo.GetByID(ctx, id)
}

// List retrieves users page by page, newest first.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]model.User, int, int, error) {
	page, perPage = clampPage(page, perPage)
	users, total, err := s.userRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, 0, err
	}
	return users, total, totalPages(total, perPage), nil
}
