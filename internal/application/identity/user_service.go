package identity

import (
	"context"
	"time"

	"github.com/bakeryops/backend/internal/domain/identity"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles staff account administration
type UserService struct {
	userRepo  identity.UserRepository
	blacklist TokenRevoker
	logger    *zap.Logger
}

// TokenRevoker revokes all of a user's sessions. Deactivating an
// account must take effect before the tokens expire.
type TokenRevoker interface {
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error
}

// sessionRevocationTTL covers the longest-lived refresh token
const sessionRevocationTTL = 7 * 24 * time.Hour

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, blacklist TokenRevoker, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Create registers a new staff account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this username already exists")
	}

	user, err := identity.NewUser(req.Username, req.Password, req.FullName, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, filter UserListFilter) (*shared.Paginated[UserResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "username",
		OrderDir: "asc",
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToUserResponses(users), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a user's profile
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fullName := user.FullName
	if req.FullName != nil {
		fullName = *req.FullName
	}
	role := user.Role
	if req.Role != nil {
		role = identity.UserRole(*req.Role)
	}

	if err := user.Update(fullName, role); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// ResetPassword sets a new password for a user (admin operation)
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password reset", zap.String("user_id", userID.String()))

	return nil
}

// Deactivate disables a user account and revokes its sessions
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), sessionRevocationTTL); err != nil {
		// The account is already disabled; session revocation failing
		// only delays the lockout until token expiry.
		s.logger.Error("Failed to revoke sessions for deactivated user",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	s.logger.Info("User deactivated", zap.String("user_id", userID.String()))

	response := ToUserResponse(user)
	return &response, nil
}

// Activate re-enables a user account
func (s *UserService) Activate(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Activate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}
