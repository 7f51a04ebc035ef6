package identity

import (
	"context"
	"testing"

	"github.com/bakeryops/backend/internal/domain/identity"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userFixture struct {
	userRepo  *MockUserRepository
	blacklist *auth.InMemoryTokenBlacklist
	service   *UserService
}

func newUserFixture() *userFixture {
	userRepo := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()

	return &userFixture{
		userRepo:  userRepo,
		blacklist: blacklist,
		service:   NewUserService(userRepo, blacklist, zap.NewNop()),
	}
}

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		f := newUserFixture()

		f.userRepo.On("ExistsByUsername", ctx, "Karim").Return(false, nil)
		f.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := f.service.Create(ctx, CreateUserRequest{
			Username: "Karim",
			Password: "secret123",
			FullName: "Karim Rahimov",
			Role:     "accountant",
		})

		require.NoError(t, err)
		assert.Equal(t, "karim", resp.Username)
		assert.Equal(t, "accountant", resp.Role)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		f := newUserFixture()

		f.userRepo.On("ExistsByUsername", ctx, "karim").Return(true, nil)

		_, err := f.service.Create(ctx, CreateUserRequest{
			Username: "karim",
			Password: "secret123",
			Role:     "sales",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an invalid role", func(t *testing.T) {
		f := newUserFixture()

		f.userRepo.On("ExistsByUsername", ctx, "karim").Return(false, nil)

		_, err := f.service.Create(ctx, CreateUserRequest{
			Username: "karim",
			Password: "secret123",
			Role:     "manager",
		})

		assert.Error(t, err)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("changes role and full name", func(t *testing.T) {
		f := newUserFixture()
		user, err := identity.NewUser("karim", "secret123", "Karim", identity.RoleSales)
		require.NoError(t, err)

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		newRole := "admin"
		resp, err := f.service.Update(ctx, user.ID, UpdateUserRequest{Role: &newRole})

		require.NoError(t, err)
		assert.Equal(t, "admin", resp.Role)
		assert.Equal(t, "Karim", resp.FullName)
	})
}

func TestUserServiceDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("disables the account and revokes its sessions", func(t *testing.T) {
		f := newUserFixture()
		user, err := identity.NewUser("karim", "secret123", "Karim", identity.RoleSales)
		require.NoError(t, err)

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		resp, err := f.service.Deactivate(ctx, user.ID)

		require.NoError(t, err)
		assert.False(t, resp.IsActive)

		invalidated, err := f.blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), user.CreatedAt)
		require.NoError(t, err)
		assert.True(t, invalidated)
	})

	t.Run("fails on an already inactive account", func(t *testing.T) {
		f := newUserFixture()
		user, err := identity.NewUser("karim", "secret123", "Karim", identity.RoleSales)
		require.NoError(t, err)
		require.NoError(t, user.Deactivate())

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err = f.service.Deactivate(ctx, user.ID)

		assert.Error(t, err)
	})
}

func TestUserServiceResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("sets a new password", func(t *testing.T) {
		f := newUserFixture()
		user, err := identity.NewUser("karim", "secret123", "Karim", identity.RoleSales)
		require.NoError(t, err)

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		require.NoError(t, f.service.ResetPassword(ctx, user.ID, "freshsecret"))
		assert.True(t, user.VerifyPassword("freshsecret"))
	})

	t.Run("fails for an unknown user", func(t *testing.T) {
		f := newUserFixture()
		userID := uuid.New()

		f.userRepo.On("FindByID", ctx, userID).Return(nil, shared.ErrNotFound)

		assert.ErrorIs(t, f.service.ResetPassword(ctx, userID, "freshsecret"), shared.ErrNotFound)
	})
}
