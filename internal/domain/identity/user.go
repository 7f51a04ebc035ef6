package identity

import (
	"strings"
	"time"

	"github.com/bakeryops/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the user's permission level
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleAccountant UserRole = "accountant"
	RoleSales      UserRole = "sales"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a staff account in the system
// It is the aggregate root for user-related operations
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	FullName     string
	Role         UserRole
	IsActive     bool
	LastLoginAt  *time.Time
}

// NewUser creates a new active user with required fields
func NewUser(username, password, fullName string, role UserRole) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		PasswordHash:      passwordHash,
		FullName:          strings.TrimSpace(fullName),
		Role:              role,
		IsActive:          true,
	}, nil
}

// Update updates the user's profile information
func (u *User) Update(fullName string, role UserRole) error {
	if fullName != "" && len(fullName) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 200 characters")
	}
	if err := validateRole(role); err != nil {
		return err
	}

	u.FullName = strings.TrimSpace(fullName)
	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetPassword replaces the user's password
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// RecordLogin updates the last-login timestamp
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

// Activate activates the user
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.IsActive = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Deactivate deactivates the user
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}

	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin returns true if the user may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive
}

// Validation functions

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 50 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 50 characters")
	}
	for _, r := range username {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '.') {
			return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, and dots")
		}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateRole(role UserRole) error {
	switch role {
	case RoleAdmin, RoleAccountant, RoleSales:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Role must be 'admin', 'accountant' or 'sales'")
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
