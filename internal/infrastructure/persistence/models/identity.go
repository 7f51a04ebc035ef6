package models

import (
	"time"

	"github.com/bakeryops/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	AggregateModel
	Username     string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	PasswordHash string            `gorm:"type:varchar(100);not null"`
	FullName     string            `gorm:"type:varchar(200)"`
	Role         identity.UserRole `gorm:"type:varchar(20);not null"`
	IsActive     bool              `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		Role:              m.Role,
		IsActive:          m.IsActive,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.FullName = u.FullName
	m.Role = u.Role
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
