package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email          string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	DisplayName    string              `gorm:"type:varchar(200)"`
	Role           identity.Role       `gorm:"type:varchar(20);not null;index"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	TenantID       *uuid.UUID          `gorm:"type:uuid;index"`
	DebtorID       *uuid.UUID          `gorm:"type:uuid;index"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		DisplayName:    m.DisplayName,
		Role:           m.Role,
		Status:         m.Status,
		TenantID:       m.TenantID,
		DebtorID:       m.DebtorID,
		LastLoginAt:    m.LastLoginAt,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Role = u.Role
	m.Status = u.Status
	m.TenantID = u.TenantID
	m.DebtorID = u.DebtorID
	m.LastLoginAt = u.LastLoginAt
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// UserModelFromDomain creates a new persistence model from a domain User entity
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// AgentAssignmentModel is the persistence model for agent-tenant assignments.
// The agent-tenant pair is unique.
type AgentAssignmentModel struct {
	BaseModel
	AgentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_agent_tenant;index"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_agent_tenant;index"`
}

// TableName returns the table name for GORM
func (AgentAssignmentModel) TableName() string {
	return "agent_assignments"
}

// ToDomain converts the persistence model to a domain AgentAssignment
func (m *AgentAssignmentModel) ToDomain() *identity.AgentAssignment {
	return &identity.AgentAssignment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		AgentID:  m.AgentID,
		TenantID: m.TenantID,
	}
}

// FromDomain populates the persistence model from a domain AgentAssignment
func (m *AgentAssignmentModel) FromDomain(a *identity.AgentAssignment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.AgentID = a.AgentID
	m.TenantID = a.TenantID
}
