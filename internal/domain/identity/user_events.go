package identity

import (
	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/shared"
)

// Aggregate type constants for identity
const (
	AggregateTypeUser            = "User"
	AggregateTypeAgentAssignment = "AgentAssignment"
)

// Identity domain event types
const (
	EventTypeUserCreated     = "UserCreated"
	EventTypeUserDeactivated = "UserDeactivated"
	EventTypeAgentAssigned   = "AgentAssigned"
	EventTypeAgentUnassigned = "AgentUnassigned"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, user.HomeTenantID()),
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserDeactivatedEvent is published when a user is deactivated
type UserDeactivatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserDeactivatedEvent creates a new UserDeactivatedEvent
func NewUserDeactivatedEvent(user *User) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeactivated, AggregateTypeUser, user.ID, user.HomeTenantID()),
		Email:           user.Email,
	}
}

// AgentAssignedEvent is published when an agent is assigned to a tenant
type AgentAssignedEvent struct {
	shared.BaseDomainEvent
	AgentID uuid.UUID `json:"agent_id"`
}

// NewAgentAssignedEvent creates a new AgentAssignedEvent
func NewAgentAssignedEvent(assignment *AgentAssignment) *AgentAssignedEvent {
	return &AgentAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgentAssigned, AggregateTypeAgentAssignment, assignment.ID, assignment.TenantID),
		AgentID:         assignment.AgentID,
	}
}
