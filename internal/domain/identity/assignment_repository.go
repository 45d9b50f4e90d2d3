package identity

import (
	"context"

	"github.com/google/uuid"
)

// AgentAssignmentRepository defines the interface for agent assignment persistence
type AgentAssignmentRepository interface {
	// Create creates a new assignment
	Create(ctx context.Context, assignment *AgentAssignment) error

	// Delete removes the assignment for the given agent-tenant pair
	Delete(ctx context.Context, agentID, tenantID uuid.UUID) error

	// Exists checks whether the agent-tenant pair exists
	Exists(ctx context.Context, agentID, tenantID uuid.UUID) (bool, error)

	// ListTenantIDs returns the tenant IDs assigned to an agent
	ListTenantIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error)

	// ListByTenant returns all assignments for a tenant
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*AgentAssignment, error)

	// CountByTenant returns the number of agents assigned to a tenant
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
