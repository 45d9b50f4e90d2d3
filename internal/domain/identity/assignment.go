package identity

import (
	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/shared"
)

// AgentAssignment links an AGENT user to a tenant it may work on.
// The (AgentID, TenantID) pair is unique.
type AgentAssignment struct {
	shared.BaseEntity
	AgentID  uuid.UUID
	TenantID uuid.UUID
}

// NewAgentAssignment creates a new agent-tenant assignment
func NewAgentAssignment(agentID, tenantID uuid.UUID) (*AgentAssignment, error) {
	if agentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGENT_ID", "Agent ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}

	return &AgentAssignment{
		BaseEntity: shared.NewBaseEntity(),
		AgentID:    agentID,
		TenantID:   tenantID,
	}, nil
}
