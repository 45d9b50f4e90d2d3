package collection

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/collection"
	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AssignmentService manages the agent-tenant assignment relation. ADMIN only.
type AssignmentService struct {
	assignmentRepo identity.AgentAssignmentRepository
	userRepo       identity.UserRepository
	tenantRepo     collection.TenantRepository
	logger         *zap.Logger
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo identity.AgentAssignmentRepository,
	userRepo identity.UserRepository,
	tenantRepo collection.TenantRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		tenantRepo:     tenantRepo,
		logger:         logger,
	}
}

// Assign grants an agent access to a tenant
func (s *AssignmentService) Assign(ctx context.Context, actor *identity.User, agentID, tenantID uuid.UUID) (*AssignmentDTO, error) {
	if err := requireAdmin(actor, "Only administrators can manage agent assignments"); err != nil {
		return nil, err
	}

	agent, err := s.userRepo.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if agent.Role != identity.RoleAgent {
		return nil, shared.NewDomainError("INVALID_INPUT", "Assignments can only target agent users")
	}

	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	exists, err := s.assignmentRepo.Exists(ctx, agentID, tenantID)
	if err != nil {
		s.logger.Error("Failed to check assignment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check assignment")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Agent is already assigned to this tenant")
	}

	assignment, err := identity.NewAgentAssignment(agentID, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		if isAlreadyExists(err) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Agent is already assigned to this tenant")
		}
		s.logger.Error("Failed to create assignment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create assignment")
	}

	s.logger.Info("Agent assigned to tenant",
		zap.String("agent_id", agentID.String()),
		zap.String("tenant_id", tenantID.String()))

	return &AssignmentDTO{
		ID:        assignment.ID,
		AgentID:   assignment.AgentID,
		TenantID:  assignment.TenantID,
		CreatedAt: assignment.CreatedAt,
	}, nil
}

// Unassign revokes an agent's access to a tenant
func (s *AssignmentService) Unassign(ctx context.Context, actor *identity.User, agentID, tenantID uuid.UUID) error {
	if err := requireAdmin(actor, "Only administrators can manage agent assignments"); err != nil {
		return err
	}

	exists, err := s.assignmentRepo.Exists(ctx, agentID, tenantID)
	if err != nil {
		s.logger.Error("Failed to check assignment", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check assignment")
	}
	if !exists {
		return shared.ErrNotFound
	}

	if err := s.assignmentRepo.Delete(ctx, agentID, tenantID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		s.logger.Error("Failed to delete assignment", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete assignment")
	}

	s.logger.Info("Agent unassigned from tenant",
		zap.String("agent_id", agentID.String()),
		zap.String("tenant_id", tenantID.String()))

	return nil
}

// ListForTenant returns all assignments of a tenant. ADMIN only.
func (s *AssignmentService) ListForTenant(ctx context.Context, actor *identity.User, tenantID uuid.UUID) ([]AssignmentDTO, error) {
	if err := requireAdmin(actor, "Only administrators can view agent assignments"); err != nil {
		return nil, err
	}

	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to list assignments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list assignments")
	}

	dtos := make([]AssignmentDTO, 0, len(assignments))
	for _, assignment := range assignments {
		dtos = append(dtos, AssignmentDTO{
			ID:        assignment.ID,
			AgentID:   assignment.AgentID,
			TenantID:  assignment.TenantID,
			CreatedAt: assignment.CreatedAt,
		})
	}
	return dtos, nil
}
