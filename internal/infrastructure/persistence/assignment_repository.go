package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/inkasso/backend/internal/infrastructure/persistence/models"
)

// GormAgentAssignmentRepository implements identity.AgentAssignmentRepository using GORM
type GormAgentAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAgentAssignmentRepository creates a new GormAgentAssignmentRepository
func NewGormAgentAssignmentRepository(db *gorm.DB) *GormAgentAssignmentRepository {
	return &GormAgentAssignmentRepository{db: db}
}

// Create creates a new assignment.
// A duplicate agent-tenant pair surfaces as ErrAlreadyExists.
func (r *GormAgentAssignmentRepository) Create(ctx context.Context, assignment *identity.AgentAssignment) error {
	model := &models.AgentAssignmentModel{}
	model.FromDomain(assignment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes the assignment for the given agent-tenant pair
func (r *GormAgentAssignmentRepository) Delete(ctx context.Context, agentID, tenantID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("agent_id = ? AND tenant_id = ?", agentID, tenantID).
		Delete(&models.AgentAssignmentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists checks whether the agent-tenant pair exists
func (r *GormAgentAssignmentRepository) Exists(ctx context.Context, agentID, tenantID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AgentAssignmentModel{}).
		Where("agent_id = ? AND tenant_id = ?", agentID, tenantID).
		Count(&count).Error
	return count > 0, err
}

// ListTenantIDs returns the tenant IDs assigned to an agent
func (r *GormAgentAssignmentRepository) ListTenantIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error) {
	tenantIDs := make([]uuid.UUID, 0)
	err := r.db.WithContext(ctx).Model(&models.AgentAssignmentModel{}).
		Where("agent_id = ?", agentID).
		Order("created_at ASC").
		Pluck("tenant_id", &tenantIDs).Error
	if err != nil {
		return nil, err
	}
	return tenantIDs, nil
}

// ListByTenant returns all assignments for a tenant
func (r *GormAgentAssignmentRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*identity.AgentAssignment, error) {
	var assignmentModels []models.AgentAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]*identity.AgentAssignment, len(assignmentModels))
	for i := range assignmentModels {
		assignments[i] = assignmentModels[i].ToDomain()
	}
	return assignments, nil
}

// CountByTenant returns the number of agents assigned to a tenant
func (r *GormAgentAssignmentRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AgentAssignmentModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
