package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantScope is the set of tenants an actor may read or act upon
type TenantScope struct {
	// All marks the universal scope; TenantIDs is ignored when set
	All       bool
	TenantIDs []uuid.UUID
}

// UniversalScope returns the unrestricted scope
func UniversalScope() TenantScope {
	return TenantScope{All: true}
}

// Contains reports whether the tenant is inside the scope
func (s TenantScope) Contains(tenantID uuid.UUID) bool {
	if s.All {
		return true
	}
	for _, id := range s.TenantIDs {
		if id == tenantID {
			return true
		}
	}
	return false
}

// IDs returns the scope as a repository filter restriction: nil for the
// universal scope, otherwise the explicit id set (possibly empty, which
// matches nothing).
func (s TenantScope) IDs() []uuid.UUID {
	if s.All {
		return nil
	}
	if s.TenantIDs == nil {
		return []uuid.UUID{}
	}
	return s.TenantIDs
}

// Resolver computes tenant scopes for actors. The scope is derived fresh
// on every call and never cached across requests.
type Resolver struct {
	assignmentRepo identity.AgentAssignmentRepository
	logger         *zap.Logger
}

// NewResolver creates a new access scope resolver
func NewResolver(assignmentRepo identity.AgentAssignmentRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// ResolveTenantScope computes the tenant scope for the actor.
//
// ADMIN resolves to the universal scope. AGENT resolves to the assigned
// tenant set; zero assignments yield an empty scope, not an error. CLIENT
// resolves to the singleton of its home tenant; a client without a home
// tenant is an authorization fault. DEBTOR actors are never granted a
// tenant scope by this resolver.
func (r *Resolver) ResolveTenantScope(ctx context.Context, actor *identity.User) (TenantScope, error) {
	if actor == nil {
		return TenantScope{}, shared.ErrUnauthorized
	}

	switch actor.Role {
	case identity.RoleAdmin:
		return UniversalScope(), nil

	case identity.RoleAgent:
		tenantIDs, err := r.assignmentRepo.ListTenantIDs(ctx, actor.ID)
		if err != nil {
			r.logger.Error("failed to load agent assignments",
				zap.String("agent_id", actor.ID.String()),
				zap.Error(err))
			return TenantScope{}, err
		}
		if tenantIDs == nil {
			tenantIDs = []uuid.UUID{}
		}
		return TenantScope{TenantIDs: tenantIDs}, nil

	case identity.RoleClient:
		if actor.TenantID == nil || *actor.TenantID == uuid.Nil {
			r.logger.Warn("client user has no assigned tenant",
				zap.String("user_id", actor.ID.String()))
			return TenantScope{}, shared.NewDomainError("UNAUTHORIZED", "Client user has no assigned tenant")
		}
		return TenantScope{TenantIDs: []uuid.UUID{*actor.TenantID}}, nil

	case identity.RoleDebtor:
		return TenantScope{}, shared.NewDomainError("FORBIDDEN", "Debtor accounts have no tenant scope")
	}

	r.logger.Error("unknown actor role",
		zap.String("user_id", actor.ID.String()),
		zap.String("role", string(actor.Role)))
	return TenantScope{}, shared.ErrUnauthorized
}

// AuthorizeEntity checks whether the actor may act on an entity owned by
// the given tenant. The two denial outcomes stay distinguishable here;
// the transport layer may merge them to avoid leaking existence across
// tenant boundaries.
func (r *Resolver) AuthorizeEntity(ctx context.Context, actor *identity.User, entityTenantID uuid.UUID) error {
	scope, err := r.ResolveTenantScope(ctx, actor)
	if err != nil {
		return err
	}

	if !scope.Contains(entityTenantID) {
		r.logger.Info("entity outside actor scope",
			zap.String("user_id", actor.ID.String()),
			zap.String("role", string(actor.Role)),
			zap.String("entity_tenant_id", entityTenantID.String()))
		return shared.ErrAccessDenied
	}

	return nil
}
