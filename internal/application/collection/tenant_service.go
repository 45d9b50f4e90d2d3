package collection

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/application/access"
	"github.com/inkasso/backend/internal/domain/collection"
	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantService handles the tenant lifecycle. Every operation takes the
// acting user explicitly and re-derives its scope through the resolver.
type TenantService struct {
	tenantRepo     collection.TenantRepository
	assignmentRepo identity.AgentAssignmentRepository
	resolver       *access.Resolver
	logger         *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo collection.TenantRepository,
	assignmentRepo identity.AgentAssignmentRepository,
	resolver *access.Resolver,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:     tenantRepo,
		assignmentRepo: assignmentRepo,
		resolver:       resolver,
		logger:         logger,
	}
}

// List returns the tenants inside the actor's scope, each annotated with
// summary counts.
func (s *TenantService) List(ctx context.Context, actor *identity.User, input ListTenantsInput) (*TenantListResult, error) {
	scope, err := s.resolver.ResolveTenantScope(ctx, actor)
	if err != nil {
		return nil, err
	}

	ids := scope.IDs()
	if input.AssignedToMe {
		mine, err := s.assignmentRepo.ListTenantIDs(ctx, actor.ID)
		if err != nil {
			s.logger.Error("Failed to load own assignments", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load assignments")
		}
		ids = intersectScope(ids, mine)
	}

	filter := collection.NewTenantFilter().
		WithIDs(ids).
		WithKeyword(input.Keyword).
		WithPagination(input.Page, input.PageSize)

	tenants, total, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list tenants", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tenants")
	}

	tenantIDs := make([]uuid.UUID, 0, len(tenants))
	for _, tenant := range tenants {
		tenantIDs = append(tenantIDs, tenant.ID)
	}

	summaries, err := s.tenantRepo.Summaries(ctx, tenantIDs)
	if err != nil {
		s.logger.Error("Failed to compute tenant summaries", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute tenant summaries")
	}

	dtos := make([]TenantDTO, 0, len(tenants))
	for _, tenant := range tenants {
		dtos = append(dtos, toTenantDTO(tenant, summaries[tenant.ID]))
	}

	return &TenantListResult{
		Tenants:    dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
		TotalPages: shared.TotalPages(total, filter.Limit()),
	}, nil
}

// GetByID returns a single tenant with its summary. A tenant outside the
// actor's scope yields ErrAccessDenied, an absent tenant ErrNotFound.
func (s *TenantService) GetByID(ctx context.Context, actor *identity.User, tenantID uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.AuthorizeEntity(ctx, actor, tenant.ID); err != nil {
		return nil, err
	}

	summaries, err := s.tenantRepo.Summaries(ctx, []uuid.UUID{tenant.ID})
	if err != nil {
		s.logger.Error("Failed to compute tenant summary", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute tenant summary")
	}

	dto := toTenantDTO(tenant, summaries[tenant.ID])
	return &dto, nil
}

// Create creates a new tenant. ADMIN only.
func (s *TenantService) Create(ctx context.Context, actor *identity.User, input CreateTenantInput) (*TenantDTO, error) {
	if err := requireAdmin(actor, "Only administrators can create tenants"); err != nil {
		return nil, err
	}

	s.logger.Info("Creating tenant",
		zap.String("name", input.Name),
		zap.String("registration_no", input.RegistrationNo))

	tenant, err := collection.NewTenant(input.Name, input.RegistrationNo, input.ContactEmail, input.PayoutIBAN)
	if err != nil {
		return nil, err
	}

	exists, err := s.tenantRepo.ExistsByRegistrationNo(ctx, tenant.RegistrationNo, uuid.Nil)
	if err != nil {
		s.logger.Error("Failed to check registration number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check registration number availability")
	}
	if exists {
		return nil, errRegistrationNoTaken()
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		// The unique index catches races the pre-check missed
		if isAlreadyExists(err) {
			return nil, errRegistrationNoTaken()
		}
		s.logger.Error("Failed to create tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tenant")
	}

	s.logger.Info("Tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("registration_no", tenant.RegistrationNo))

	dto := toTenantDTO(tenant, collection.TenantSummary{TenantID: tenant.ID})
	return &dto, nil
}

// Update updates an existing tenant. ADMIN only. A tenant keeping its own
// registration number succeeds; taking another tenant's number is a conflict.
func (s *TenantService) Update(ctx context.Context, actor *identity.User, tenantID uuid.UUID, input UpdateTenantInput) (*TenantDTO, error) {
	if err := requireAdmin(actor, "Only administrators can update tenants"); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := tenant.Update(input.Name, input.RegistrationNo, input.ContactEmail, input.PayoutIBAN); err != nil {
		return nil, err
	}

	exists, err := s.tenantRepo.ExistsByRegistrationNo(ctx, tenant.RegistrationNo, tenant.ID)
	if err != nil {
		s.logger.Error("Failed to check registration number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check registration number availability")
	}
	if exists {
		return nil, errRegistrationNoTaken()
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		if isAlreadyExists(err) {
			return nil, errRegistrationNoTaken()
		}
		s.logger.Error("Failed to update tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tenant")
	}

	s.logger.Info("Tenant updated", zap.String("tenant_id", tenant.ID.String()))

	summaries, err := s.tenantRepo.Summaries(ctx, []uuid.UUID{tenant.ID})
	if err != nil {
		summaries = map[uuid.UUID]collection.TenantSummary{}
	}

	dto := toTenantDTO(tenant, summaries[tenant.ID])
	return &dto, nil
}

// Delete removes a tenant. ADMIN only. The delete is guarded: a tenant
// still referenced by debtors or cases cannot be removed.
func (s *TenantService) Delete(ctx context.Context, actor *identity.User, tenantID uuid.UUID) error {
	if err := requireAdmin(actor, "Only administrators can delete tenants"); err != nil {
		return err
	}

	if err := s.tenantRepo.DeleteGuarded(ctx, tenantID); err != nil {
		if errors.Is(err, collection.ErrTenantHasDependents) {
			debtors, cases, countErr := s.tenantRepo.CountDependents(ctx, tenantID)
			if countErr == nil {
				s.logger.Warn("Tenant delete refused, dependents exist",
					zap.String("tenant_id", tenantID.String()),
					zap.Int64("debtors", debtors),
					zap.Int64("cases", cases))
			}
			return err
		}
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to delete tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err))
		}
		return err
	}

	s.logger.Info("Tenant deleted", zap.String("tenant_id", tenantID.String()))

	return nil
}

func errRegistrationNoTaken() error {
	return shared.NewDomainError("ALREADY_EXISTS", "A tenant with this registration number already exists")
}

func requireAdmin(actor *identity.User, message string) error {
	if actor == nil {
		return shared.ErrUnauthorized
	}
	if actor.Role != identity.RoleAdmin {
		return shared.NewDomainError("FORBIDDEN", message)
	}
	return nil
}

func isAlreadyExists(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrAlreadyExists.Code
	}
	return false
}

// intersectScope narrows a scope restriction by a second id set.
// A nil restriction means unrestricted and yields the second set as-is.
func intersectScope(ids, other []uuid.UUID) []uuid.UUID {
	if other == nil {
		other = []uuid.UUID{}
	}
	if ids == nil {
		return other
	}
	allowed := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	result := make([]uuid.UUID, 0, len(other))
	for _, id := range other {
		if _, ok := allowed[id]; ok {
			result = append(result, id)
		}
	}
	return result
}
