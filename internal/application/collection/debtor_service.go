package collection

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/application/access"
	"github.com/inkasso/backend/internal/domain/collection"
	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DebtorService exposes the scoped debtor read model. Debtors are created
// by the intake collaborator; this service only reads them.
type DebtorService struct {
	debtorRepo collection.DebtorRepository
	resolver   *access.Resolver
	logger     *zap.Logger
}

// NewDebtorService creates a new debtor service
func NewDebtorService(
	debtorRepo collection.DebtorRepository,
	resolver *access.Resolver,
	logger *zap.Logger,
) *DebtorService {
	return &DebtorService{
		debtorRepo: debtorRepo,
		resolver:   resolver,
		logger:     logger,
	}
}

// List returns the debtors inside the actor's scope
func (s *DebtorService) List(ctx context.Context, actor *identity.User, input ListDebtorsInput) (*DebtorListResult, error) {
	scope, err := s.resolver.ResolveTenantScope(ctx, actor)
	if err != nil {
		return nil, err
	}

	ids := scope.IDs()
	if input.TenantID != nil {
		if !scope.Contains(*input.TenantID) {
			return nil, shared.ErrAccessDenied
		}
		ids = []uuid.UUID{*input.TenantID}
	}

	filter := collection.NewDebtorFilter().
		WithTenantIDs(ids).
		WithKeyword(input.Keyword).
		WithPagination(input.Page, input.PageSize)

	debtors, total, err := s.debtorRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list debtors", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list debtors")
	}

	dtos := make([]DebtorDTO, 0, len(debtors))
	for _, debtor := range debtors {
		dtos = append(dtos, toDebtorDTO(debtor))
	}

	return &DebtorListResult{
		Debtors:    dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
		TotalPages: shared.TotalPages(total, filter.Limit()),
	}, nil
}

// GetByID returns a single debtor inside the actor's scope
func (s *DebtorService) GetByID(ctx context.Context, actor *identity.User, debtorID uuid.UUID) (*DebtorDTO, error) {
	debtor, err := s.debtorRepo.FindByID(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.AuthorizeEntity(ctx, actor, debtor.TenantID); err != nil {
		return nil, err
	}

	dto := toDebtorDTO(debtor)
	return &dto, nil
}
