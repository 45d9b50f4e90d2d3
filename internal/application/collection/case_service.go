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

// CaseService enforces the collection-process state machine on cases
type CaseService struct {
	caseRepo collection.CaseRepository
	resolver *access.Resolver
	logger   *zap.Logger
}

// NewCaseService creates a new case service
func NewCaseService(
	caseRepo collection.CaseRepository,
	resolver *access.Resolver,
	logger *zap.Logger,
) *CaseService {
	return &CaseService{
		caseRepo: caseRepo,
		resolver: resolver,
		logger:   logger,
	}
}

// List returns the cases inside the actor's scope, optionally narrowed to
// one tenant, debtor, or status.
func (s *CaseService) List(ctx context.Context, actor *identity.User, input ListCasesInput) (*CaseListResult, error) {
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

	filter := collection.NewCaseFilter().
		WithTenantIDs(ids).
		WithKeyword(input.Keyword).
		WithPagination(input.Page, input.PageSize)
	if input.DebtorID != nil {
		filter = filter.WithDebtorID(*input.DebtorID)
	}
	if input.Status != "" {
		status := collection.CaseStatus(input.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown case status filter")
		}
		filter = filter.WithStatus(status)
	}

	cases, total, err := s.caseRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list cases", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list cases")
	}

	dtos := make([]CaseDTO, 0, len(cases))
	for _, c := range cases {
		dtos = append(dtos, toCaseDTO(c, false))
	}

	return &CaseListResult{
		Cases:      dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
		TotalPages: shared.TotalPages(total, filter.Limit()),
	}, nil
}

// GetByID returns a single case including its full transition history
func (s *CaseService) GetByID(ctx context.Context, actor *identity.User, caseID uuid.UUID) (*CaseDTO, error) {
	c, err := s.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.AuthorizeEntity(ctx, actor, c.TenantID); err != nil {
		return nil, err
	}

	dto := toCaseDTO(c, true)
	return &dto, nil
}

// Advance moves a case to the target status on behalf of the actor.
//
// The transition is validated against the process graph by the aggregate,
// then persisted with an optimistic version check; a concurrent transition
// on the same case surfaces as a conflict, never a lost update.
func (s *CaseService) Advance(ctx context.Context, actor *identity.User, caseID uuid.UUID, input AdvanceCaseInput) (*CaseDTO, error) {
	c, err := s.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.AuthorizeEntity(ctx, actor, c.TenantID); err != nil {
		return nil, err
	}

	target := collection.CaseStatus(input.TargetStatus)
	if err := c.Advance(target, actor.Role, input.Note); err != nil {
		return nil, err
	}

	entry := c.History[len(c.History)-1]
	if err := s.caseRepo.UpdateStatus(ctx, c, entry); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			s.logger.Warn("Concurrent case transition lost",
				zap.String("case_id", caseID.String()),
				zap.String("target_status", input.TargetStatus))
			return nil, err
		}
		s.logger.Error("Failed to persist case transition",
			zap.String("case_id", caseID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to persist case transition")
	}

	s.logger.Info("Case advanced",
		zap.String("case_id", c.ID.String()),
		zap.String("tenant_id", c.TenantID.String()),
		zap.String("from_status", string(entry.FromStatus)),
		zap.String("to_status", string(entry.ToStatus)),
		zap.String("actor_role", entry.ActorRole),
		zap.Bool("override", entry.Override))

	dto := toCaseDTO(c, true)
	return &dto, nil
}

// History returns the append-only transition history of a case, oldest first
func (s *CaseService) History(ctx context.Context, actor *identity.User, caseID uuid.UUID) ([]CaseHistoryEntryDTO, error) {
	c, err := s.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.AuthorizeEntity(ctx, actor, c.TenantID); err != nil {
		return nil, err
	}

	entries, err := s.caseRepo.FindHistory(ctx, caseID)
	if err != nil {
		s.logger.Error("Failed to load case history", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load case history")
	}

	dtos := make([]CaseHistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toCaseHistoryEntryDTO(entry))
	}
	return dtos, nil
}
