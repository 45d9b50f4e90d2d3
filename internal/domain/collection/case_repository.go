package collection

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/shared"
)

// CaseRepository defines the interface for case persistence
type CaseRepository interface {
	// Create creates a new case
	Create(ctx context.Context, c *Case) error

	// Update persists field changes that do not touch the status
	Update(ctx context.Context, c *Case) error

	// UpdateStatus persists a status transition with an optimistic version
	// check and appends the history entry in the same transaction. A stale
	// version surfaces as ErrConcurrencyConflict.
	UpdateStatus(ctx context.Context, c *Case, entry CaseHistoryEntry) error

	// FindByID finds a case by ID, history included
	FindByID(ctx context.Context, id uuid.UUID) (*Case, error)

	// FindAll returns cases matching the filter with pagination.
	// History is not loaded for listings.
	FindAll(ctx context.Context, filter CaseFilter) ([]*Case, int64, error)

	// FindHistory returns the transition history of a case, oldest first
	FindHistory(ctx context.Context, caseID uuid.UUID) ([]CaseHistoryEntry, error)

	// CountOpenByTenant returns the number of non-terminal cases for the tenant
	CountOpenByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// CountByTenant returns the total number of cases for the tenant
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// CaseFilter contains filter options for querying cases
type CaseFilter struct {
	// TenantIDs restricts results to cases of these tenants.
	// nil means unrestricted; an empty non-nil slice matches nothing.
	TenantIDs []uuid.UUID

	// Filter by debtor
	DebtorID *uuid.UUID

	// Filter by status
	Status *CaseStatus

	// Search keyword for the case reference
	Keyword string

	shared.Pagination
	shared.Sorting
}

// NewCaseFilter creates a new CaseFilter with default values
func NewCaseFilter() CaseFilter {
	return CaseFilter{
		Pagination: shared.DefaultPagination(),
		Sorting:    shared.DefaultSorting(),
	}
}

// WithTenantIDs restricts the filter to the given tenant ids
func (f CaseFilter) WithTenantIDs(ids []uuid.UUID) CaseFilter {
	f.TenantIDs = ids
	return f
}

// WithDebtorID sets the debtor filter
func (f CaseFilter) WithDebtorID(debtorID uuid.UUID) CaseFilter {
	f.DebtorID = &debtorID
	return f
}

// WithStatus sets the status filter
func (f CaseFilter) WithStatus(status CaseStatus) CaseFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f CaseFilter) WithPagination(page, pageSize int) CaseFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}
