package collection

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkasso/backend/internal/domain/shared"
)

// DebtorRepository defines the interface for debtor persistence
type DebtorRepository interface {
	// Create creates a new debtor
	Create(ctx context.Context, debtor *Debtor) error

	// Update updates an existing debtor
	Update(ctx context.Context, debtor *Debtor) error

	// FindByID finds a debtor by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Debtor, error)

	// FindAll returns debtors matching the filter with pagination
	FindAll(ctx context.Context, filter DebtorFilter) ([]*Debtor, int64, error)

	// CountByTenant returns the number of debtors owned by the tenant
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// DebtorFilter contains filter options for querying debtors
type DebtorFilter struct {
	// Search keyword for name, company, or email
	Keyword string

	// TenantIDs restricts results to debtors of these tenants.
	// nil means unrestricted; an empty non-nil slice matches nothing.
	TenantIDs []uuid.UUID

	// Filter by risk class
	RiskClass *RiskClass

	shared.Pagination
	shared.Sorting
}

// NewDebtorFilter creates a new DebtorFilter with default values
func NewDebtorFilter() DebtorFilter {
	return DebtorFilter{
		Pagination: shared.DefaultPagination(),
		Sorting:    shared.DefaultSorting(),
	}
}

// WithTenantIDs restricts the filter to the given tenant ids
func (f DebtorFilter) WithTenantIDs(ids []uuid.UUID) DebtorFilter {
	f.TenantIDs = ids
	return f
}

// WithKeyword sets the search keyword
func (f DebtorFilter) WithKeyword(keyword string) DebtorFilter {
	f.Keyword = keyword
	return f
}

// WithPagination sets pagination parameters
func (f DebtorFilter) WithPagination(page, pageSize int) DebtorFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}
