package collection

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrTenantHasDependents is returned when a delete is blocked by
// debtors or cases still referencing the tenant
var ErrTenantHasDependents = shared.NewDomainError("TENANT_HAS_DEPENDENTS", "Cannot delete tenant with existing debtors or cases")

// TenantSummary carries the aggregate figures attached to tenant listings
type TenantSummary struct {
	TenantID    uuid.UUID       `json:"tenant_id"`
	DebtorCount int64           `json:"debtor_count"`
	OpenCases   int64           `json:"open_cases"`
	TotalVolume decimal.Decimal `json:"total_volume"`
}

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// Create creates a new tenant.
	// A registration-number collision surfaces as ErrAlreadyExists.
	Create(ctx context.Context, tenant *Tenant) error

	// Update updates an existing tenant.
	// A registration-number collision surfaces as ErrAlreadyExists.
	Update(ctx context.Context, tenant *Tenant) error

	// DeleteGuarded deletes a tenant inside a transaction that locks the
	// tenant row and verifies no debtors or cases reference it. Returns
	// ErrTenantHasDependents when dependents exist, ErrNotFound when the
	// tenant is absent.
	DeleteGuarded(ctx context.Context, id uuid.UUID) error

	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindAll returns tenants matching the filter with pagination
	FindAll(ctx context.Context, filter TenantFilter) ([]*Tenant, int64, error)

	// ExistsByRegistrationNo checks whether another tenant already holds the
	// registration number. excludeID skips the tenant being updated; pass
	// uuid.Nil on create.
	ExistsByRegistrationNo(ctx context.Context, registrationNo string, excludeID uuid.UUID) (bool, error)

	// CountDependents returns the number of debtors and cases owned by the tenant
	CountDependents(ctx context.Context, id uuid.UUID) (debtors int64, cases int64, err error)

	// Summaries computes debtor count, open-case count, and outstanding
	// volume for the given tenant IDs
	Summaries(ctx context.Context, tenantIDs []uuid.UUID) (map[uuid.UUID]TenantSummary, error)
}

// TenantFilter contains filter options for querying tenants
type TenantFilter struct {
	// Search keyword for name or registration number
	Keyword string

	// IDs restricts results to these tenant ids.
	// nil means unrestricted; an empty non-nil slice matches nothing.
	IDs []uuid.UUID

	shared.Pagination
	shared.Sorting
}

// NewTenantFilter creates a new TenantFilter with default values
func NewTenantFilter() TenantFilter {
	return TenantFilter{
		Pagination: shared.DefaultPagination(),
		Sorting:    shared.DefaultSorting(),
	}
}

// WithKeyword sets the search keyword
func (f TenantFilter) WithKeyword(keyword string) TenantFilter {
	f.Keyword = keyword
	return f
}

// WithIDs restricts the filter to the given tenant ids
func (f TenantFilter) WithIDs(ids []uuid.UUID) TenantFilter {
	f.IDs = ids
	return f
}

// WithPagination sets pagination parameters
func (f TenantFilter) WithPagination(page, pageSize int) TenantFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}
