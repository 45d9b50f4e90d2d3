package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkasso/backend/internal/domain/collection"
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/inkasso/backend/internal/infrastructure/persistence/models"
)

// GormTenantRepository implements collection.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// Create creates a new tenant
func (r *GormTenantRepository) Create(ctx context.Context, tenant *collection.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing tenant
func (r *GormTenantRepository) Update(ctx context.Context, tenant *collection.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	result := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("id = ?", tenant.ID).
		Updates(map[string]any{
			"name":            model.Name,
			"registration_no": model.RegistrationNo,
			"contact_email":   model.ContactEmail,
			"payout_iban":     model.PayoutIBAN,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteGuarded deletes a tenant after verifying no debtors or cases
// reference it. The tenant row is locked for the duration of the
// transaction so a concurrent debtor insert cannot slip past the check.
func (r *GormTenantRepository) DeleteGuarded(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.TenantModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		var debtors int64
		if err := tx.Model(&models.DebtorModel{}).
			Where("tenant_id = ?", id).Count(&debtors).Error; err != nil {
			return err
		}
		var cases int64
		if err := tx.Model(&models.CaseModel{}).
			Where("tenant_id = ?", id).Count(&cases).Error; err != nil {
			return err
		}
		if debtors > 0 || cases > 0 {
			return collection.ErrTenantHasDependents
		}

		return tx.Delete(&models.TenantModel{}, "id = ?", id).Error
	})
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tenants matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter collection.TenantFilter) ([]*collection.Tenant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})

	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			// Restricted scope with nothing in it
			return []*collection.Tenant{}, 0, nil
		}
		query = query.Where("id IN ?", filter.IDs)
	}

	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("name ILIKE ? OR registration_no ILIKE ?", keyword, keyword)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, TenantSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)
	query = query.Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).Limit(filter.Limit())

	var tenantModels []models.TenantModel
	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, 0, err
	}

	tenants := make([]*collection.Tenant, len(tenantModels))
	for i := range tenantModels {
		tenants[i] = tenantModels[i].ToDomain()
	}
	return tenants, total, nil
}

// ExistsByRegistrationNo checks whether another tenant already holds the registration number
func (r *GormTenantRepository) ExistsByRegistrationNo(ctx context.Context, registrationNo string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("registration_no = ?", registrationNo)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountDependents returns the number of debtors and cases owned by the tenant
func (r *GormTenantRepository) CountDependents(ctx context.Context, id uuid.UUID) (debtors int64, cases int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.DebtorModel{}).
		Where("tenant_id = ?", id).Count(&debtors).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&models.CaseModel{}).
		Where("tenant_id = ?", id).Count(&cases).Error; err != nil {
		return 0, 0, err
	}
	return debtors, cases, nil
}

type tenantSummaryRow struct {
	TenantID    uuid.UUID
	DebtorCount int64
	OpenCases   int64
	TotalVolume decimal.Decimal
}

// Summaries computes debtor count, open-case count, and outstanding volume
// for the given tenant IDs. Volume sums principal, fees, and interest over
// non-terminal cases.
func (r *GormTenantRepository) Summaries(ctx context.Context, tenantIDs []uuid.UUID) (map[uuid.UUID]collection.TenantSummary, error) {
	summaries := make(map[uuid.UUID]collection.TenantSummary, len(tenantIDs))
	if len(tenantIDs) == 0 {
		return summaries, nil
	}
	for _, id := range tenantIDs {
		summaries[id] = collection.TenantSummary{TenantID: id, TotalVolume: decimal.Zero}
	}

	var debtorRows []tenantSummaryRow
	if err := r.db.WithContext(ctx).Model(&models.DebtorModel{}).
		Select("tenant_id, COUNT(*) AS debtor_count").
		Where("tenant_id IN ?", tenantIDs).
		Group("tenant_id").
		Scan(&debtorRows).Error; err != nil {
		return nil, err
	}
	for _, row := range debtorRows {
		s := summaries[row.TenantID]
		s.DebtorCount = row.DebtorCount
		summaries[row.TenantID] = s
	}

	var caseRows []tenantSummaryRow
	if err := r.db.WithContext(ctx).Model(&models.CaseModel{}).
		Select("tenant_id, COUNT(*) AS open_cases, COALESCE(SUM(principal + fees + interest), 0) AS total_volume").
		Where("tenant_id IN ? AND status NOT IN ?", tenantIDs, collection.TerminalCaseStatuses).
		Group("tenant_id").
		Scan(&caseRows).Error; err != nil {
		return nil, err
	}
	for _, row := range caseRows {
		s := summaries[row.TenantID]
		s.OpenCases = row.OpenCases
		s.TotalVolume = row.TotalVolume
		summaries[row.TenantID] = s
	}

	return summaries, nil
}
