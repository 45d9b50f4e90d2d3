package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkasso/backend/internal/domain/collection"
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/inkasso/backend/internal/infrastructure/persistence/models"
)

// GormDebtorRepository implements collection.DebtorRepository using GORM
type GormDebtorRepository struct {
	db *gorm.DB
}

// NewGormDebtorRepository creates a new GormDebtorRepository
func NewGormDebtorRepository(db *gorm.DB) *GormDebtorRepository {
	return &GormDebtorRepository{db: db}
}

// Create creates a new debtor
func (r *GormDebtorRepository) Create(ctx context.Context, debtor *collection.Debtor) error {
	model := models.DebtorModelFromDomain(debtor)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing debtor
func (r *GormDebtorRepository) Update(ctx context.Context, debtor *collection.Debtor) error {
	model := models.DebtorModelFromDomain(debtor)
	result := r.db.WithContext(ctx).Model(&models.DebtorModel{}).
		Where("id = ?", debtor.ID).
		Updates(map[string]any{
			"first_name":   model.FirstName,
			"last_name":    model.LastName,
			"company_name": model.CompanyName,
			"email":        model.Email,
			"phone":        model.Phone,
			"street":       model.Street,
			"postal_code":  model.PostalCode,
			"city":         model.City,
			"country":      model.Country,
			"risk_class":   model.RiskClass,
			"outstanding":  model.Outstanding,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a debtor by its ID
func (r *GormDebtorRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Debtor, error) {
	var model models.DebtorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns debtors matching the filter
func (r *GormDebtorRepository) FindAll(ctx context.Context, filter collection.DebtorFilter) ([]*collection.Debtor, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DebtorModel{})

	if filter.TenantIDs != nil {
		if len(filter.TenantIDs) == 0 {
			return []*collection.Debtor{}, 0, nil
		}
		query = query.Where("tenant_id IN ?", filter.TenantIDs)
	}
	if filter.RiskClass != nil {
		query = query.Where("risk_class = ?", *filter.RiskClass)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR company_name ILIKE ? OR email ILIKE ?",
			keyword, keyword, keyword, keyword,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, DebtorSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)
	query = query.Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).Limit(filter.Limit())

	var debtorModels []models.DebtorModel
	if err := query.Find(&debtorModels).Error; err != nil {
		return nil, 0, err
	}

	debtors := make([]*collection.Debtor, len(debtorModels))
	for i := range debtorModels {
		debtors[i] = debtorModels[i].ToDomain()
	}
	return debtors, total, nil
}

// CountByTenant returns the number of debtors owned by the tenant
func (r *GormDebtorRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DebtorModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
