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

// GormCaseRepository implements collection.CaseRepository using GORM
type GormCaseRepository struct {
	db *gorm.DB
}

// NewGormCaseRepository creates a new GormCaseRepository
func NewGormCaseRepository(db *gorm.DB) *GormCaseRepository {
	return &GormCaseRepository{db: db}
}

// Create creates a new case
func (r *GormCaseRepository) Create(ctx context.Context, c *collection.Case) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.CaseModelFromDomain(c)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		for _, entry := range c.History {
			if err := tx.Create(models.CaseHistoryModelFromDomain(entry)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update updates the non-status fields of a case
func (r *GormCaseRepository) Update(ctx context.Context, c *collection.Case) error {
	model := models.CaseModelFromDomain(c)
	result := r.db.WithContext(ctx).Model(&models.CaseModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"reference":        model.Reference,
			"fees":             model.Fees,
			"interest":         model.Interest,
			"court_file_ref":   model.CourtFileRef,
			"next_action_date": model.NextActionDate,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateStatus persists a status transition together with its history entry.
// The update carries an optimistic version check; a stale aggregate yields
// ErrConcurrencyConflict and nothing is written.
func (r *GormCaseRepository) UpdateStatus(ctx context.Context, c *collection.Case, entry collection.CaseHistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.CaseModelFromDomain(c)
		// c.Version was already incremented by the aggregate
		previousVersion := c.Version - 1

		result := tx.Model(&models.CaseModel{}).
			Where("id = ? AND version = ?", c.ID, previousVersion).
			Updates(map[string]any{
				"status":     model.Status,
				"version":    model.Version,
				"updated_at": model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.CaseModel{}).
				Where("id = ?", c.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrConcurrencyConflict
		}

		return tx.Create(models.CaseHistoryModelFromDomain(entry)).Error
	})
}

// FindByID finds a case by ID with its full transition history
func (r *GormCaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Case, error) {
	var model models.CaseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	c := model.ToDomain()
	history, err := r.FindHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.History = history
	return c, nil
}

// FindAll returns cases matching the filter, without history
func (r *GormCaseRepository) FindAll(ctx context.Context, filter collection.CaseFilter) ([]*collection.Case, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CaseModel{})

	if filter.TenantIDs != nil {
		if len(filter.TenantIDs) == 0 {
			return []*collection.Case{}, 0, nil
		}
		query = query.Where("tenant_id IN ?", filter.TenantIDs)
	}
	if filter.DebtorID != nil {
		query = query.Where("debtor_id = ?", *filter.DebtorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Keyword != "" {
		query = query.Where("reference ILIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, CaseSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)
	query = query.Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).Limit(filter.Limit())

	var caseModels []models.CaseModel
	if err := query.Find(&caseModels).Error; err != nil {
		return nil, 0, err
	}

	cases := make([]*collection.Case, len(caseModels))
	for i := range caseModels {
		cases[i] = caseModels[i].ToDomain()
	}
	return cases, total, nil
}

// FindHistory returns the case's transition history, oldest first
func (r *GormCaseRepository) FindHistory(ctx context.Context, caseID uuid.UUID) ([]collection.CaseHistoryEntry, error) {
	var historyModels []models.CaseHistoryModel
	if err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&historyModels).Error; err != nil {
		return nil, err
	}

	history := make([]collection.CaseHistoryEntry, len(historyModels))
	for i := range historyModels {
		history[i] = historyModels[i].ToDomain()
	}
	return history, nil
}

// CountOpenByTenant returns the number of non-terminal cases owned by the tenant
func (r *GormCaseRepository) CountOpenByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CaseModel{}).
		Where("tenant_id = ? AND status NOT IN ?", tenantID, collection.TerminalCaseStatuses).
		Count(&count).Error
	return count, err
}

// CountByTenant returns the total number of cases owned by the tenant
func (r *GormCaseRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CaseModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
