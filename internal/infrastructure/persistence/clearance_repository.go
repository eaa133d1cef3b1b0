package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/clearance"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

func preloadByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// GormTemplateRepository implements clearance.TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by ID with its tasks
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*clearance.ChecklistTemplate, error) {
	var model models.ChecklistTemplateModel
	if err := r.db.WithContext(ctx).Preload("Tasks", preloadByPosition).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByDepartment finds the template of a department with its tasks
func (r *GormTemplateRepository) FindByDepartment(ctx context.Context, departmentID uuid.UUID) (*clearance.ChecklistTemplate, error) {
	var model models.ChecklistTemplateModel
	if err := r.db.WithContext(ctx).Preload("Tasks", preloadByPosition).
		First(&model, "department_id = ?", departmentID).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every template
func (r *GormTemplateRepository) FindAll(ctx context.Context) ([]clearance.ChecklistTemplate, error) {
	var ms []models.ChecklistTemplateModel
	if err := r.db.WithContext(ctx).Preload("Tasks", preloadByPosition).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]clearance.ChecklistTemplate, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Save writes the template and replaces its task rows in one transaction
func (r *GormTemplateRepository) Save(ctx context.Context, t *clearance.ChecklistTemplate) error {
	model := models.ChecklistTemplateModelFromDomain(t)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tasks").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", model.ID).Delete(&models.ChecklistTemplateTaskModel{}).Error; err != nil {
			return err
		}
		if len(model.Tasks) == 0 {
			return nil
		}
		return tx.Create(&model.Tasks).Error
	})
}

// DeleteByDepartment removes the template of a department and its tasks
func (r *GormTemplateRepository) DeleteByDepartment(ctx context.Context, departmentID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ChecklistTemplateModel
		if err := tx.Select("id").First(&model, "department_id = ?", departmentID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("template_id = ?", model.ID).Delete(&models.ChecklistTemplateTaskModel{}).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&models.ChecklistTemplateModel{}, "id = ?", model.ID))
	})
}

// GormClearanceRepository implements clearance.ClearanceRepository using GORM
type GormClearanceRepository struct {
	db *gorm.DB
}

// NewGormClearanceRepository creates a new GormClearanceRepository
func NewGormClearanceRepository(db *gorm.DB) *GormClearanceRepository {
	return &GormClearanceRepository{db: db}
}

// FindByID finds a clearance by ID with its tasks
func (r *GormClearanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*clearance.Clearance, error) {
	var model models.ClearanceModel
	if err := r.db.WithContext(ctx).Preload("Tasks", preloadByPosition).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of clearances
func (r *GormClearanceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]clearance.Clearance, error) {
	var ms []models.ClearanceModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.ClearanceModel{}), filter)
	query = applyPaging(query, filter, clearanceSort, "started_at DESC")
	if err := query.Preload("Tasks", preloadByPosition).Find(&ms).Error; err != nil {
		return nil, err
	}
	return clearancesToDomain(ms), nil
}

// Count counts clearances matching the filter
func (r *GormClearanceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.ClearanceModel{}), filter).Count(&count).Error
	return count, err
}

// FindOpenByDepartment returns the open clearances of a department
func (r *GormClearanceRepository) FindOpenByDepartment(ctx context.Context, departmentID uuid.UUID) ([]clearance.Clearance, error) {
	var ms []models.ClearanceModel
	if err := r.db.WithContext(ctx).Preload("Tasks", preloadByPosition).
		Where("department_id = ? AND status = ?", departmentID, clearance.StatusOpen).
		Order("started_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return clearancesToDomain(ms), nil
}

// FindOpenByEmployee returns the open clearance of an employee, or shared.ErrNotFound
func (r *GormClearanceRepository) FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) (*clearance.Clearance, error) {
	var model models.ClearanceModel
	if err := r.db.WithContext(ctx).Preload("Tasks", preloadByPosition).
		Where("employee_id = ? AND status = ?", employeeID, clearance.StatusOpen).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// Save writes the clearance and replaces its task rows in one transaction
func (r *GormClearanceRepository) Save(ctx context.Context, c *clearance.Clearance) error {
	model := models.ClearanceModelFromDomain(c)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tasks").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("clearance_id = ?", model.ID).Delete(&models.ClearanceTaskModel{}).Error; err != nil {
			return err
		}
		if len(model.Tasks) == 0 {
			return nil
		}
		return tx.Create(&model.Tasks).Error
	})
}

func (r *GormClearanceRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "employee_id":
			query = query.Where("employee_id = ?", value)
		case "department_id":
			query = query.Where("department_id = ?", value)
		}
	}
	return query
}

func clearancesToDomain(ms []models.ClearanceModel) []clearance.Clearance {
	out := make([]clearance.Clearance, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

var (
	_ clearance.TemplateRepository  = (*GormTemplateRepository)(nil)
	_ clearance.ClearanceRepository = (*GormClearanceRepository)(nil)
)
