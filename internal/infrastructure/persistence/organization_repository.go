package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/organization"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDepartmentRepository implements organization.DepartmentRepository using GORM
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the departments with the given ids
func (r *GormDepartmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]organization.Department, error) {
	if len(ids) == 0 {
		return []organization.Department{}, nil
	}
	var ms []models.DepartmentModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return departmentsToDomain(ms), nil
}

// FindAll returns a page of departments
func (r *GormDepartmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]organization.Department, error) {
	var ms []models.DepartmentModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.DepartmentModel{}), filter)
	query = applyPaging(query, filter, departmentSort, "level ASC, sort_order ASC, name ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return departmentsToDomain(ms), nil
}

// FindAllOrdered returns every department in tree display order
func (r *GormDepartmentRepository) FindAllOrdered(ctx context.Context) ([]organization.Department, error) {
	var ms []models.DepartmentModel
	if err := r.db.WithContext(ctx).Order("level ASC, sort_order ASC, name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return departmentsToDomain(ms), nil
}

// FindChildren returns the direct children of parentID, or the roots when nil
func (r *GormDepartmentRepository) FindChildren(ctx context.Context, parentID *uuid.UUID) ([]organization.Department, error) {
	query := r.db.WithContext(ctx).Model(&models.DepartmentModel{})
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	var ms []models.DepartmentModel
	if err := query.Order("sort_order ASC, name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return departmentsToDomain(ms), nil
}

// FindDescendants returns every department below path using the materialized path
func (r *GormDepartmentRepository) FindDescendants(ctx context.Context, path string) ([]organization.Department, error) {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(path)
	var ms []models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("path LIKE ? ESCAPE '\\'", escaped+"/%").
		Order("level ASC, sort_order ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return departmentsToDomain(ms), nil
}

// Count counts departments matching the filter
func (r *GormDepartmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.DepartmentModel{}), filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks whether the code is taken
func (r *GormDepartmentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.DepartmentModel{}).Where("code = ?", strings.ToUpper(code)))
}

// Save creates or updates a department
func (r *GormDepartmentRepository) Save(ctx context.Context, d *organization.Department) error {
	return r.db.WithContext(ctx).Save(models.DepartmentModelFromDomain(d)).Error
}

// SaveBatch saves several departments in one transaction
func (r *GormDepartmentRepository) SaveBatch(ctx context.Context, departments []*organization.Department) error {
	if len(departments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range departments {
			if err := tx.Save(models.DepartmentModelFromDomain(d)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a department
func (r *GormDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.DepartmentModel{}, "id = ?", id))
}

func (r *GormDepartmentRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "code", "name")
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "parent_id":
			query = query.Where("parent_id = ?", value)
		}
	}
	return query
}

func departmentsToDomain(ms []models.DepartmentModel) []organization.Department {
	out := make([]organization.Department, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

// GormPositionRepository implements organization.PositionRepository using GORM
type GormPositionRepository struct {
	db *gorm.DB
}

// NewGormPositionRepository creates a new GormPositionRepository
func NewGormPositionRepository(db *gorm.DB) *GormPositionRepository {
	return &GormPositionRepository{db: db}
}

// FindByID finds a position by ID
func (r *GormPositionRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Position, error) {
	var model models.PositionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of positions
func (r *GormPositionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]organization.Position, error) {
	var ms []models.PositionModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.PositionModel{}), filter)
	query = applyPaging(query, filter, positionSort, "level ASC, title ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return positionsToDomain(ms), nil
}

// FindAllUnpaged returns every position
func (r *GormPositionRepository) FindAllUnpaged(ctx context.Context) ([]organization.Position, error) {
	var ms []models.PositionModel
	if err := r.db.WithContext(ctx).Order("level ASC, title ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return positionsToDomain(ms), nil
}

// Count counts positions matching the filter
func (r *GormPositionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.PositionModel{}), filter).Count(&count).Error
	return count, err
}

// CountByDepartment counts positions of a department
func (r *GormPositionRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PositionModel{}).Where("department_id = ?", departmentID).Count(&count).Error
	return count, err
}

// CountReports counts positions reporting to positionID
func (r *GormPositionRepository) CountReports(ctx context.Context, positionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PositionModel{}).Where("reports_to_id = ?", positionID).Count(&count).Error
	return count, err
}

// ExistsByCode checks whether the code is taken
func (r *GormPositionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.PositionModel{}).Where("code = ?", strings.ToUpper(code)))
}

// Save creates or updates a position
func (r *GormPositionRepository) Save(ctx context.Context, p *organization.Position) error {
	return r.db.WithContext(ctx).Save(models.PositionModelFromDomain(p)).Error
}

// Delete removes a position
func (r *GormPositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.PositionModel{}, "id = ?", id))
}

func (r *GormPositionRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "code", "title")
	if v, ok := filter.Filters["department_id"]; ok {
		query = query.Where("department_id = ?", v)
	}
	return query
}

func positionsToDomain(ms []models.PositionModel) []organization.Position {
	out := make([]organization.Position, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

var (
	_ organization.DepartmentRepository = (*GormDepartmentRepository)(nil)
	_ organization.PositionRepository   = (*GormPositionRepository)(nil)
)
