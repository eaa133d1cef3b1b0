package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/property"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOwnerRepository implements property.OwnerRepository using GORM
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewGormOwnerRepository creates a new GormOwnerRepository
func NewGormOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// FindByID finds an owner by ID
func (r *GormOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Owner, error) {
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds an owner by its unique code
func (r *GormOwnerRepository) FindByCode(ctx context.Context, code string) (*property.Owner, error) {
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", strings.ToUpper(code)).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of owners
func (r *GormOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Owner, error) {
	var ms []models.OwnerModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.OwnerModel{}), filter)
	query = applyPaging(query, filter, ownerSort, "name ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]property.Owner, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts owners matching the filter
func (r *GormOwnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.OwnerModel{}), filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks whether the code is taken
func (r *GormOwnerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.OwnerModel{}).Where("code = ?", strings.ToUpper(code)))
}

// Save creates or updates an owner
func (r *GormOwnerRepository) Save(ctx context.Context, o *property.Owner) error {
	return r.db.WithContext(ctx).Save(models.OwnerModelFromDomain(o)).Error
}

// Delete removes an owner
func (r *GormOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.OwnerModel{}, "id = ?", id))
}

func (r *GormOwnerRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "code", "name", "email", "phone")
	if v, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", v)
	}
	return query
}

// GormPropertyRepository implements property.PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of properties
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Property, error) {
	var ms []models.PropertyModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.PropertyModel{}), filter)
	query = applyPaging(query, filter, propertySort, "name ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]property.Property, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts properties matching the filter
func (r *GormPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.PropertyModel{}), filter).Count(&count).Error
	return count, err
}

// CountByOwner counts the properties of an owner
func (r *GormPropertyRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PropertyModel{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// ExistsByCode checks whether the code is taken
func (r *GormPropertyRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.PropertyModel{}).Where("code = ?", strings.ToUpper(code)))
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	return r.db.WithContext(ctx).Save(models.PropertyModelFromDomain(p)).Error
}

// Delete removes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id))
}

func (r *GormPropertyRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "code", "name", "address", "city")
	for key, value := range filter.Filters {
		switch key {
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

// GormUnitRepository implements property.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of units
func (r *GormUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Unit, error) {
	var ms []models.UnitModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.UnitModel{}), filter)
	query = applyPaging(query, filter, unitSort, "unit_number ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]property.Unit, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts units matching the filter
func (r *GormUnitRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.UnitModel{}), filter).Count(&count).Error
	return count, err
}

// CountByProperty counts the units of a property
func (r *GormUnitRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UnitModel{}).Where("property_id = ?", propertyID).Count(&count).Error
	return count, err
}

// CountByStatus groups every unit by status
func (r *GormUnitRepository) CountByStatus(ctx context.Context) (map[property.UnitStatus]int64, error) {
	var rows []struct {
		Status property.UnitStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[property.UnitStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

// ExistsByNumber checks whether a property already has the unit number
func (r *GormUnitRepository) ExistsByNumber(ctx context.Context, propertyID uuid.UUID, unitNumber string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("property_id = ? AND unit_number = ?", propertyID, strings.ToUpper(unitNumber)))
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, u *property.Unit) error {
	return r.db.WithContext(ctx).Save(models.UnitModelFromDomain(u)).Error
}

// Delete removes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.UnitModel{}, "id = ?", id))
}

func (r *GormUnitRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "unit_number")
	for key, value := range filter.Filters {
		switch key {
		case "property_id":
			query = query.Where("property_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

var (
	_ property.OwnerRepository    = (*GormOwnerRepository)(nil)
	_ property.PropertyRepository = (*GormPropertyRepository)(nil)
	_ property.UnitRepository     = (*GormUnitRepository)(nil)
)
