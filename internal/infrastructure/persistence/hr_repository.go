package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements hr.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of employees
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.Employee, error) {
	var ms []models.EmployeeModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.EmployeeModel{}), filter)
	query = applyPaging(query, filter, employeeSort, "employee_no ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return employeesToDomain(ms), nil
}

// FindByIDs returns the employees with the given ids, in employee number order
func (r *GormEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]hr.Employee, error) {
	if len(ids) == 0 {
		return []hr.Employee{}, nil
	}
	var ms []models.EmployeeModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("employee_no ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return employeesToDomain(ms), nil
}

// Count counts employees matching the filter
func (r *GormEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.EmployeeModel{}), filter).Count(&count).Error
	return count, err
}

// CountByDepartment counts employees assigned to a department
func (r *GormEmployeeRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).Where("department_id = ?", departmentID).Count(&count).Error
	return count, err
}

// CountByShift counts employees assigned to a shift schedule
func (r *GormEmployeeRepository) CountByShift(ctx context.Context, shiftID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).Where("shift_schedule_id = ?", shiftID).Count(&count).Error
	return count, err
}

// ExistsByEmployeeNo checks whether the employee number is taken
func (r *GormEmployeeRepository) ExistsByEmployeeNo(ctx context.Context, employeeNo string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Where("employee_no = ?", strings.ToUpper(strings.TrimSpace(employeeNo))))
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, e *hr.Employee) error {
	return r.db.WithContext(ctx).Save(models.EmployeeModelFromDomain(e)).Error
}

// Delete removes an employee
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.EmployeeModel{}, "id = ?", id))
}

func (r *GormEmployeeRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "employee_no", "first_name", "last_name", "email")
	for key, value := range filter.Filters {
		switch key {
		case "department_id":
			query = query.Where("department_id = ?", value)
		case "position_id":
			query = query.Where("position_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

func employeesToDomain(ms []models.EmployeeModel) []hr.Employee {
	out := make([]hr.Employee, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

// GormLeaveRepository implements hr.LeaveRepository using GORM
type GormLeaveRepository struct {
	db *gorm.DB
}

// NewGormLeaveRepository creates a new GormLeaveRepository
func NewGormLeaveRepository(db *gorm.DB) *GormLeaveRepository {
	return &GormLeaveRepository{db: db}
}

// FindByID finds a leave by ID
func (r *GormLeaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Leave, error) {
	var model models.LeaveModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of leaves
func (r *GormLeaveRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.Leave, error) {
	var ms []models.LeaveModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.LeaveModel{}), filter)
	query = applyPaging(query, filter, leaveSort, "start_date DESC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return leavesToDomain(ms), nil
}

// Count counts leaves matching the filter
func (r *GormLeaveRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.LeaveModel{}), filter).Count(&count).Error
	return count, err
}

// FindApprovedInPeriod returns approved leaves whose start date is in [from, to]
func (r *GormLeaveRepository) FindApprovedInPeriod(ctx context.Context, from, to time.Time) ([]hr.Leave, error) {
	var ms []models.LeaveModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND start_date >= ? AND start_date <= ?", hr.LeaveStatusApproved, from, to).
		Order("start_date ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return leavesToDomain(ms), nil
}

// CountByStatus counts leaves in a status
func (r *GormLeaveRepository) CountByStatus(ctx context.Context, status hr.LeaveStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LeaveModel{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Save creates or updates a leave
func (r *GormLeaveRepository) Save(ctx context.Context, l *hr.Leave) error {
	return r.db.WithContext(ctx).Save(models.LeaveModelFromDomain(l)).Error
}

func (r *GormLeaveRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "reason")
	for key, value := range filter.Filters {
		switch key {
		case "employee_id":
			query = query.Where("employee_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

func leavesToDomain(ms []models.LeaveModel) []hr.Leave {
	out := make([]hr.Leave, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

// GormShiftScheduleRepository implements hr.ShiftScheduleRepository using GORM
type GormShiftScheduleRepository struct {
	db *gorm.DB
}

// NewGormShiftScheduleRepository creates a new GormShiftScheduleRepository
func NewGormShiftScheduleRepository(db *gorm.DB) *GormShiftScheduleRepository {
	return &GormShiftScheduleRepository{db: db}
}

// FindByID finds a shift schedule by ID
func (r *GormShiftScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.OfficeShiftSchedule, error) {
	var model models.ShiftScheduleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of shift schedules
func (r *GormShiftScheduleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.OfficeShiftSchedule, error) {
	var ms []models.ShiftScheduleModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.ShiftScheduleModel{}), filter)
	query = applyPaging(query, filter, shiftSort, "name ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]hr.OfficeShiftSchedule, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts shift schedules matching the filter
func (r *GormShiftScheduleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.ShiftScheduleModel{}), filter).Count(&count).Error
	return count, err
}

// ExistsByName checks whether a schedule name is taken, ignoring case
func (r *GormShiftScheduleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.ShiftScheduleModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))))
}

// Save creates or updates a shift schedule
func (r *GormShiftScheduleRepository) Save(ctx context.Context, s *hr.OfficeShiftSchedule) error {
	return r.db.WithContext(ctx).Save(models.ShiftScheduleModelFromDomain(s)).Error
}

// Delete removes a shift schedule
func (r *GormShiftScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.ShiftScheduleModel{}, "id = ?", id))
}

func (r *GormShiftScheduleRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name")
	if v, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", v)
	}
	return query
}

// GormTardinessRepository implements hr.TardinessRepository using GORM
type GormTardinessRepository struct {
	db *gorm.DB
}

// NewGormTardinessRepository creates a new GormTardinessRepository
func NewGormTardinessRepository(db *gorm.DB) *GormTardinessRepository {
	return &GormTardinessRepository{db: db}
}

// FindByID finds a tardiness entry by ID
func (r *GormTardinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.TardinessEntry, error) {
	var model models.TardinessEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of tardiness entries
func (r *GormTardinessRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.TardinessEntry, error) {
	var ms []models.TardinessEntryModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.TardinessEntryModel{}), filter)
	query = applyPaging(query, filter, tardinessSort, "date DESC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return tardinessToDomain(ms), nil
}

// Count counts tardiness entries matching the filter
func (r *GormTardinessRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.TardinessEntryModel{}), filter).Count(&count).Error
	return count, err
}

// FindInPeriod returns every entry dated within [from, to]
func (r *GormTardinessRepository) FindInPeriod(ctx context.Context, from, to time.Time) ([]hr.TardinessEntry, error) {
	var ms []models.TardinessEntryModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return tardinessToDomain(ms), nil
}

// ExistsForDate checks whether the employee already has an entry on date
func (r *GormTardinessRepository) ExistsForDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.TardinessEntryModel{}).
		Where("employee_id = ? AND date = ?", employeeID, hr.DateOnly(date)))
}

// CountLateOn counts late arrivals on date
func (r *GormTardinessRepository) CountLateOn(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TardinessEntryModel{}).
		Where("date = ? AND minutes_late > 0", hr.DateOnly(date)).
		Count(&count).Error
	return count, err
}

// Save creates or updates a tardiness entry
func (r *GormTardinessRepository) Save(ctx context.Context, e *hr.TardinessEntry) error {
	return r.db.WithContext(ctx).Save(models.TardinessEntryModelFromDomain(e)).Error
}

// Delete removes a tardiness entry
func (r *GormTardinessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.TardinessEntryModel{}, "id = ?", id))
}

func (r *GormTardinessRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "remarks")
	for key, value := range filter.Filters {
		switch key {
		case "employee_id":
			query = query.Where("employee_id = ?", value)
		case "from":
			query = query.Where("date >= ?", value)
		case "to":
			query = query.Where("date <= ?", value)
		case "late_only":
			if value == true {
				query = query.Where("minutes_late > 0")
			}
		}
	}
	return query
}

func tardinessToDomain(ms []models.TardinessEntryModel) []hr.TardinessEntry {
	out := make([]hr.TardinessEntry, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

var (
	_ hr.EmployeeRepository      = (*GormEmployeeRepository)(nil)
	_ hr.LeaveRepository         = (*GormLeaveRepository)(nil)
	_ hr.ShiftScheduleRepository = (*GormShiftScheduleRepository)(nil)
	_ hr.TardinessRepository     = (*GormTardinessRepository)(nil)
)
