package organization

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/organization"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var errDepartmentNotFound = shared.NewDomainError("DEPARTMENT_NOT_FOUND", "Department not found")

// EmployeeCounter reports how many employees belong to a department
type EmployeeCounter interface {
	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error)
}

// DepartmentService manages the department tree
type DepartmentService struct {
	departmentRepo organization.DepartmentRepository
	positionRepo   organization.PositionRepository
	employees      EmployeeCounter
	publisher      shared.EventPublisher
	logger         *zap.Logger
}

// NewDepartmentService creates a new department service
func NewDepartmentService(
	departmentRepo organization.DepartmentRepository,
	positionRepo organization.PositionRepository,
	employees EmployeeCounter,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		positionRepo:   positionRepo,
		employees:      employees,
		publisher:      publisher,
		logger:         logger,
	}
}

// Create adds a department, under a parent when one is given
func (s *DepartmentService) Create(ctx context.Context, input CreateDepartmentInput) (*DepartmentDTO, error) {
	d, err := organization.NewDepartment(input.Code, input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	exists, err := s.departmentRepo.ExistsByCode(ctx, d.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("DEPARTMENT_CODE_EXISTS", "Department code %s already exists", d.Code)
	}

	if input.ParentID != nil {
		parent, err := s.parent(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if err := d.MoveUnder(parent); err != nil {
			return nil, err
		}
	}
	// new departments go after their existing siblings
	siblings, err := s.departmentRepo.FindChildren(ctx, d.ParentID)
	if err != nil {
		return nil, err
	}
	d.SetSortOrder(len(siblings))
	d.SetCreatedBy(shared.ActorFromContext(ctx).ID)

	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("Department created",
		zap.String("department_id", d.ID.String()),
		zap.String("code", d.Code),
		zap.Int("level", d.Level))

	dto := ToDepartmentDTO(d)
	return &dto, nil
}

// GetByID returns a department
func (s *DepartmentService) GetByID(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToDepartmentDTO(d)
	return &dto, nil
}

// List returns a page of departments
func (s *DepartmentService) List(ctx context.Context, input ListInput) (*shared.Paginated[DepartmentDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("status", input.Status).
		With("parent_id", input.ParentID)

	list, err := s.departmentRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list departments", zap.Error(err))
		return nil, err
	}
	total, err := s.departmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]DepartmentDTO, len(list))
	for i := range list {
		items[i] = ToDepartmentDTO(&list[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes the name, description and head of a department
func (s *DepartmentService) Update(ctx context.Context, id uuid.UUID, input UpdateDepartmentInput) (*DepartmentDTO, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	d.SetHead(input.HeadEmployeeID)
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}

	dto := ToDepartmentDTO(d)
	return &dto, nil
}

// SetActive activates or deactivates a department
func (s *DepartmentService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*DepartmentDTO, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		err = d.Activate()
	} else {
		err = d.Deactivate()
	}
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}

	dto := ToDepartmentDTO(d)
	return &dto, nil
}

// Move places a department under a new parent, or at the root when parentID
// is nil. The paths of all descendants are rewritten in the same batch.
func (s *DepartmentService) Move(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) (dto *DepartmentDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "department", "Move", telemetry.AttrEntityID.String(id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	var parent *organization.Department
	if parentID != nil {
		if *parentID == d.ID {
			return nil, organization.ErrCircularReference
		}
		if parent, err = s.parent(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	oldPath, oldLevel := d.Path, d.Level
	if err := d.MoveUnder(parent); err != nil {
		return nil, err
	}

	descendants, err := s.departmentRepo.FindDescendants(ctx, oldPath)
	if err != nil {
		return nil, err
	}
	batch := make([]*organization.Department, 0, len(descendants)+1)
	batch = append(batch, d)
	for i := range descendants {
		descendants[i].Rebase(oldPath, d.Path, d.Level-oldLevel)
		batch = append(batch, &descendants[i])
	}
	if err := s.departmentRepo.SaveBatch(ctx, batch); err != nil {
		s.logger.Error("Failed to move department", zap.String("department_id", id.String()), zap.Error(err))
		return nil, err
	}
	publish(ctx, s.publisher, s.logger, d)

	s.logger.Info("Department moved",
		zap.String("department_id", id.String()),
		zap.String("path", d.Path),
		zap.Int("descendants", len(descendants)))

	out := ToDepartmentDTO(d)
	return &out, nil
}

// Reorder sets the display order of the children of parentID. orderedIDs
// must list every sibling exactly once.
func (s *DepartmentService) Reorder(ctx context.Context, parentID *uuid.UUID, orderedIDs []uuid.UUID) ([]DepartmentDTO, error) {
	children, err := s.departmentRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	siblings := make([]*organization.Department, len(children))
	for i := range children {
		siblings[i] = &children[i]
	}
	if err := organization.Reorder(siblings, orderedIDs); err != nil {
		return nil, err
	}
	if err := s.departmentRepo.SaveBatch(ctx, siblings); err != nil {
		return nil, err
	}
	if s.publisher != nil && len(siblings) > 0 {
		event := organization.NewDepartmentEvent(organization.EventTypeDepartmentsReordered, siblings[0])
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish reorder event", zap.Error(err))
		}
	}

	out := make([]DepartmentDTO, len(orderedIDs))
	byID := make(map[uuid.UUID]*organization.Department, len(siblings))
	for _, d := range siblings {
		byID[d.ID] = d
	}
	for i, id := range orderedIDs {
		out[i] = ToDepartmentDTO(byID[id])
	}
	return out, nil
}

// Hierarchy returns the department forest with the positions of each node
func (s *DepartmentService) Hierarchy(ctx context.Context) ([]*HierarchyNode, error) {
	departments, err := s.departmentRepo.FindAllOrdered(ctx)
	if err != nil {
		return nil, err
	}
	positions, err := s.positionRepo.FindAllUnpaged(ctx)
	if err != nil {
		return nil, err
	}
	return toHierarchy(organization.BuildHierarchy(departments, positions)), nil
}

// Delete removes a department with no children, positions or employees
func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	// Check for child departments
	children, err := s.departmentRepo.FindChildren(ctx, &d.ID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("DEPARTMENT_HAS_CHILDREN", "Department still has sub-departments")
	}

	// Check for positions
	positions, err := s.positionRepo.CountByDepartment(ctx, id)
	if err != nil {
		return err
	}
	if positions > 0 {
		return shared.NewDomainErrorf("DEPARTMENT_HAS_POSITIONS", "Department still has %d positions", positions)
	}

	// Check for employees
	if s.employees != nil {
		staff, err := s.employees.CountByDepartment(ctx, id)
		if err != nil {
			return err
		}
		if staff > 0 {
			return shared.NewDomainErrorf("DEPARTMENT_HAS_EMPLOYEES", "Department still has %d employees", staff)
		}
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	d.AddDomainEvent(organization.NewDepartmentEvent(organization.EventTypeDepartmentDeleted, d))
	publish(ctx, s.publisher, s.logger, d)

	s.logger.Info("Department deleted", zap.String("department_id", id.String()), zap.String("code", d.Code))
	return nil
}

func (s *DepartmentService) parent(ctx context.Context, id uuid.UUID) (*organization.Department, error) {
	parent, err := s.departmentRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent department not found")
	}
	return parent, err
}

func (s *DepartmentService) find(ctx context.Context, id uuid.UUID) (*organization.Department, error) {
	d, err := s.departmentRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errDepartmentNotFound
	}
	return d, err
}

func (s *DepartmentService) save(ctx context.Context, d *organization.Department) error {
	if err := s.departmentRepo.Save(ctx, d); err != nil {
		s.logger.Error("Failed to save department", zap.String("department_id", d.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, d)
	return nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.AggregateRoot) {
	if err := shared.PublishAndClear(ctx, publisher, aggregate); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.String("aggregate_id", aggregate.GetID().String()),
			zap.Error(err))
	}
}
