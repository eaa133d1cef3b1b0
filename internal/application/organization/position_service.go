package organization

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/organization"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var errPositionNotFound = shared.NewDomainError("POSITION_NOT_FOUND", "Position not found")

// PositionService manages positions and their reporting lines
type PositionService struct {
	positionRepo   organization.PositionRepository
	departmentRepo organization.DepartmentRepository
	publisher      shared.EventPublisher
	logger         *zap.Logger
}

// NewPositionService creates a new position service
func NewPositionService(
	positionRepo organization.PositionRepository,
	departmentRepo organization.DepartmentRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *PositionService {
	return &PositionService{
		positionRepo:   positionRepo,
		departmentRepo: departmentRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// Create adds a position to a department
func (s *PositionService) Create(ctx context.Context, input PositionInput) (*PositionDTO, error) {
	p, err := organization.NewPosition(input.Code, input.Title, input.DepartmentID, input.Level)
	if err != nil {
		return nil, err
	}
	exists, err := s.positionRepo.ExistsByCode(ctx, p.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("POSITION_CODE_EXISTS", "Position code %s already exists", p.Code)
	}
	if err := s.ensureDepartment(ctx, input.DepartmentID); err != nil {
		return nil, err
	}
	if input.ReportsToID != nil {
		if err := s.reportTo(ctx, p, input.ReportsToID); err != nil {
			return nil, err
		}
	}
	p.SetCreatedBy(shared.ActorFromContext(ctx).ID)

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Position created",
		zap.String("position_id", p.ID.String()),
		zap.String("code", p.Code),
		zap.String("department_id", p.DepartmentID.String()))

	dto := ToPositionDTO(p)
	return &dto, nil
}

// GetByID returns a position
func (s *PositionService) GetByID(ctx context.Context, id uuid.UUID) (*PositionDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToPositionDTO(p)
	return &dto, nil
}

// List returns a page of positions
func (s *PositionService) List(ctx context.Context, input ListInput) (*shared.Paginated[PositionDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("department_id", input.DepartmentID)

	list, err := s.positionRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list positions", zap.Error(err))
		return nil, err
	}
	total, err := s.positionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PositionDTO, len(list))
	for i := range list {
		items[i] = ToPositionDTO(&list[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes a position and its reporting line
func (s *PositionService) Update(ctx context.Context, id uuid.UUID, input PositionInput) (*PositionDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.DepartmentID != p.DepartmentID {
		if err := s.ensureDepartment(ctx, input.DepartmentID); err != nil {
			return nil, err
		}
	}
	if err := p.Update(input.Title, input.DepartmentID, input.Level); err != nil {
		return nil, err
	}
	if err := s.reportTo(ctx, p, input.ReportsToID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	dto := ToPositionDTO(p)
	return &dto, nil
}

// Delete removes a position nobody reports to
func (s *PositionService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	reports, err := s.positionRepo.CountReports(ctx, id)
	if err != nil {
		return err
	}
	if reports > 0 {
		return shared.NewDomainErrorf("POSITION_HAS_REPORTS", "%d positions still report to this position", reports)
	}
	if err := s.positionRepo.Delete(ctx, id); err != nil {
		return err
	}
	p.AddDomainEvent(organization.NewPositionEvent(organization.EventTypePositionDeleted, p))
	publish(ctx, s.publisher, s.logger, p)
	return nil
}

// reportTo sets the manager of p after walking the current reporting chain
func (s *PositionService) reportTo(ctx context.Context, p *organization.Position, managerID *uuid.UUID) error {
	if managerID != nil && *managerID != uuid.Nil {
		if *managerID == p.ID {
			return organization.ErrCircularReference
		}
		if _, err := s.positionRepo.FindByID(ctx, *managerID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_MANAGER", "Reporting position not found")
			}
			return err
		}
	}

	all, err := s.positionRepo.FindAllUnpaged(ctx)
	if err != nil {
		return err
	}
	chain := make(map[uuid.UUID]*uuid.UUID, len(all))
	for i := range all {
		chain[all[i].ID] = all[i].ReportsToID
	}
	return p.ReportTo(managerID, chain)
}

func (s *PositionService) ensureDepartment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.departmentRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return errDepartmentNotFound
		}
		return err
	}
	return nil
}

func (s *PositionService) find(ctx context.Context, id uuid.UUID) (*organization.Position, error) {
	p, err := s.positionRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errPositionNotFound
	}
	return p, err
}

func (s *PositionService) save(ctx context.Context, p *organization.Position) error {
	if err := s.positionRepo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save position", zap.String("position_id", p.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, p)
	return nil
}
