package property

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/property"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var errUnitNotFound = shared.NewDomainError("UNIT_NOT_FOUND", "Unit not found")

// UnitService manages the units of properties
type UnitService struct {
	unitRepo     property.UnitRepository
	propertyRepo property.PropertyRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewUnitService creates a new unit service
func NewUnitService(
	unitRepo property.UnitRepository,
	propertyRepo property.PropertyRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *UnitService {
	return &UnitService{
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create adds a vacant unit to a property
func (s *UnitService) Create(ctx context.Context, input UnitInput) (*UnitDTO, error) {
	p, err := s.propertyRepo.FindByID(ctx, input.PropertyID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueNumber(ctx, p.ID, input.UnitNumber, uuid.Nil); err != nil {
		return nil, err
	}

	unit, err := property.NewUnit(p.ID, input.details())
	if err != nil {
		return nil, err
	}
	unit.SetCreatedBy(shared.ActorFromContext(ctx).ID)
	if err := s.save(ctx, unit); err != nil {
		return nil, err
	}
	s.logger.Info("Unit created",
		zap.String("unit_id", unit.ID.String()),
		zap.String("property_id", p.ID.String()),
		zap.String("unit_number", unit.UnitNumber))

	dto := ToUnitDTO(unit)
	return &dto, nil
}

// GetByID returns a unit
func (s *UnitService) GetByID(ctx context.Context, id uuid.UUID) (*UnitDTO, error) {
	unit, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToUnitDTO(unit)
	return &dto, nil
}

// List returns a page of units. Search matches the unit number.
func (s *UnitService) List(ctx context.Context, input UnitListInput) (*shared.Paginated[UnitDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("status", input.Status).
		With("property_id", input.PropertyID)

	units, err := s.unitRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list units", zap.Error(err))
		return nil, err
	}
	total, err := s.unitRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UnitDTO, len(units))
	for i := range units {
		items[i] = ToUnitDTO(&units[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces the editable fields of a unit
func (s *UnitService) Update(ctx context.Context, id uuid.UUID, input UnitInput) (*UnitDTO, error) {
	unit, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueNumber(ctx, unit.PropertyID, input.UnitNumber, unit.ID); err != nil {
		return nil, err
	}
	if err := unit.Update(input.details()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, unit); err != nil {
		return nil, err
	}

	dto := ToUnitDTO(unit)
	return &dto, nil
}

// Transition moves a unit between vacant, occupied and maintenance
func (s *UnitService) Transition(ctx context.Context, id uuid.UUID, transition UnitTransition) (*UnitDTO, error) {
	unit, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	switch transition {
	case TransitionOccupy:
		err = unit.Occupy()
	case TransitionVacate:
		err = unit.Vacate()
	case TransitionMaintenance:
		err = unit.MarkMaintenance()
	default:
		err = shared.NewDomainErrorf("INVALID_TRANSITION", "Unknown unit transition %q", transition)
	}
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, unit); err != nil {
		return nil, err
	}
	s.logger.Info("Unit status changed",
		zap.String("unit_id", id.String()),
		zap.String("status", string(unit.Status)))

	dto := ToUnitDTO(unit)
	return &dto, nil
}

// Delete removes an unoccupied unit
func (s *UnitService) Delete(ctx context.Context, id uuid.UUID) error {
	unit, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if unit.Status == property.UnitStatusOccupied {
		return shared.NewDomainError("UNIT_OCCUPIED", "An occupied unit cannot be deleted")
	}
	if err := s.unitRepo.Delete(ctx, id); err != nil {
		return err
	}
	unit.AddDomainEvent(property.NewUnitEvent(property.EventTypeUnitDeleted, unit))
	publish(ctx, s.publisher, s.logger, unit)
	return nil
}

// CountByStatus returns the number of units per status
func (s *UnitService) CountByStatus(ctx context.Context) (map[property.UnitStatus]int64, error) {
	return s.unitRepo.CountByStatus(ctx)
}

// ensureUniqueNumber rejects a unit number already used in the property by
// another unit than self
func (s *UnitService) ensureUniqueNumber(ctx context.Context, propertyID uuid.UUID, number string, self uuid.UUID) error {
	number = strings.ToUpper(strings.TrimSpace(number))
	if self != uuid.Nil {
		current, err := s.unitRepo.FindByID(ctx, self)
		if err == nil && current.UnitNumber == number {
			return nil
		}
	}
	taken, err := s.unitRepo.ExistsByNumber(ctx, propertyID, number)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainErrorf("UNIT_NUMBER_EXISTS", "Unit %s already exists in this property", number)
	}
	return nil
}

func (s *UnitService) find(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errUnitNotFound
	}
	return unit, err
}

func (s *UnitService) save(ctx context.Context, unit *property.Unit) error {
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		s.logger.Error("Failed to save unit", zap.String("unit_id", unit.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, unit)
	return nil
}
