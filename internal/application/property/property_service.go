package property

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/property"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var errPropertyNotFound = shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")

// PropertyService manages properties
type PropertyService struct {
	propertyRepo property.PropertyRepository
	ownerRepo    property.OwnerRepository
	unitRepo     property.UnitRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(
	propertyRepo property.PropertyRepository,
	ownerRepo property.OwnerRepository,
	unitRepo property.UnitRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		ownerRepo:    ownerRepo,
		unitRepo:     unitRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create registers a property for an existing owner
func (s *PropertyService) Create(ctx context.Context, input PropertyInput) (dto *PropertyDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "property", "Create", telemetry.AttrEntityType.String(property.AggregateTypeProperty))
	defer func() { telemetry.EndSpan(span, err) }()

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	exists, err := s.propertyRepo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("PROPERTY_CODE_EXISTS", "Property code %s already exists", code)
	}
	owner, err := s.owner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	p, err := property.NewProperty(code, owner.ID, input.details())
	if err != nil {
		return nil, err
	}
	p.SetCreatedBy(shared.ActorFromContext(ctx).ID)

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Property created",
		zap.String("property_id", p.ID.String()),
		zap.String("code", p.Code),
		zap.String("owner_id", owner.ID.String()))

	out := ToPropertyDTO(p)
	out.OwnerName = owner.Name
	return &out, nil
}

// GetByID returns a property with its owner name and unit count
func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*PropertyDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToPropertyDTO(p)
	if owner, err := s.ownerRepo.FindByID(ctx, p.OwnerID); err == nil {
		dto.OwnerName = owner.Name
	}
	if dto.UnitCount, err = s.unitRepo.CountByProperty(ctx, id); err != nil {
		return nil, err
	}
	return &dto, nil
}

// List returns a page of properties
func (s *PropertyService) List(ctx context.Context, input ListInput) (*shared.Paginated[PropertyDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("status", input.Status).
		With("type", input.Type).
		With("owner_id", input.OwnerID)

	props, err := s.propertyRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list properties", zap.Error(err))
		return nil, err
	}
	total, err := s.propertyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	items := make([]PropertyDTO, len(props))
	for i := range props {
		items[i] = ToPropertyDTO(&props[i])
		name, ok := names[props[i].OwnerID]
		if !ok {
			if owner, err := s.ownerRepo.FindByID(ctx, props[i].OwnerID); err == nil {
				name = owner.Name
			}
			names[props[i].OwnerID] = name
		}
		items[i].OwnerName = name
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces the editable fields of a property
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, input PropertyInput) (*PropertyDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(input.details()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	dto := ToPropertyDTO(p)
	return &dto, nil
}

// SetStatus activates or deactivates a property
func (s *PropertyService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*PropertyDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.SetStatus(property.Status(status)); err != nil {
		return nil, err
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	dto := ToPropertyDTO(p)
	return &dto, nil
}

// TransferOwnership moves a property to another existing owner
func (s *PropertyService) TransferOwnership(ctx context.Context, id, ownerID uuid.UUID) (dto *PropertyDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "property", "TransferOwnership", telemetry.AttrEntityID.String(id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.owner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	from := p.OwnerID
	if err := p.TransferOwnership(owner.ID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Property ownership transferred",
		zap.String("property_id", id.String()),
		zap.String("from_owner", from.String()),
		zap.String("to_owner", owner.ID.String()))

	out := ToPropertyDTO(p)
	out.OwnerName = owner.Name
	return &out, nil
}

// Delete removes a property that has no units
func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.unitRepo.CountByProperty(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainErrorf("PROPERTY_HAS_UNITS", "Property still has %d units", count)
	}
	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}
	p.AddDomainEvent(property.NewPropertyEvent(property.EventTypePropertyDeleted, p))
	publish(ctx, s.publisher, s.logger, p)

	s.logger.Info("Property deleted", zap.String("property_id", id.String()))
	return nil
}

func (s *PropertyService) owner(ctx context.Context, id uuid.UUID) (*property.Owner, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner is required")
	}
	owner, err := s.ownerRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errOwnerNotFound
	}
	if err != nil {
		return nil, err
	}
	if owner.Status != property.OwnerStatusActive {
		return nil, shared.NewDomainError("OWNER_INACTIVE", "Owner is inactive")
	}
	return owner, nil
}

func (s *PropertyService) find(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	p, err := s.propertyRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errPropertyNotFound
	}
	return p, err
}

func (s *PropertyService) save(ctx context.Context, p *property.Property) error {
	if err := s.propertyRepo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save property", zap.String("property_id", p.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, p)
	return nil
}
