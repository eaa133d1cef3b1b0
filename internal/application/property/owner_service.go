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

var errOwnerNotFound = shared.NewDomainError("OWNER_NOT_FOUND", "Owner not found")

// OwnerService manages property owners
type OwnerService struct {
	ownerRepo    property.OwnerRepository
	propertyRepo property.PropertyRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewOwnerService creates a new owner service
func NewOwnerService(
	ownerRepo property.OwnerRepository,
	propertyRepo property.PropertyRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OwnerService {
	return &OwnerService{
		ownerRepo:    ownerRepo,
		propertyRepo: propertyRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create registers a new owner
func (s *OwnerService) Create(ctx context.Context, input OwnerInput) (dto *OwnerDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "owner", "Create", telemetry.AttrEntityType.String(property.AggregateTypeOwner))
	defer func() { telemetry.EndSpan(span, err) }()

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	exists, err := s.ownerRepo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("OWNER_CODE_EXISTS", "Owner code %s already exists", code)
	}

	owner, err := property.NewOwner(code, input.details())
	if err != nil {
		return nil, err
	}
	owner.SetCreatedBy(shared.ActorFromContext(ctx).ID)

	if err := s.save(ctx, owner); err != nil {
		return nil, err
	}
	s.logger.Info("Owner created", zap.String("owner_id", owner.ID.String()), zap.String("code", owner.Code))

	out := ToOwnerDTO(owner)
	return &out, nil
}

// GetByID returns an owner with its property count
func (s *OwnerService) GetByID(ctx context.Context, id uuid.UUID) (*OwnerDTO, error) {
	owner, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToOwnerDTO(owner)
	if dto.PropertyCount, err = s.propertyRepo.CountByOwner(ctx, id); err != nil {
		return nil, err
	}
	return &dto, nil
}

// List returns a page of owners matching the search
func (s *OwnerService) List(ctx context.Context, input ListInput) (*shared.Paginated[OwnerDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("status", input.Status)

	owners, err := s.ownerRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list owners", zap.Error(err))
		return nil, err
	}
	total, err := s.ownerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OwnerDTO, len(owners))
	for i := range owners {
		items[i] = ToOwnerDTO(&owners[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update replaces the contact fields of an owner. The code cannot change.
func (s *OwnerService) Update(ctx context.Context, id uuid.UUID, input OwnerInput) (*OwnerDTO, error) {
	owner, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := owner.Update(input.details()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, owner); err != nil {
		return nil, err
	}
	s.logger.Info("Owner updated", zap.String("owner_id", id.String()))

	dto := ToOwnerDTO(owner)
	return &dto, nil
}

// SetActive activates or deactivates an owner
func (s *OwnerService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*OwnerDTO, error) {
	owner, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		err = owner.Activate()
	} else {
		err = owner.Deactivate()
	}
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, owner); err != nil {
		return nil, err
	}

	dto := ToOwnerDTO(owner)
	return &dto, nil
}

// Delete removes an owner that no longer has properties
func (s *OwnerService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "owner", "Delete", telemetry.AttrEntityID.String(id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	owner, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.propertyRepo.CountByOwner(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainErrorf("OWNER_HAS_PROPERTIES", "Owner still has %d properties", count)
	}

	if err := s.ownerRepo.Delete(ctx, id); err != nil {
		return err
	}
	owner.AddDomainEvent(property.NewOwnerEvent(property.EventTypeOwnerDeleted, owner))
	publish(ctx, s.publisher, s.logger, owner)

	s.logger.Info("Owner deleted", zap.String("owner_id", id.String()), zap.String("code", owner.Code))
	return nil
}

func (s *OwnerService) find(ctx context.Context, id uuid.UUID) (*property.Owner, error) {
	owner, err := s.ownerRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errOwnerNotFound
	}
	return owner, err
}

func (s *OwnerService) save(ctx context.Context, owner *property.Owner) error {
	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		s.logger.Error("Failed to save owner", zap.String("owner_id", owner.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, owner)
	return nil
}

// publish sends the pending events of an aggregate. A failing subscriber does
// not undo the write that raised the events.
func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.AggregateRoot) {
	if err := shared.PublishAndClear(ctx, publisher, aggregate); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.String("aggregate_id", aggregate.GetID().String()),
			zap.Error(err))
	}
}
