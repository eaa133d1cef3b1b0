package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var errFundReferenceNotFound = shared.NewDomainError("FUND_REFERENCE_NOT_FOUND", "Fund reference not found")

// FundReferenceService manages fund references
type FundReferenceService struct {
	fundRepo   finance.FundReferenceRepository
	ledgerRepo finance.LedgerRepository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewFundReferenceService creates a new fund reference service
func NewFundReferenceService(
	fundRepo finance.FundReferenceRepository,
	ledgerRepo finance.LedgerRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *FundReferenceService {
	return &FundReferenceService{
		fundRepo:   fundRepo,
		ledgerRepo: ledgerRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create registers a fund reference
func (s *FundReferenceService) Create(ctx context.Context, input FundReferenceInput) (*FundReferenceDTO, error) {
	f, err := finance.NewFundReference(input.Code, input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	exists, err := s.fundRepo.ExistsByCode(ctx, f.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("FUND_REFERENCE_CODE_EXISTS", "Fund reference %s already exists", f.Code)
	}
	f.SetCreatedBy(shared.ActorFromContext(ctx).ID)

	if err := s.save(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("Fund reference created", zap.String("fund_reference_id", f.ID.String()), zap.String("code", f.Code))

	dto := ToFundReferenceDTO(f)
	return &dto, nil
}

// GetByID returns a fund reference
func (s *FundReferenceService) GetByID(ctx context.Context, id uuid.UUID) (*FundReferenceDTO, error) {
	f, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToFundReferenceDTO(f)
	return &dto, nil
}

// List returns a page of fund references
func (s *FundReferenceService) List(ctx context.Context, input ListInput) (*shared.Paginated[FundReferenceDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("status", input.Status)

	funds, err := s.fundRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list fund references", zap.Error(err))
		return nil, err
	}
	total, err := s.fundRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]FundReferenceDTO, len(funds))
	for i := range funds {
		items[i] = ToFundReferenceDTO(&funds[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes the name and description
func (s *FundReferenceService) Update(ctx context.Context, id uuid.UUID, input FundReferenceInput) (*FundReferenceDTO, error) {
	f, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := f.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if err := s.save(ctx, f); err != nil {
		return nil, err
	}

	dto := ToFundReferenceDTO(f)
	return &dto, nil
}

// SetActive activates or deactivates a fund reference
func (s *FundReferenceService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*FundReferenceDTO, error) {
	f, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		err = f.Activate()
	} else {
		err = f.Deactivate()
	}
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("Fund reference status changed",
		zap.String("fund_reference_id", id.String()),
		zap.String("status", string(f.Status)))

	dto := ToFundReferenceDTO(f)
	return &dto, nil
}

// Delete removes a fund reference that no ledger entry points to
func (s *FundReferenceService) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	used, err := s.ledgerRepo.CountByFundReference(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return shared.NewDomainErrorf("FUND_REFERENCE_IN_USE", "Fund reference is used by %d ledger entries", used)
	}
	if err := s.fundRepo.Delete(ctx, id); err != nil {
		return err
	}
	f.AddDomainEvent(finance.NewFundReferenceEvent(finance.EventTypeFundReferenceDeleted, f))
	publish(ctx, s.publisher, s.logger, f)

	s.logger.Info("Fund reference deleted", zap.String("fund_reference_id", id.String()))
	return nil
}

func (s *FundReferenceService) find(ctx context.Context, id uuid.UUID) (*finance.FundReference, error) {
	f, err := s.fundRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errFundReferenceNotFound
	}
	return f, err
}

func (s *FundReferenceService) save(ctx context.Context, f *finance.FundReference) error {
	if err := s.fundRepo.Save(ctx, f); err != nil {
		s.logger.Error("Failed to save fund reference", zap.String("fund_reference_id", f.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, f)
	return nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.AggregateRoot) {
	if err := shared.PublishAndClear(ctx, publisher, aggregate); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.String("aggregate_id", aggregate.GetID().String()),
			zap.Error(err))
	}
}
