package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// issueAttempts bounds the reload-and-retry loop on version conflicts
const issueAttempts = 3

var errVoucherSeriesNotFound = shared.NewDomainError("VOUCHER_SERIES_NOT_FOUND", "Voucher series not found")

// VoucherService manages voucher series and issues voucher numbers
type VoucherService struct {
	seriesRepo finance.VoucherSeriesRepository
	publisher  shared.EventPublisher
	metrics    *telemetry.BusinessMetrics
	logger     *zap.Logger
}

// NewVoucherService creates a new voucher service
func NewVoucherService(
	seriesRepo finance.VoucherSeriesRepository,
	publisher shared.EventPublisher,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *VoucherService {
	return &VoucherService{
		seriesRepo: seriesRepo,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Create registers a voucher series
func (s *VoucherService) Create(ctx context.Context, input CreateVoucherSeriesInput) (*VoucherSeriesDTO, error) {
	series, err := finance.NewVoucherSeries(input.Prefix, input.Description, input.StartNumber, input.EndNumber, input.PadWidth)
	if err != nil {
		return nil, err
	}
	exists, err := s.seriesRepo.ExistsByPrefix(ctx, series.Prefix)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("VOUCHER_PREFIX_EXISTS", "Voucher prefix %s already exists", series.Prefix)
	}
	series.SetCreatedBy(shared.ActorFromContext(ctx).ID)

	if err := s.save(ctx, series); err != nil {
		return nil, err
	}
	s.logger.Info("Voucher series created",
		zap.String("series_id", series.ID.String()),
		zap.String("prefix", series.Prefix),
		zap.Int64("start", series.StartNumber),
		zap.Int64("end", series.EndNumber))

	dto := ToVoucherSeriesDTO(series)
	return &dto, nil
}

// GetByID returns a voucher series
func (s *VoucherService) GetByID(ctx context.Context, id uuid.UUID) (*VoucherSeriesDTO, error) {
	series, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToVoucherSeriesDTO(series)
	return &dto, nil
}

// List returns a page of voucher series
func (s *VoucherService) List(ctx context.Context, input ListInput) (*shared.Paginated[VoucherSeriesDTO], error) {
	filter := shared.NewFilter(input.Page, input.PageSize, input.Search, input.OrderBy, input.OrderDir).
		With("status", input.Status)

	list, err := s.seriesRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list voucher series", zap.Error(err))
		return nil, err
	}
	total, err := s.seriesRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]VoucherSeriesDTO, len(list))
	for i := range list {
		items[i] = ToVoucherSeriesDTO(&list[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes the description and extends the range
func (s *VoucherService) Update(ctx context.Context, id uuid.UUID, input UpdateVoucherSeriesInput) (*VoucherSeriesDTO, error) {
	series, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	expected := series.Version
	if err := series.Update(input.Description, input.EndNumber); err != nil {
		return nil, err
	}
	if err := s.saveVersioned(ctx, series, expected); err != nil {
		return nil, err
	}

	dto := ToVoucherSeriesDTO(series)
	return &dto, nil
}

// SetActive activates or deactivates a series
func (s *VoucherService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*VoucherSeriesDTO, error) {
	series, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	expected := series.Version
	if active {
		err = series.Activate()
	} else {
		err = series.Deactivate()
	}
	if err != nil {
		return nil, err
	}
	if err := s.saveVersioned(ctx, series, expected); err != nil {
		return nil, err
	}

	dto := ToVoucherSeriesDTO(series)
	return &dto, nil
}

// IssueNext hands out the next number of a series. A concurrent issue is
// detected through the version column; the series is reloaded and the issue
// retried a bounded number of times before CONCURRENCY_CONFLICT surfaces.
func (s *VoucherService) IssueNext(ctx context.Context, id uuid.UUID) (issued *IssuedVoucher, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "voucher", "IssueNext", telemetry.AttrEntityID.String(id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	for attempt := 1; attempt <= issueAttempts; attempt++ {
		series, err := s.find(ctx, id)
		if err != nil {
			return nil, err
		}
		expected := series.Version
		number, err := series.IssueNext()
		if err != nil {
			return nil, err
		}

		err = s.seriesRepo.SaveWithVersion(ctx, series, expected)
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			s.logger.Warn("Voucher issue lost a version race",
				zap.String("series_id", id.String()),
				zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			s.logger.Error("Failed to save voucher series", zap.String("series_id", id.String()), zap.Error(err))
			return nil, err
		}

		publish(ctx, s.publisher, s.logger, series)
		s.metrics.RecordVoucherIssued(ctx, series.Prefix)
		s.logger.Info("Voucher issued",
			zap.String("series_id", id.String()),
			zap.String("number", number),
			zap.Int64("remaining", series.Remaining()))

		return &IssuedVoucher{Number: number, Series: ToVoucherSeriesDTO(series)}, nil
	}
	return nil, shared.ErrConcurrencyConflict
}

// Delete removes an unused series. Once a number was issued the series is
// kept for the audit trail and can only be deactivated.
func (s *VoucherService) Delete(ctx context.Context, id uuid.UUID) error {
	series, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if series.NextNumber > series.StartNumber {
		return shared.NewDomainError("VOUCHER_SERIES_IN_USE", "Voucher series has issued numbers and cannot be deleted")
	}
	if err := s.seriesRepo.Delete(ctx, id); err != nil {
		return err
	}
	series.AddDomainEvent(finance.NewVoucherSeriesEvent(finance.EventTypeVoucherSeriesDeleted, series, ""))
	publish(ctx, s.publisher, s.logger, series)
	return nil
}

func (s *VoucherService) find(ctx context.Context, id uuid.UUID) (*finance.VoucherSeries, error) {
	series, err := s.seriesRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errVoucherSeriesNotFound
	}
	return series, err
}

func (s *VoucherService) save(ctx context.Context, series *finance.VoucherSeries) error {
	if err := s.seriesRepo.Save(ctx, series); err != nil {
		s.logger.Error("Failed to save voucher series", zap.String("series_id", series.ID.String()), zap.Error(err))
		return err
	}
	publish(ctx, s.publisher, s.logger, series)
	return nil
}

func (s *VoucherService) saveVersioned(ctx context.Context, series *finance.VoucherSeries, expected int) error {
	if err := s.seriesRepo.SaveWithVersion(ctx, series, expected); err != nil {
		return err
	}
	publish(ctx, s.publisher, s.logger, series)
	return nil
}
