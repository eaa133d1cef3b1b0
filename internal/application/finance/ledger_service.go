package finance

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/realtyadmin/backend/internal/domain/property"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// maxViewRows caps the rows loaded for one ledger view
const maxViewRows = 5000

// LedgerService posts entries and builds running-balance views.
// Client accounts are keyed by owner id; the system account of a fund is
// keyed by the fund reference id.
type LedgerService struct {
	ledgerRepo finance.LedgerRepository
	fundRepo   finance.FundReferenceRepository
	ownerRepo  property.OwnerRepository
	publisher  shared.EventPublisher
	metrics    *telemetry.BusinessMetrics
	logger     *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	ledgerRepo finance.LedgerRepository,
	fundRepo finance.FundReferenceRepository,
	ownerRepo property.OwnerRepository,
	publisher shared.EventPublisher,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		fundRepo:   fundRepo,
		ownerRepo:  ownerRepo,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Post appends an entry to an account. The latest entry is read and the new
// one written inside one transaction so the running balance chains.
func (s *LedgerService) Post(ctx context.Context, input PostEntryInput) (dto *LedgerEntryDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "Post",
		telemetry.AttrAccountType.String(input.AccountType),
		telemetry.AttrEntityID.String(input.AccountID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	accountType := finance.AccountType(strings.ToLower(strings.TrimSpace(input.AccountType)))
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type must be client or system")
	}
	fundRef, err := s.resolveAccount(ctx, accountType, input.AccountID, input.FundReferenceID)
	if err != nil {
		return nil, err
	}

	txID := strings.TrimSpace(input.TransactionID)
	posting := finance.PostingInput{
		TransactionID:   txID,
		AccountType:     accountType,
		AccountID:       input.AccountID,
		TransactionDate: input.TransactionDate,
		Description:     input.Description,
		Debit:           input.Debit,
		Credit:          input.Credit,
		VoucherNumber:   input.VoucherNumber,
		FundReferenceID: fundRef,
	}
	if actor := shared.ActorFromContext(ctx); actor.ID != uuid.Nil {
		posting.PostedBy = &actor.ID
	}

	var entry *finance.LedgerEntry
	err = s.ledgerRepo.WithinTransaction(ctx, func(repo finance.LedgerRepository) error {
		prev, err := repo.Latest(ctx, accountType, input.AccountID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if errors.Is(err, shared.ErrNotFound) {
			prev = nil
		}
		// checked under the account lock; a racing post on another account
		// with the same id is caught by the unique index in Create
		if txID != "" {
			taken, err := repo.ExistsByTransactionID(ctx, txID)
			if err != nil {
				return err
			}
			if taken {
				return finance.TransactionExistsError(txID)
			}
		}
		entry, err = finance.NewLedgerEntry(posting, prev)
		if err != nil {
			return err
		}
		return repo.Create(ctx, entry)
	})
	if err != nil {
		var de *shared.DomainError
		if !errors.As(err, &de) {
			s.logger.Error("Failed to post ledger entry",
				zap.String("account_type", string(accountType)),
				zap.String("account_id", input.AccountID.String()),
				zap.Error(err))
		}
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, finance.NewLedgerEntryPostedEvent(entry)); err != nil {
			s.logger.Warn("Failed to publish ledger event", zap.String("transaction_id", entry.TransactionID), zap.Error(err))
		}
	}
	s.metrics.RecordLedgerPosting(ctx, string(accountType))
	s.logger.Info("Ledger entry posted",
		zap.String("transaction_id", entry.TransactionID),
		zap.String("account_type", string(accountType)),
		zap.String("account_id", input.AccountID.String()),
		zap.String("running_balance", entry.RunningBalance.StringFixed(2)))

	out := ToLedgerEntryDTO(entry)
	return &out, nil
}

// View loads the rows of one account and orders them for display
func (s *LedgerService) View(ctx context.Context, input ViewInput) (*finance.LedgerView, error) {
	accountType := finance.AccountType(strings.ToLower(strings.TrimSpace(input.AccountType)))
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type must be client or system")
	}
	if input.AccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account is required")
	}
	if input.From != nil && input.To != nil && input.To.Before(*input.From) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "End of period is before its start")
	}

	entries, err := s.ledgerRepo.Find(ctx, finance.LedgerQuery{
		AccountType: accountType,
		AccountID:   input.AccountID,
		From:        input.From,
		To:          input.To,
		Search:      input.Search,
		Limit:       maxViewRows,
	})
	if err != nil {
		s.logger.Error("Failed to load ledger", zap.String("account_id", input.AccountID.String()), zap.Error(err))
		return nil, err
	}

	rows := make([]finance.LedgerRow, len(entries))
	for i := range entries {
		rows[i] = entries[i].Row()
	}
	view := finance.BuildView(rows, finance.ParseSortOrder(input.Order))
	return &view, nil
}

// resolveAccount checks that the account exists and returns the fund
// reference the entry is charged to
func (s *LedgerService) resolveAccount(ctx context.Context, accountType finance.AccountType, accountID uuid.UUID, fundRefID *uuid.UUID) (*uuid.UUID, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account is required")
	}

	if accountType == finance.AccountTypeSystem {
		if fundRefID != nil && *fundRefID != accountID {
			return nil, shared.NewDomainError("INVALID_ACCOUNT", "A system account belongs to its own fund reference")
		}
		fundRefID = &accountID
	} else {
		if _, err := s.ownerRepo.FindByID(ctx, accountID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("OWNER_NOT_FOUND", "Client account does not exist")
			}
			return nil, err
		}
	}

	if fundRefID == nil {
		return nil, nil
	}
	fund, err := s.fundRepo.FindByID(ctx, *fundRefID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errFundReferenceNotFound
	}
	if err != nil {
		return nil, err
	}
	if !fund.IsActive() {
		return nil, shared.NewDomainErrorf("FUND_REFERENCE_INACTIVE", "Fund reference %s is inactive", fund.Code)
	}
	id := fund.ID
	return &id, nil
}
