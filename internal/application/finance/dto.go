package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ListInput carries the paging and search values of a list request
type ListInput struct {
	Search   string
	Status   string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// FundReferenceInput contains the fields of a fund reference form
type FundReferenceInput struct {
	Code        string
	Name        string
	Description string
}

// FundReferenceDTO represents a fund reference in responses
type FundReferenceDTO struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToFundReferenceDTO converts a domain fund reference
func ToFundReferenceDTO(f *finance.FundReference) FundReferenceDTO {
	return FundReferenceDTO{
		ID:          f.ID,
		Code:        f.Code,
		Name:        f.Name,
		Description: f.Description,
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
		Version:     f.Version,
	}
}

// CreateVoucherSeriesInput contains the fields of a new voucher series
type CreateVoucherSeriesInput struct {
	Prefix      string
	Description string
	StartNumber int64
	EndNumber   int64
	PadWidth    int
}

// UpdateVoucherSeriesInput contains the editable fields of a voucher series
type UpdateVoucherSeriesInput struct {
	Description string
	EndNumber   int64
}

// VoucherSeriesDTO represents a voucher series in responses
type VoucherSeriesDTO struct {
	ID          uuid.UUID `json:"id"`
	Prefix      string    `json:"prefix"`
	Description string    `json:"description,omitempty"`
	StartNumber int64     `json:"start_number"`
	EndNumber   int64     `json:"end_number"`
	NextNumber  int64     `json:"next_number"`
	PadWidth    int       `json:"pad_width"`
	Remaining   int64     `json:"remaining"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToVoucherSeriesDTO converts a domain voucher series
func ToVoucherSeriesDTO(s *finance.VoucherSeries) VoucherSeriesDTO {
	return VoucherSeriesDTO{
		ID:          s.ID,
		Prefix:      s.Prefix,
		Description: s.Description,
		StartNumber: s.StartNumber,
		EndNumber:   s.EndNumber,
		NextNumber:  s.NextNumber,
		PadWidth:    s.PadWidth,
		Remaining:   s.Remaining(),
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}

// IssuedVoucher is the result of issuing a voucher number
type IssuedVoucher struct {
	Number string           `json:"number"`
	Series VoucherSeriesDTO `json:"series"`
}

// PostEntryInput contains the fields of a ledger posting
type PostEntryInput struct {
	TransactionID   string
	AccountType     string
	AccountID       uuid.UUID
	TransactionDate time.Time
	Description     string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	VoucherNumber   string
	FundReferenceID *uuid.UUID
}

// LedgerEntryDTO represents a posted entry in responses
type LedgerEntryDTO struct {
	ID              uuid.UUID       `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	AccountType     string          `json:"account_type"`
	AccountID       uuid.UUID       `json:"account_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
	VoucherNumber   string          `json:"voucher_number,omitempty"`
	FundReferenceID *uuid.UUID      `json:"fund_reference_id,omitempty"`
	PostedBy        *uuid.UUID      `json:"posted_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToLedgerEntryDTO converts a domain ledger entry
func ToLedgerEntryDTO(e *finance.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:              e.ID,
		TransactionID:   e.TransactionID,
		AccountType:     string(e.AccountType),
		AccountID:       e.AccountID,
		TransactionDate: e.TransactionDate,
		Description:     e.Description,
		Debit:           e.Debit,
		Credit:          e.Credit,
		RunningBalance:  e.RunningBalance,
		VoucherNumber:   e.VoucherNumber,
		FundReferenceID: e.FundReferenceID,
		PostedBy:        e.PostedBy,
		CreatedAt:       e.CreatedAt,
	}
}

// ViewInput selects the rows of a ledger view
type ViewInput struct {
	AccountType string
	AccountID   uuid.UUID
	Order       string
	From        *time.Time
	To          *time.Time
	Search      string
}
