package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// FundReferenceModel is the persistence model for fund references
type FundReferenceModel struct {
	AggregateModel
	Code        string                      `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name        string                      `gorm:"type:varchar(200);not null"`
	Description string                      `gorm:"type:text"`
	Status      finance.FundReferenceStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (FundReferenceModel) TableName() string {
	return "fund_references"
}

// ToDomain converts the model to a domain FundReference
func (m *FundReferenceModel) ToDomain() *finance.FundReference {
	return &finance.FundReference{
		BaseAggregateRoot: m.aggregate(),
		Code:              m.Code,
		Name:              m.Name,
		Description:       m.Description,
		Status:            m.Status,
	}
}

// FundReferenceModelFromDomain creates a model from a domain FundReference
func FundReferenceModelFromDomain(f *finance.FundReference) *FundReferenceModel {
	m := &FundReferenceModel{
		Code:        f.Code,
		Name:        f.Name,
		Description: f.Description,
		Status:      f.Status,
	}
	m.setAggregate(f.BaseAggregateRoot)
	return m
}

// VoucherSeriesModel is the persistence model for voucher series
type VoucherSeriesModel struct {
	AggregateModel
	Prefix      string                      `gorm:"type:varchar(10);not null;uniqueIndex"`
	Description string                      `gorm:"type:text"`
	StartNumber int64                       `gorm:"not null"`
	EndNumber   int64                       `gorm:"not null"`
	NextNumber  int64                       `gorm:"not null"`
	PadWidth    int                         `gorm:"not null;default:6"`
	Status      finance.VoucherSeriesStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (VoucherSeriesModel) TableName() string {
	return "voucher_series"
}

// ToDomain converts the model to a domain VoucherSeries
func (m *VoucherSeriesModel) ToDomain() *finance.VoucherSeries {
	return &finance.VoucherSeries{
		BaseAggregateRoot: m.aggregate(),
		Prefix:            m.Prefix,
		Description:       m.Description,
		StartNumber:       m.StartNumber,
		EndNumber:         m.EndNumber,
		NextNumber:        m.NextNumber,
		PadWidth:          m.PadWidth,
		Status:            m.Status,
	}
}

// VoucherSeriesModelFromDomain creates a model from a domain VoucherSeries
func VoucherSeriesModelFromDomain(s *finance.VoucherSeries) *VoucherSeriesModel {
	m := &VoucherSeriesModel{
		Prefix:      s.Prefix,
		Description: s.Description,
		StartNumber: s.StartNumber,
		EndNumber:   s.EndNumber,
		NextNumber:  s.NextNumber,
		PadWidth:    s.PadWidth,
		Status:      s.Status,
	}
	m.setAggregate(s.BaseAggregateRoot)
	return m
}

// LedgerEntryModel is the persistence model for ledger entries
type LedgerEntryModel struct {
	BaseModel
	TransactionID   string              `gorm:"type:varchar(40);not null;uniqueIndex"`
	AccountType     finance.AccountType `gorm:"type:varchar(10);not null;index:idx_ledger_account"`
	AccountID       uuid.UUID           `gorm:"type:uuid;not null;index:idx_ledger_account"`
	TransactionDate time.Time           `gorm:"not null;index:idx_ledger_account"`
	Description     string              `gorm:"type:text"`
	Debit           decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Credit          decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	RunningBalance  decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	VoucherNumber   string              `gorm:"type:varchar(30);index"`
	FundReferenceID *uuid.UUID          `gorm:"type:uuid;index"`
	PostedBy        *uuid.UUID          `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the model to a domain LedgerEntry
func (m *LedgerEntryModel) ToDomain() *finance.LedgerEntry {
	return &finance.LedgerEntry{
		BaseEntity:      m.BaseModel.entity(),
		TransactionID:   m.TransactionID,
		AccountType:     m.AccountType,
		AccountID:       m.AccountID,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		Debit:           m.Debit,
		Credit:          m.Credit,
		RunningBalance:  m.RunningBalance,
		VoucherNumber:   m.VoucherNumber,
		FundReferenceID: m.FundReferenceID,
		PostedBy:        m.PostedBy,
	}
}

// LedgerEntryModelFromDomain creates a model from a domain LedgerEntry
func LedgerEntryModelFromDomain(e *finance.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{
		TransactionID:   e.TransactionID,
		AccountType:     e.AccountType,
		AccountID:       e.AccountID,
		TransactionDate: e.TransactionDate,
		Description:     e.Description,
		Debit:           e.Debit,
		Credit:          e.Credit,
		RunningBalance:  e.RunningBalance,
		VoucherNumber:   e.VoucherNumber,
		FundReferenceID: e.FundReferenceID,
		PostedBy:        e.PostedBy,
	}
	m.setEntity(e.BaseEntity)
	return m
}
