package finance

import (
	"fmt"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

const (
	AggregateTypeFundReference = "FundReference"
	AggregateTypeVoucherSeries = "VoucherSeries"
	AggregateTypeLedgerEntry   = "LedgerEntry"
)

const (
	EventTypeFundReferenceCreated = "FundReferenceCreated"
	EventTypeFundReferenceUpdated = "FundReferenceUpdated"
	EventTypeFundReferenceDeleted = "FundReferenceDeleted"
	EventTypeVoucherSeriesCreated = "VoucherSeriesCreated"
	EventTypeVoucherSeriesUpdated = "VoucherSeriesUpdated"
	EventTypeVoucherSeriesDeleted = "VoucherSeriesDeleted"
	EventTypeVoucherIssued        = "VoucherIssued"
	EventTypeLedgerEntryPosted    = "LedgerEntryPosted"
)

// FundReferenceEvent covers fund reference lifecycle changes
type FundReferenceEvent struct {
	shared.BaseDomainEvent
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// NewFundReferenceEvent creates a fund reference event of the given type
func NewFundReferenceEvent(eventType string, f *FundReference) *FundReferenceEvent {
	return &FundReferenceEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeFundReference, f.ID),
		Code:            f.Code,
		Name:            f.Name,
		Status:          string(f.Status),
	}
}

func (e *FundReferenceEvent) Describe() string {
	switch e.Type {
	case EventTypeFundReferenceCreated:
		return fmt.Sprintf("Created fund reference %s (%s)", e.Code, e.Name)
	case EventTypeFundReferenceDeleted:
		return fmt.Sprintf("Deleted fund reference %s", e.Code)
	}
	return fmt.Sprintf("Updated fund reference %s, status %s", e.Code, e.Status)
}

// VoucherSeriesEvent covers voucher series changes and issued numbers
type VoucherSeriesEvent struct {
	shared.BaseDomainEvent
	Prefix        string `json:"prefix"`
	Status        string `json:"status"`
	VoucherNumber string `json:"voucher_number,omitempty"`
}

// NewVoucherSeriesEvent creates a voucher series event of the given type
func NewVoucherSeriesEvent(eventType string, s *VoucherSeries, number string) *VoucherSeriesEvent {
	return &VoucherSeriesEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeVoucherSeries, s.ID),
		Prefix:          s.Prefix,
		Status:          string(s.Status),
		VoucherNumber:   number,
	}
}

func (e *VoucherSeriesEvent) Describe() string {
	switch e.Type {
	case EventTypeVoucherIssued:
		return fmt.Sprintf("Issued voucher %s", e.VoucherNumber)
	case EventTypeVoucherSeriesCreated:
		return fmt.Sprintf("Created voucher series %s", e.Prefix)
	case EventTypeVoucherSeriesDeleted:
		return fmt.Sprintf("Deleted voucher series %s", e.Prefix)
	}
	return fmt.Sprintf("Updated voucher series %s, status %s", e.Prefix, e.Status)
}

// LedgerEntryPostedEvent is raised after an entry is stored
type LedgerEntryPostedEvent struct {
	shared.BaseDomainEvent
	TransactionID  string `json:"transaction_id"`
	AccountType    string `json:"account_type"`
	AccountID      string `json:"account_id"`
	Debit          string `json:"debit"`
	Credit         string `json:"credit"`
	RunningBalance string `json:"running_balance"`
}

// NewLedgerEntryPostedEvent creates the event for a stored entry
func NewLedgerEntryPostedEvent(e *LedgerEntry) *LedgerEntryPostedEvent {
	return &LedgerEntryPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerEntryPosted, AggregateTypeLedgerEntry, e.ID),
		TransactionID:   e.TransactionID,
		AccountType:     string(e.AccountType),
		AccountID:       e.AccountID.String(),
		Debit:           e.Debit.StringFixed(2),
		Credit:          e.Credit.StringFixed(2),
		RunningBalance:  e.RunningBalance.StringFixed(2),
	}
}

func (e *LedgerEntryPostedEvent) Describe() string {
	return fmt.Sprintf("Posted %s to %s ledger (debit %s, credit %s, balance %s)",
		e.TransactionID, e.AccountType, e.Debit, e.Credit, e.RunningBalance)
}
