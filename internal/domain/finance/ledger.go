package finance

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountType distinguishes client ledgers from system (fund) ledgers
type AccountType string

const (
	AccountTypeClient AccountType = "client"
	AccountTypeSystem AccountType = "system"
)

// IsValid reports whether t is a known account type
func (t AccountType) IsValid() bool {
	return t == AccountTypeClient || t == AccountTypeSystem
}

// CodeTransactionExists is returned when a transaction id was already posted
const CodeTransactionExists = "TRANSACTION_EXISTS"

func TransactionExistsError(txID string) error {
	return shared.NewDomainErrorf(CodeTransactionExists, "Transaction %s was already posted", txID)
}

// LedgerEntry is an immutable posting on an account. RunningBalance is the
// account balance right after this entry and is fixed at posting time.
type LedgerEntry struct {
	shared.BaseEntity
	TransactionID   string
	AccountType     AccountType
	AccountID       uuid.UUID
	TransactionDate time.Time
	Description     string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	RunningBalance  decimal.Decimal
	VoucherNumber   string
	FundReferenceID *uuid.UUID
	PostedBy        *uuid.UUID
}

// PostingInput carries the caller supplied fields of a new entry
type PostingInput struct {
	TransactionID   string
	AccountType     AccountType
	AccountID       uuid.UUID
	TransactionDate time.Time
	Description     string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	VoucherNumber   string
	FundReferenceID *uuid.UUID
	PostedBy        *uuid.UUID
}

// NewLedgerEntry builds the next entry of an account. previous is the latest
// entry of the account or nil for the first posting.
func NewLedgerEntry(in PostingInput, previous *LedgerEntry) (*LedgerEntry, error) {
	if !in.AccountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "account type must be client or system")
	}
	if in.AccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "account is required")
	}
	if in.Debit.IsNegative() || in.Credit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "amounts cannot be negative")
	}
	if in.Debit.IsPositive() == in.Credit.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "exactly one of debit or credit must be positive")
	}
	if in.TransactionDate.IsZero() {
		in.TransactionDate = time.Now()
	}
	// stored at microsecond precision; ties must be detected at that resolution
	in.TransactionDate = in.TransactionDate.Truncate(time.Microsecond)

	balance := decimal.Zero
	if previous != nil {
		if in.TransactionDate.Before(previous.TransactionDate) {
			return nil, shared.NewDomainError("BACKDATED_ENTRY", "transaction date is earlier than the latest entry of the account")
		}
		balance = previous.RunningBalance
	}

	txID := strings.TrimSpace(in.TransactionID)
	if txID == "" {
		txID, in.TransactionDate = nextTransactionID(in.TransactionDate, previous)
	} else if previous != nil && in.TransactionDate.Equal(previous.TransactionDate) && txID <= previous.TransactionID {
		return nil, shared.NewDomainErrorf("OUT_OF_ORDER_ENTRY",
			"transaction %s shares the timestamp of %s and must sort after it", txID, previous.TransactionID)
	}

	return &LedgerEntry{
		BaseEntity:      shared.NewBaseEntity(),
		TransactionID:   txID,
		AccountType:     in.AccountType,
		AccountID:       in.AccountID,
		TransactionDate: in.TransactionDate,
		Description:     strings.TrimSpace(in.Description),
		Debit:           in.Debit.Round(2),
		Credit:          in.Credit.Round(2),
		RunningBalance:  balance.Add(in.Credit).Sub(in.Debit).Round(2),
		VoucherNumber:   strings.TrimSpace(in.VoucherNumber),
		FundReferenceID: in.FundReferenceID,
		PostedBy:        in.PostedBy,
	}, nil
}

// NewTransactionID returns an identifier of the form TX-yyyymmdd-xxxxxxxx
func NewTransactionID(at time.Time) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		copy(b[:], uuid.New().String())
	}
	return transactionPrefix(at) + hex.EncodeToString(b[:])
}

func transactionPrefix(at time.Time) string {
	return "TX-" + at.Format("20060102") + "-"
}

// nextTransactionID generates an id for an entry at. Rows with equal
// timestamps are ordered by transaction id, so an entry tied with previous
// gets an id sorting after it: a fresh random id when one does, otherwise the
// successor of previous's suffix. When neither exists (a supplied id like
// "TX-zzz" on the same date) the entry moves one microsecond later instead.
func nextTransactionID(at time.Time, previous *LedgerEntry) (string, time.Time) {
	id := NewTransactionID(at)
	if previous == nil || !at.Equal(previous.TransactionDate) || id > previous.TransactionID {
		return id, at
	}
	prefix := transactionPrefix(at)
	if suffix, ok := strings.CutPrefix(previous.TransactionID, prefix); ok && len(suffix) == 8 {
		if n, err := strconv.ParseUint(suffix, 16, 32); err == nil && n < math.MaxUint32 {
			return fmt.Sprintf("%s%08x", prefix, n+1), at
		}
	}
	at = at.Add(time.Microsecond)
	return NewTransactionID(at), at
}

// Row returns the display form of the entry
func (e *LedgerEntry) Row() LedgerRow {
	return LedgerRow{
		TransactionID:  e.TransactionID,
		AccountType:    e.AccountType,
		AccountID:      e.AccountID,
		Timestamp:      e.TransactionDate,
		Description:    e.Description,
		Debit:          e.Debit,
		Credit:         e.Credit,
		RunningBalance: e.RunningBalance,
		VoucherNumber:  e.VoucherNumber,
	}
}
