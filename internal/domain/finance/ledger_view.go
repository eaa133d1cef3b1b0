package finance

import (
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SortOrder is the display direction of a ledger
type SortOrder string

const (
	SortOldestFirst SortOrder = "oldest"
	SortNewestFirst SortOrder = "newest"
)

// ParseSortOrder maps a query value to a SortOrder, defaulting to oldest first
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == SortNewestFirst {
		return SortNewestFirst
	}
	return SortOldestFirst
}

// LedgerRow is one displayed transaction with its stored running balance
type LedgerRow struct {
	TransactionID  string          `json:"transaction_id"`
	AccountType    AccountType     `json:"account_type"`
	AccountID      uuid.UUID       `json:"account_id"`
	Timestamp      time.Time       `json:"timestamp"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
	VoucherNumber  string          `json:"voucher_number,omitempty"`
}

// LedgerView is an ordered set of rows plus the account's ending balance
type LedgerView struct {
	Order         SortOrder       `json:"order"`
	Rows          []LedgerRow     `json:"rows"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
}

// BuildView orders rows chronologically (timestamp, then transaction id),
// reversing for newest first. The ending balance is the supplied balance of
// the chronologically last row; balances are never recomputed.
func BuildView(rows []LedgerRow, order SortOrder) LedgerView {
	sorted := make([]LedgerRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.TransactionID < b.TransactionID
	})

	ending := decimal.Zero
	if n := len(sorted); n > 0 {
		ending = sorted[n-1].RunningBalance
	}

	if order == SortNewestFirst {
		slices.Reverse(sorted)
	} else {
		order = SortOldestFirst
	}

	return LedgerView{
		Order:         order,
		Rows:          sorted,
		EndingBalance: ending,
	}
}

// MergeRows concatenates row sets, dropping repeated transaction ids.
// The first occurrence wins.
func MergeRows(sets ...[]LedgerRow) []LedgerRow {
	total := 0
	for _, s := range sets {
		total += len(s)
	}
	seen := make(map[string]struct{}, total)
	out := make([]LedgerRow, 0, total)
	for _, s := range sets {
		for _, r := range s {
			if _, ok := seen[r.TransactionID]; ok {
				continue
			}
			seen[r.TransactionID] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
