package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/realtyadmin/backend/internal/application/finance"
	"github.com/shopspring/decimal"
)

// LedgerHandler handles ledger posting and running-balance views
type LedgerHandler struct {
	BaseHandler
	ledgerService *financeapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *financeapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// PostEntryRequest posts one debit or credit to an account
type PostEntryRequest struct {
	TransactionID   string          `json:"transaction_id" binding:"max=40" example:"TX-20260105-0a1b2c3d"`
	AccountType     string          `json:"account_type" binding:"required,oneof=client system" example:"client"`
	AccountID       string          `json:"account_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	TransactionDate *time.Time      `json:"transaction_date" example:"2026-01-05T09:30:00Z"`
	Description     string          `json:"description" binding:"required,max=500" example:"January rent collection"`
	Debit           decimal.Decimal `json:"debit" swaggertype:"string" example:"0"`
	Credit          decimal.Decimal `json:"credit" swaggertype:"string" example:"25000.00"`
	VoucherNumber   string          `json:"voucher_number" binding:"max=30" example:"CV-000041"`
	FundReferenceID string          `json:"fund_reference_id" binding:"omitempty,uuid"`
}

// LedgerViewQuery selects an account and the displayed rows
type LedgerViewQuery struct {
	PeriodQuery
	AccountType string `form:"account_type" binding:"required,oneof=client system"`
	AccountID   string `form:"account_id" binding:"required,uuid"`
	Order       string `form:"order" binding:"omitempty,oneof=oldest newest"`
	Search      string `form:"search"`
}

// Post godoc
// @ID           postLedgerEntry
// @Summary      Post a ledger entry
// @Description  Exactly one of debit and credit must be positive. The running balance is
// @Description  previous + credit - debit; entries dated before the latest one are rejected.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        request body PostEntryRequest true "Entry"
// @Success      201 {object} APIResponse[financeapp.LedgerEntryDTO]
// @Failure      400 {object} ValidationErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ledger/entries [post]
func (h *LedgerHandler) Post(c *gin.Context) {
	var req PostEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	fundRefID, _ := parseOptionalID(req.FundReferenceID)
	input := financeapp.PostEntryInput{
		TransactionID:   req.TransactionID,
		AccountType:     req.AccountType,
		AccountID:       uuid.MustParse(req.AccountID),
		Description:     req.Description,
		Debit:           req.Debit,
		Credit:          req.Credit,
		VoucherNumber:   req.VoucherNumber,
		FundReferenceID: fundRefID,
	}
	if req.TransactionDate != nil {
		input.TransactionDate = *req.TransactionDate
	}
	entry, err := h.ledgerService.Post(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// View godoc
// @ID           viewLedger
// @Summary      View an account ledger
// @Description  Rows carry their stored running balance. ending_balance is the balance of the
// @Description  chronologically last row regardless of the display order.
// @Tags         ledger
// @Produce      json
// @Param        account_type query string true  "Account type" Enums(client, system)
// @Param        account_id   query string true  "Owner ID (client) or fund reference ID (system)" format(uuid)
// @Param        order        query string false "Display order" Enums(oldest, newest) default(oldest)
// @Param        from         query string false "First day (YYYY-MM-DD)"
// @Param        to           query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param        search       query string false "Search term (description, transaction id, voucher)"
// @Success      200 {object} APIResponse[finance.LedgerView]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ledger [get]
func (h *LedgerHandler) View(c *gin.Context) {
	var q LedgerViewQuery
	if !h.BindQuery(c, &q) {
		return
	}
	from, to := q.bounds()
	view, err := h.ledgerService.View(c.Request.Context(), financeapp.ViewInput{
		AccountType: q.AccountType,
		AccountID:   uuid.MustParse(q.AccountID),
		Order:       q.Order,
		From:        from,
		To:          to,
		Search:      q.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
