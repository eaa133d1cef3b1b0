package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics counts domain activity for dashboards and alerts.
// A nil *BusinessMetrics records nothing.
type BusinessMetrics struct {
	ledgerPostings   *Counter
	vouchersIssued   *Counter
	checklistSaves   *Counter
	leaveRequests    *Counter
	clearanceStarted *Counter
	clearanceClosed  *Counter
	logins           *Counter
	exports          *Counter
	exportDuration   *Histogram
	httpDuration     *Histogram
}

// NewBusinessMetrics registers the instruments on meter
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	var (
		m   BusinessMetrics
		err error
	)
	if m.ledgerPostings, err = NewCounter(meter, "ledger_postings_total", "Ledger entries posted", "{entry}"); err != nil {
		return nil, err
	}
	if m.vouchersIssued, err = NewCounter(meter, "vouchers_issued_total", "Voucher numbers issued", "{voucher}"); err != nil {
		return nil, err
	}
	if m.checklistSaves, err = NewCounter(meter, "checklist_saves_total", "Clearance checklist templates saved", "{save}"); err != nil {
		return nil, err
	}
	if m.leaveRequests, err = NewCounter(meter, "leave_requests_total", "Leave requests filed", "{request}"); err != nil {
		return nil, err
	}
	if m.clearanceStarted, err = NewCounter(meter, "clearances_started_total", "Employee clearances opened", "{clearance}"); err != nil {
		return nil, err
	}
	if m.clearanceClosed, err = NewCounter(meter, "clearances_completed_total", "Employee clearances completed", "{clearance}"); err != nil {
		return nil, err
	}
	if m.logins, err = NewCounter(meter, "login_attempts_total", "Login attempts by outcome", "{attempt}"); err != nil {
		return nil, err
	}
	if m.exports, err = NewCounter(meter, "exports_total", "Generated report exports", "{export}"); err != nil {
		return nil, err
	}
	if m.exportDuration, err = NewHistogram(meter, "export_duration_seconds", "Time to render an export", "s", ExportDurationBuckets...); err != nil {
		return nil, err
	}
	if m.httpDuration, err = NewHistogram(meter, "http_server_duration_seconds", "HTTP request latency", "s", HTTPDurationBuckets...); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordLedgerPosting counts a ledger entry
func (m *BusinessMetrics) RecordLedgerPosting(ctx context.Context, accountType string) {
	if m == nil {
		return
	}
	m.ledgerPostings.Inc(ctx, AttrAccountType.String(accountType))
}

// RecordVoucherIssued counts a voucher number issued from prefix
func (m *BusinessMetrics) RecordVoucherIssued(ctx context.Context, prefix string) {
	if m == nil {
		return
	}
	m.vouchersIssued.Inc(ctx, attribute.String("voucher.prefix", prefix))
}

// RecordChecklistSaved counts a template save
func (m *BusinessMetrics) RecordChecklistSaved(ctx context.Context) {
	if m == nil {
		return
	}
	m.checklistSaves.Inc(ctx)
}

// RecordLeaveRequest counts a leave request of leaveType
func (m *BusinessMetrics) RecordLeaveRequest(ctx context.Context, leaveType string) {
	if m == nil {
		return
	}
	m.leaveRequests.Inc(ctx, attribute.String("leave.type", leaveType))
}

// RecordClearanceStarted counts an opened clearance
func (m *BusinessMetrics) RecordClearanceStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.clearanceStarted.Inc(ctx)
}

// RecordClearanceCompleted counts a completed clearance
func (m *BusinessMetrics) RecordClearanceCompleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.clearanceClosed.Inc(ctx)
}

// RecordLogin counts a login attempt; outcome is success, failure or locked
func (m *BusinessMetrics) RecordLogin(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.logins.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordExport counts an export and its render time
func (m *BusinessMetrics) RecordExport(ctx context.Context, kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.exports.Inc(ctx, AttrExportKind.String(kind))
	m.exportDuration.RecordDuration(ctx, d, AttrExportKind.String(kind))
}

// RecordHTTP records request latency by route and status
func (m *BusinessMetrics) RecordHTTP(ctx context.Context, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.RecordDuration(ctx, d, AttrHTTPRoute.String(route), AttrHTTPStatus.Int(status))
}
