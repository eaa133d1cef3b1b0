package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/realtyadmin/backend/internal/application/audit"
	hrapp "github.com/realtyadmin/backend/internal/application/hr"
	"github.com/realtyadmin/backend/internal/domain/audit"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/export"
	"github.com/realtyadmin/backend/internal/infrastructure/printing"
	"github.com/realtyadmin/backend/internal/infrastructure/storage"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	KindActivity  = "activity_log"
	KindLeave     = "leave"
	KindTardiness = "tardiness"

	defaultMaxRows = 5000
)

var (
	ErrArchiveDisabled = shared.NewDomainError("ARCHIVE_DISABLED", "export archiving is not configured")
	ErrPDFUnavailable  = shared.NewDomainError("PDF_UNAVAILABLE", "PDF rendering is not enabled")
)

// File is a generated export. When archived, URL points at the stored copy.
type File struct {
	Name        string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Data        []byte     `json:"-"`
	Size        int        `json:"size"`
	URL         string     `json:"url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Archived reports whether the file was uploaded to object storage
func (f *File) Archived() bool {
	return f.URL != ""
}

// Config holds export settings
type Config struct {
	CompanyName string
	// MaxRows caps the activity report; zero uses the default
	MaxRows int
	// Location formats report timestamps; nil uses UTC
	Location *time.Location
	// LinkExpiry of archived exports; zero uses the store default
	LinkExpiry time.Duration
}

// ExportService produces downloadable reports
type ExportService struct {
	audit    *auditapp.AuditService
	reports  *hrapp.ReportService
	renderer printing.PDFRenderer
	store    storage.ObjectStorage
	cfg      Config
	metrics  *telemetry.BusinessMetrics
	logger   *zap.Logger
}

// NewExportService creates a new export service.
// renderer and store may be nil when PDF rendering or archiving is disabled.
func NewExportService(
	auditService *auditapp.AuditService,
	reports *hrapp.ReportService,
	renderer printing.PDFRenderer,
	store storage.ObjectStorage,
	cfg Config,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *ExportService {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = defaultMaxRows
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &ExportService{
		audit:    auditService,
		reports:  reports,
		renderer: renderer,
		store:    store,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}
}

// ArchiveEnabled reports whether archive requests can be served
func (s *ExportService) ArchiveEnabled() bool {
	return s.store != nil
}

// ActivityPDF renders the activity log matching input as a PDF
func (s *ExportService) ActivityPDF(ctx context.Context, input auditapp.ListInput, archive bool) (file *File, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "ActivityPDF")
	defer func() { telemetry.EndSpan(span, err) }()

	if s.renderer == nil {
		return nil, ErrPDFUnavailable
	}
	if archive && s.store == nil {
		return nil, ErrArchiveDisabled
	}
	started := time.Now()

	entries, err := s.audit.Collect(ctx, input, s.cfg.MaxRows)
	if err != nil {
		return nil, err
	}
	total := int64(len(entries))
	if len(entries) == s.cfg.MaxRows {
		count := input
		count.Page, count.PageSize = 1, 1
		page, err := s.audit.List(ctx, count)
		if err != nil {
			return nil, err
		}
		total = page.Total
	}

	actor := shared.ActorFromContext(ctx)
	html, err := printing.RenderActivityReport(printing.ActivityReport{
		Title:       "Activity Log Report",
		CompanyName: s.cfg.CompanyName,
		GeneratedAt: started,
		GeneratedBy: actor.Name,
		Criteria:    criteria(input, s.cfg.Location),
		Entries:     entries,
		Total:       total,
		Location:    s.cfg.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("render activity report: %w", err)
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:        html,
		PaperSize:   printing.PaperSizeA4,
		Orientation: printing.OrientationLandscape,
		Margins:     printing.DefaultMargins(),
		FooterHTML:  printing.ReportFooter(),
	})
	if err != nil {
		s.logger.Error("Failed to render activity report", zap.Error(err))
		return nil, err
	}

	file = &File{
		Name:        "activity_log_" + started.In(s.cfg.Location).Format("20060102_150405") + ".pdf",
		ContentType: ContentTypePDF,
		Data:        result.PDFData,
	}
	return s.finish(ctx, KindActivity, file, archive, started,
		fmt.Sprintf("Exported activity log report (%d entries)", len(entries)))
}

// LeaveSummaryXLSX builds the leave summary spreadsheet for a period
func (s *ExportService) LeaveSummaryXLSX(ctx context.Context, input hrapp.SummaryInput, archive bool) (file *File, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "LeaveSummaryXLSX")
	defer func() { telemetry.EndSpan(span, err) }()

	if archive && s.store == nil {
		return nil, ErrArchiveDisabled
	}
	started := time.Now()

	rows, err := s.reports.LeaveSummary(ctx, input)
	if err != nil {
		return nil, err
	}
	period, _ := input.Period()
	data, err := export.LeaveSummaryWorkbook(rows, period)
	if err != nil {
		return nil, fmt.Errorf("build leave workbook: %w", err)
	}

	file = &File{Name: export.Filename(KindLeave, period), ContentType: ContentTypeXLSX, Data: data}
	return s.finish(ctx, KindLeave, file, archive, started,
		fmt.Sprintf("Exported leave summary %s to %s", period.From.Format(time.DateOnly), period.To.Format(time.DateOnly)))
}

// TardinessSummaryXLSX builds the tardiness summary spreadsheet for a period
func (s *ExportService) TardinessSummaryXLSX(ctx context.Context, input hrapp.SummaryInput, archive bool) (file *File, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "TardinessSummaryXLSX")
	defer func() { telemetry.EndSpan(span, err) }()

	if archive && s.store == nil {
		return nil, ErrArchiveDisabled
	}
	started := time.Now()

	rows, err := s.reports.TardinessSummary(ctx, input)
	if err != nil {
		return nil, err
	}
	period, _ := input.Period()
	data, err := export.TardinessSummaryWorkbook(rows, period)
	if err != nil {
		return nil, fmt.Errorf("build tardiness workbook: %w", err)
	}

	file = &File{Name: export.Filename(KindTardiness, period), ContentType: ContentTypeXLSX, Data: data}
	return s.finish(ctx, KindTardiness, file, archive, started,
		fmt.Sprintf("Exported tardiness summary %s to %s", period.From.Format(time.DateOnly), period.To.Format(time.DateOnly)))
}

func (s *ExportService) finish(ctx context.Context, kind string, file *File, archive bool, started time.Time, description string) (*File, error) {
	file.Size = len(file.Data)
	if archive {
		key := storage.ExportKey(kind, file.Name, started)
		if err := s.store.Upload(ctx, key, file.Data, file.ContentType); err != nil {
			s.logger.Error("Failed to archive export", zap.String("key", key), zap.Error(err))
			return nil, err
		}
		url, expires, err := s.store.DownloadURL(ctx, key, s.cfg.LinkExpiry)
		if err != nil {
			return nil, err
		}
		file.URL = url
		file.ExpiresAt = &expires
	}

	s.metrics.RecordExport(ctx, kind, time.Since(started))
	s.audit.Record(ctx, audit.ActionExport, "Export", uuid.Nil, description)
	s.logger.Info("Export generated",
		zap.String("kind", kind),
		zap.String("filename", file.Name),
		zap.Int("size", file.Size),
		zap.Bool("archived", file.Archived()))
	return file, nil
}

func criteria(in auditapp.ListInput, loc *time.Location) []string {
	var out []string
	if in.ActorID != nil {
		out = append(out, "User: "+in.ActorID.String())
	}
	if a := strings.TrimSpace(in.Action); a != "" {
		out = append(out, "Action: "+a)
	}
	if e := strings.TrimSpace(in.EntityType); e != "" {
		out = append(out, "Entity: "+e)
	}
	if in.From != nil {
		out = append(out, "From: "+in.From.In(loc).Format(time.DateOnly))
	}
	if in.To != nil {
		out = append(out, "To: "+in.To.In(loc).Format(time.DateOnly))
	}
	if q := strings.TrimSpace(in.Search); q != "" {
		out = append(out, "Search: "+q)
	}
	return out
}
