package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SummaryInput selects the period and, optionally, one department
type SummaryInput struct {
	From         time.Time
	To           time.Time
	DepartmentID *uuid.UUID
}

// Period validates the range and truncates it to whole days
func (in SummaryInput) Period() (hr.Period, error) {
	if in.From.IsZero() || in.To.IsZero() {
		return hr.Period{}, shared.NewDomainError("INVALID_PERIOD", "from and to are required")
	}
	if in.To.Before(in.From) {
		return hr.Period{}, shared.NewDomainError("INVALID_PERIOD", "to cannot be before from")
	}
	return hr.Period{From: hr.DateOnly(in.From), To: hr.DateOnly(in.To)}, nil
}

// ReportService builds the leave and tardiness summaries
type ReportService struct {
	employeeRepo  hr.EmployeeRepository
	leaveRepo     hr.LeaveRepository
	tardinessRepo hr.TardinessRepository
	logger        *zap.Logger
}

// NewReportService creates a new HR report service
func NewReportService(
	employeeRepo hr.EmployeeRepository,
	leaveRepo hr.LeaveRepository,
	tardinessRepo hr.TardinessRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		employeeRepo:  employeeRepo,
		leaveRepo:     leaveRepo,
		tardinessRepo: tardinessRepo,
		logger:        logger,
	}
}

// LeaveSummary totals approved leave days per employee and type
func (s *ReportService) LeaveSummary(ctx context.Context, input SummaryInput) (rows []hr.LeaveSummary, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "hr_report", "LeaveSummary")
	defer func() { telemetry.EndSpan(span, err) }()

	period, err := input.Period()
	if err != nil {
		return nil, err
	}
	employees, err := s.employees(ctx, input.DepartmentID)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaveRepo.FindApprovedInPeriod(ctx, period.From, period.To)
	if err != nil {
		s.logger.Error("Failed to load leaves for summary", zap.Error(err))
		return nil, err
	}
	return hr.SummarizeLeaves(employees, leaves, period), nil
}

// TardinessSummary totals late days and minutes per employee
func (s *ReportService) TardinessSummary(ctx context.Context, input SummaryInput) (rows []hr.TardinessSummary, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "hr_report", "TardinessSummary")
	defer func() { telemetry.EndSpan(span, err) }()

	period, err := input.Period()
	if err != nil {
		return nil, err
	}
	employees, err := s.employees(ctx, input.DepartmentID)
	if err != nil {
		return nil, err
	}
	entries, err := s.tardinessRepo.FindInPeriod(ctx, period.From, period.To)
	if err != nil {
		s.logger.Error("Failed to load attendance for summary", zap.Error(err))
		return nil, err
	}
	return hr.SummarizeTardiness(employees, entries, period), nil
}

func (s *ReportService) employees(ctx context.Context, departmentID *uuid.UUID) ([]hr.Employee, error) {
	filter := shared.Filter{}
	if departmentID != nil {
		filter.Filters = map[string]any{"department_id": departmentID.String()}
	}
	return s.employeeRepo.FindAll(ctx, filter)
}
