package clearance

import (
	"context"
	"errors"
	"fmt"

	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EmployeeResignedHandler opens a clearance when an employee resigns.
// Employees without a department, or whose department has no checklist,
// are skipped.
type EmployeeResignedHandler struct {
	clearances *ClearanceService
	logger     *zap.Logger
}

// NewEmployeeResignedHandler creates a new handler for employee resignations
func NewEmployeeResignedHandler(clearances *ClearanceService, logger *zap.Logger) *EmployeeResignedHandler {
	return &EmployeeResignedHandler{
		clearances: clearances,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *EmployeeResignedHandler) EventTypes() []string {
	return []string{hr.EventTypeEmployeeResigned}
}

// Handle processes an EmployeeResigned event
func (h *EmployeeResignedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	resigned, ok := event.(*hr.EmployeeEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			hr.EventTypeEmployeeResigned, event.EventType())
	}
	if resigned.DepartmentID == "" {
		h.logger.Debug("resigned employee has no department, no clearance started",
			zap.String("employee_no", resigned.EmployeeNo))
		return nil
	}

	_, err := h.clearances.Start(ctx, event.AggregateID())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errTemplateNotFound):
		h.logger.Info("department has no clearance checklist, no clearance started",
			zap.String("employee_no", resigned.EmployeeNo),
			zap.String("department_id", resigned.DepartmentID))
		return nil
	case hasCode(err, "CLEARANCE_EXISTS"):
		return nil
	}
	return err
}

func hasCode(err error, code string) bool {
	var de *shared.DomainError
	return errors.As(err, &de) && de.Code == code
}

var _ shared.EventHandler = (*EmployeeResignedHandler)(nil)
