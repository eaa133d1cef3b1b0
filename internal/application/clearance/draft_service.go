package clearance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/clearance"
	"github.com/realtyadmin/backend/internal/domain/organization"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

var (
	errDraftNotFound    = shared.NewDomainError("DRAFT_NOT_FOUND", "Checklist draft not found or expired")
	errTemplateNotFound = shared.NewDomainError("TEMPLATE_NOT_FOUND", "Department has no clearance checklist")
	errDraftOutOfSync   = shared.NewDomainError("DRAFT_OUT_OF_SYNC", "Checklist saved, but the draft could not be updated; reopen the department")
)

const checkpointAttempts = 3

// DraftService drives the checklist editor across requests. Each draft is
// an editor state kept in the draft store under a random id.
type DraftService struct {
	templateRepo   clearance.TemplateRepository
	clearanceRepo  clearance.ClearanceRepository
	departmentRepo organization.DepartmentRepository
	drafts         clearance.DraftStore
	limits         clearance.Limits
	publisher      shared.EventPublisher
	metrics        *telemetry.BusinessMetrics
	logger         *zap.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(
	templateRepo clearance.TemplateRepository,
	clearanceRepo clearance.ClearanceRepository,
	departmentRepo organization.DepartmentRepository,
	drafts clearance.DraftStore,
	limits clearance.Limits,
	publisher shared.EventPublisher,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *DraftService {
	return &DraftService{
		templateRepo:   templateRepo,
		clearanceRepo:  clearanceRepo,
		departmentRepo: departmentRepo,
		drafts:         drafts,
		limits:         limits,
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
	}
}

// Open starts a draft loaded with the department's template
func (s *DraftService) Open(ctx context.Context, departmentID uuid.UUID) (*DraftDTO, error) {
	if err := s.ensureDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	editor := clearance.NewEditor(s.templateRepo, s.limits)
	if err := editor.Load(ctx, departmentID); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	if err := s.drafts.Put(ctx, id, editor.State()); err != nil {
		s.logger.Error("Failed to store draft", zap.String("draft_id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("Draft opened", zap.String("draft_id", id), zap.String("department_id", departmentID.String()))

	dto := toDraftDTO(id, editor)
	return &dto, nil
}

// Get returns the current state of a draft
func (s *DraftService) Get(ctx context.Context, draftID string) (*DraftDTO, error) {
	editor, err := s.restore(ctx, draftID)
	if err != nil {
		return nil, err
	}
	dto := toDraftDTO(draftID, editor)
	return &dto, nil
}

// AddTask appends a task to the working list
func (s *DraftService) AddTask(ctx context.Context, draftID, text string) (*DraftDTO, error) {
	return s.edit(ctx, draftID, func(e *clearance.Editor) error {
		e.AddTask(text)
		return nil
	})
}

// UpdateTask changes the text of a task
func (s *DraftService) UpdateTask(ctx context.Context, draftID string, taskID uuid.UUID, text string) (*DraftDTO, error) {
	return s.edit(ctx, draftID, func(e *clearance.Editor) error {
		return e.UpdateTask(taskID, text)
	})
}

// RemoveTask deletes a task from the working list
func (s *DraftService) RemoveTask(ctx context.Context, draftID string, taskID uuid.UUID) (*DraftDTO, error) {
	return s.edit(ctx, draftID, func(e *clearance.Editor) error {
		return e.RemoveTask(taskID)
	})
}

// Move reorders the working list
func (s *DraftService) Move(ctx context.Context, draftID string, from, to int) (*DraftDTO, error) {
	return s.edit(ctx, draftID, func(e *clearance.Editor) error {
		return e.Move(from, to)
	})
}

// Save persists the working list as the department template and merges it
// into the department's open clearances
func (s *DraftService) Save(ctx context.Context, draftID string) (dto *DraftDTO, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checklist", "Save")
	defer func() { telemetry.EndSpan(span, err) }()

	editor, err := s.restore(ctx, draftID)
	if err != nil {
		return nil, err
	}
	tmpl, err := editor.Save(ctx)
	if err != nil {
		return nil, err
	}
	s.afterSave(ctx, tmpl)
	if err = s.checkpoint(ctx, draftID, editor); err != nil {
		return nil, err
	}
	out := toDraftDTO(draftID, editor)
	return &out, nil
}

// Discard drops unsaved edits and reloads the saved template
func (s *DraftService) Discard(ctx context.Context, draftID string) (*DraftDTO, error) {
	return s.edit(ctx, draftID, func(e *clearance.Editor) error {
		return e.Discard(ctx)
	})
}

// SwitchDepartment moves the draft to another department. Unsaved edits
// need a resolution: save, discard or stay.
func (s *DraftService) SwitchDepartment(ctx context.Context, draftID string, departmentID uuid.UUID, resolution clearance.Resolution) (*SwitchResult, error) {
	if err := s.ensureDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	switched := false
	dto, err := s.edit(ctx, draftID, func(e *clearance.Editor) error {
		if resolution == clearance.ResolutionSave && e.DepartmentID() != departmentID && e.IsDirty() {
			tmpl, err := e.Save(ctx)
			if err != nil {
				return err
			}
			s.afterSave(ctx, tmpl)
			if err := s.checkpoint(ctx, draftID, e); err != nil {
				return err
			}
		}
		ok, err := e.SwitchDepartment(ctx, departmentID, resolution)
		switched = ok
		return err
	})
	if err != nil {
		return nil, err
	}
	return &SwitchResult{Switched: switched, Draft: *dto}, nil
}

// Close deletes a draft
func (s *DraftService) Close(ctx context.Context, draftID string) error {
	if _, err := s.restore(ctx, draftID); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, draftID)
}

// Template returns the saved template of a department
func (s *DraftService) Template(ctx context.Context, departmentID uuid.UUID) (*TemplateDTO, error) {
	tmpl, err := s.templateRepo.FindByDepartment(ctx, departmentID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := ToTemplateDTO(tmpl)
	return &dto, nil
}

// Templates lists every saved template
func (s *DraftService) Templates(ctx context.Context) ([]TemplateDTO, error) {
	list, err := s.templateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TemplateDTO, len(list))
	for i := range list {
		out[i] = ToTemplateDTO(&list[i])
	}
	return out, nil
}

// DeleteTemplate removes a department template. Open clearances keep their tasks.
func (s *DraftService) DeleteTemplate(ctx context.Context, departmentID uuid.UUID) error {
	err := s.templateRepo.DeleteByDepartment(ctx, departmentID)
	if errors.Is(err, shared.ErrNotFound) {
		return errTemplateNotFound
	}
	return err
}

// edit restores a draft, applies fn and stores the result. A failing fn
// leaves the stored draft untouched.
func (s *DraftService) edit(ctx context.Context, draftID string, fn func(*clearance.Editor) error) (*DraftDTO, error) {
	editor, err := s.restore(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if err := fn(editor); err != nil {
		return nil, err
	}
	if err := s.drafts.Put(ctx, draftID, editor.State()); err != nil {
		s.logger.Error("Failed to store draft", zap.String("draft_id", draftID), zap.Error(err))
		return nil, err
	}
	dto := toDraftDTO(draftID, editor)
	return &dto, nil
}

// checkpoint stores the editor right after its template was committed. The
// template is already saved, so the store must not keep reporting the old
// dirty state: after the last failed attempt the draft is dropped.
func (s *DraftService) checkpoint(ctx context.Context, draftID string, e *clearance.Editor) error {
	ctx = context.WithoutCancel(ctx)
	var err error
	for attempt := 1; attempt <= checkpointAttempts; attempt++ {
		if err = s.drafts.Put(ctx, draftID, e.State()); err == nil {
			return nil
		}
		s.logger.Warn("Failed to store saved draft",
			zap.String("draft_id", draftID),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	if derr := s.drafts.Delete(ctx, draftID); derr != nil {
		s.logger.Error("Failed to drop stale draft", zap.String("draft_id", draftID), zap.Error(derr))
	}
	return errDraftOutOfSync
}

func (s *DraftService) restore(ctx context.Context, draftID string) (*clearance.Editor, error) {
	state, err := s.drafts.Get(ctx, draftID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return clearance.RestoreEditor(s.templateRepo, s.limits, *state), nil
}

// afterSave publishes the template events and merges the template into
// every open clearance of its department
func (s *DraftService) afterSave(ctx context.Context, tmpl *clearance.ChecklistTemplate) {
	publish(ctx, s.publisher, s.logger, tmpl)
	s.metrics.RecordChecklistSaved(ctx)

	open, err := s.clearanceRepo.FindOpenByDepartment(ctx, tmpl.DepartmentID)
	if err != nil {
		s.logger.Error("Failed to load open clearances", zap.String("department_id", tmpl.DepartmentID.String()), zap.Error(err))
		return
	}
	merged := 0
	for i := range open {
		c := &open[i]
		if !c.MergeTemplate(tmpl) {
			continue
		}
		if err := s.clearanceRepo.Save(ctx, c); err != nil {
			s.logger.Error("Failed to merge template into clearance", zap.String("clearance_id", c.ID.String()), zap.Error(err))
			continue
		}
		if c.Status == clearance.StatusCompleted {
			s.metrics.RecordClearanceCompleted(ctx)
		}
		publish(ctx, s.publisher, s.logger, c)
		merged++
	}
	s.logger.Info("Checklist template saved",
		zap.String("department_id", tmpl.DepartmentID.String()),
		zap.Int("tasks", len(tmpl.Tasks)),
		zap.Int("clearances_merged", merged))
}

func (s *DraftService) ensureDepartment(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return clearance.ErrNoDepartment
	}
	if _, err := s.departmentRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("DEPARTMENT_NOT_FOUND", "Department not found")
		}
		return err
	}
	return nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.AggregateRoot) {
	if err := shared.PublishAndClear(ctx, publisher, aggregate); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.String("aggregate_id", aggregate.GetID().String()),
			zap.Error(err))
	}
}
