package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/audit"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	// maxPageSize matches the cap applied by the repository
	maxPageSize     = 200
)

// ListInput filters the activity log
type ListInput struct {
	ActorID    *uuid.UUID
	Action     string
	EntityType string
	From       *time.Time
	To         *time.Time
	Search     string
	Page       int
	PageSize   int
}

func (in ListInput) query() (audit.Query, error) {
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return audit.Query{}, shared.NewDomainError("INVALID_PERIOD", "to cannot be before from")
	}
	return audit.Query{
		ActorID:    in.ActorID,
		Action:     audit.Action(strings.ToLower(strings.TrimSpace(in.Action))),
		EntityType: strings.TrimSpace(in.EntityType),
		From:       in.From,
		To:         in.To,
		Search:     in.Search,
		Page:       in.Page,
		PageSize:   in.PageSize,
	}, nil
}

// ActivityLogDTO represents an activity log entry
type ActivityLogDTO struct {
	ID          uuid.UUID  `json:"id"`
	ActorID     *uuid.UUID `json:"actor_id,omitempty"`
	ActorName   string     `json:"actor_name"`
	Role        string     `json:"role,omitempty"`
	Action      string     `json:"action"`
	EntityType  string     `json:"entity_type"`
	EntityID    *uuid.UUID `json:"entity_id,omitempty"`
	Description string     `json:"description"`
	IP          string     `json:"ip,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

// ToActivityLogDTO converts a domain entry
func ToActivityLogDTO(l *audit.ActivityLog) ActivityLogDTO {
	return ActivityLogDTO{
		ID:          l.ID,
		ActorID:     l.ActorID,
		ActorName:   l.ActorName,
		Role:        l.Role,
		Action:      string(l.Action),
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		Description: l.Description,
		IP:          l.IP,
		Timestamp:   l.Timestamp,
	}
}

// AuditService reads and appends activity log entries
type AuditService struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo audit.Repository, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// List returns a page of entries, newest first
func (s *AuditService) List(ctx context.Context, input ListInput) (*shared.Paginated[ActivityLogDTO], error) {
	q, err := input.query()
	if err != nil {
		return nil, err
	}
	q.Page = max(q.Page, 1)
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	q.PageSize = min(q.PageSize, maxPageSize)

	list, total, err := s.repo.Find(ctx, q)
	if err != nil {
		s.logger.Error("Failed to list activity logs", zap.Error(err))
		return nil, err
	}

	items := make([]ActivityLogDTO, len(list))
	for i := range list {
		items[i] = ToActivityLogDTO(&list[i])
	}
	page := shared.NewPaginated(items, total, q.Page, q.PageSize)
	return &page, nil
}

// Collect returns up to limit entries matching the filter, newest first.
// The paging fields of input are ignored.
func (s *AuditService) Collect(ctx context.Context, input ListInput, limit int) ([]audit.ActivityLog, error) {
	q, err := input.query()
	if err != nil {
		return nil, err
	}
	q.PageSize = maxPageSize

	out := make([]audit.ActivityLog, 0, min(limit, maxPageSize))
	for q.Page = 1; len(out) < limit; q.Page++ {
		batch, total, err := s.repo.Find(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if len(batch) < maxPageSize || int64(len(out)) >= total {
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Record appends an entry for the actor in ctx
func (s *AuditService) Record(ctx context.Context, action audit.Action, entityType string, entityID uuid.UUID, description string) {
	entry := audit.NewActivityLog(shared.ActorFromContext(ctx), action, entityType, entityID, description)
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to record activity",
			zap.String("action", string(action)),
			zap.String("entity_type", entityType),
			zap.Error(err))
	}
}
