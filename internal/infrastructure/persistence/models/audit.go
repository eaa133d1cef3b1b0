package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/audit"
)

// ActivityLogModel is the persistence model for activity logs
type ActivityLogModel struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key"`
	ActorID     *uuid.UUID   `gorm:"type:uuid;index"`
	ActorName   string       `gorm:"type:varchar(200);not null"`
	Role        string       `gorm:"type:varchar(30)"`
	Action      audit.Action `gorm:"type:varchar(30);not null;index"`
	EntityType  string       `gorm:"type:varchar(50);index"`
	EntityID    *uuid.UUID   `gorm:"type:uuid"`
	Description string       `gorm:"type:text"`
	IP          string       `gorm:"column:ip;type:varchar(45)"`
	Timestamp   time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the model to a domain ActivityLog
func (m *ActivityLogModel) ToDomain() audit.ActivityLog {
	return audit.ActivityLog{
		ID:          m.ID,
		ActorID:     m.ActorID,
		ActorName:   m.ActorName,
		Role:        m.Role,
		Action:      m.Action,
		EntityType:  m.EntityType,
		EntityID:    m.EntityID,
		Description: m.Description,
		IP:          m.IP,
		Timestamp:   m.Timestamp,
	}
}

// ActivityLogModelFromDomain creates a model from a domain ActivityLog
func ActivityLogModelFromDomain(l *audit.ActivityLog) *ActivityLogModel {
	return &ActivityLogModel{
		ID:          l.ID,
		ActorID:     l.ActorID,
		ActorName:   l.ActorName,
		Role:        l.Role,
		Action:      l.Action,
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		Description: l.Description,
		IP:          l.IP,
		Timestamp:   l.Timestamp,
	}
}
