package organization

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// Position is a job title within a department. ReportsToID links positions
// into a reporting chain that may cross departments.
type Position struct {
	shared.BaseAggregateRoot
	Code         string
	Title        string
	DepartmentID uuid.UUID
	ReportsToID  *uuid.UUID
	Level        int
}

// NewPosition creates a position in a department
func NewPosition(code, title string, departmentID uuid.UUID, level int) (*Position, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateDepartmentCode(code); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if err := validateName(title); err != nil {
		return nil, err
	}
	if departmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEPARTMENT", "department is required")
	}
	if level < 0 {
		return nil, shared.NewDomainError("INVALID_LEVEL", "level cannot be negative")
	}

	p := &Position{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Title:             title,
		DepartmentID:      departmentID,
		Level:             level,
	}
	p.AddDomainEvent(NewPositionEvent(EventTypePositionCreated, p))
	return p, nil
}

// Update changes the title, department and level
func (p *Position) Update(title string, departmentID uuid.UUID, level int) error {
	title = strings.TrimSpace(title)
	if err := validateName(title); err != nil {
		return err
	}
	if departmentID == uuid.Nil {
		return shared.NewDomainError("INVALID_DEPARTMENT", "department is required")
	}
	if level < 0 {
		return shared.NewDomainError("INVALID_LEVEL", "level cannot be negative")
	}
	p.Title = title
	p.DepartmentID = departmentID
	p.Level = level
	p.touch()
	p.AddDomainEvent(NewPositionEvent(EventTypePositionUpdated, p))
	return nil
}

// ReportTo sets the supervising position. chain maps position ids to their
// current ReportsToID and is walked to reject cycles.
func (p *Position) ReportTo(managerID *uuid.UUID, chain map[uuid.UUID]*uuid.UUID) error {
	if managerID == nil || *managerID == uuid.Nil {
		p.ReportsToID = nil
		p.touch()
		p.AddDomainEvent(NewPositionEvent(EventTypePositionUpdated, p))
		return nil
	}

	seen := map[uuid.UUID]bool{}
	for cur := managerID; cur != nil; cur = chain[*cur] {
		if *cur == p.ID {
			return ErrCircularReference
		}
		if seen[*cur] {
			break
		}
		seen[*cur] = true
	}

	id := *managerID
	p.ReportsToID = &id
	p.touch()
	p.AddDomainEvent(NewPositionEvent(EventTypePositionUpdated, p))
	return nil
}

func (p *Position) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
