package finance

import (
	"regexp"
	"strings"
	"time"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

// FundReferenceStatus is the lifecycle state of a fund reference
type FundReferenceStatus string

const (
	FundReferenceStatusActive   FundReferenceStatus = "active"
	FundReferenceStatusInactive FundReferenceStatus = "inactive"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{1,19}$`)

// FundReference names a fund that ledger entries and vouchers are charged to
type FundReference struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Description string
	Status      FundReferenceStatus
}

// NewFundReference creates an active fund reference
func NewFundReference(code, name, description string) (*FundReference, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateCode(code); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	f := &FundReference{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Description:       strings.TrimSpace(description),
		Status:            FundReferenceStatusActive,
	}
	f.AddDomainEvent(NewFundReferenceEvent(EventTypeFundReferenceCreated, f))
	return f, nil
}

// Update changes the descriptive fields
func (f *FundReference) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	f.Name = name
	f.Description = strings.TrimSpace(description)
	f.touch()
	f.AddDomainEvent(NewFundReferenceEvent(EventTypeFundReferenceUpdated, f))
	return nil
}

// Activate makes the fund usable for postings
func (f *FundReference) Activate() error {
	if f.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "fund reference is already active")
	}
	f.Status = FundReferenceStatusActive
	f.touch()
	f.AddDomainEvent(NewFundReferenceEvent(EventTypeFundReferenceUpdated, f))
	return nil
}

// Deactivate stops new postings against the fund
func (f *FundReference) Deactivate() error {
	if !f.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "fund reference is already inactive")
	}
	f.Status = FundReferenceStatusInactive
	f.touch()
	f.AddDomainEvent(NewFundReferenceEvent(EventTypeFundReferenceUpdated, f))
	return nil
}

// IsActive reports whether postings may reference the fund
func (f *FundReference) IsActive() bool {
	return f.Status == FundReferenceStatusActive
}

func (f *FundReference) touch() {
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "code cannot be empty")
	}
	if !codePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "code must be 2-20 letters, digits, '-' or '_'")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "name cannot exceed 200 characters")
	}
	return nil
}
