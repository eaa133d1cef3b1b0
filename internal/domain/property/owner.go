package property

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

// OwnerStatus is the lifecycle state of an owner
type OwnerStatus string

const (
	OwnerStatusActive   OwnerStatus = "active"
	OwnerStatusInactive OwnerStatus = "inactive"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,19}$`)

// Owner is a client of the consultancy who owns one or more properties
type Owner struct {
	shared.BaseAggregateRoot
	Code    string
	Name    string
	Email   string
	Phone   string
	Address string
	TIN     string
	Status  OwnerStatus
}

// OwnerDetails holds the editable contact fields of an owner
type OwnerDetails struct {
	Name    string
	Email   string
	Phone   string
	Address string
	TIN     string
}

// NewOwner creates an active owner
func NewOwner(code string, details OwnerDetails) (*Owner, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateCode(code); err != nil {
		return nil, err
	}
	o := &Owner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Status:            OwnerStatusActive,
	}
	if err := o.apply(details); err != nil {
		return nil, err
	}
	o.AddDomainEvent(NewOwnerEvent(EventTypeOwnerCreated, o))
	return o, nil
}

// Update replaces the contact fields
func (o *Owner) Update(details OwnerDetails) error {
	if err := o.apply(details); err != nil {
		return err
	}
	o.touch()
	o.AddDomainEvent(NewOwnerEvent(EventTypeOwnerUpdated, o))
	return nil
}

// Deactivate marks the owner inactive
func (o *Owner) Deactivate() error {
	if o.Status == OwnerStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "owner is already inactive")
	}
	o.Status = OwnerStatusInactive
	o.touch()
	o.AddDomainEvent(NewOwnerEvent(EventTypeOwnerUpdated, o))
	return nil
}

// Activate marks the owner active
func (o *Owner) Activate() error {
	if o.Status == OwnerStatusActive {
		return shared.NewDomainError("INVALID_STATE", "owner is already active")
	}
	o.Status = OwnerStatusActive
	o.touch()
	o.AddDomainEvent(NewOwnerEvent(EventTypeOwnerUpdated, o))
	return nil
}

func (o *Owner) apply(d OwnerDetails) error {
	name := NormalizeName(d.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "owner name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "owner name cannot exceed 200 characters")
	}
	email := strings.TrimSpace(d.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewDomainError("INVALID_EMAIL", "owner email is not a valid address")
		}
	}
	o.Name = name
	o.Email = strings.ToLower(email)
	o.Phone = strings.TrimSpace(d.Phone)
	o.Address = strings.TrimSpace(d.Address)
	o.TIN = strings.TrimSpace(d.TIN)
	return nil
}

func (o *Owner) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "code cannot be empty")
	}
	if !codePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "code must be 2-20 uppercase letters, digits or '-'")
	}
	return nil
}
