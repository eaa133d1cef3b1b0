package finance

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

// VoucherSeriesStatus is the lifecycle state of a voucher series
type VoucherSeriesStatus string

const (
	VoucherSeriesStatusActive    VoucherSeriesStatus = "active"
	VoucherSeriesStatusInactive  VoucherSeriesStatus = "inactive"
	VoucherSeriesStatusExhausted VoucherSeriesStatus = "exhausted"
)

const (
	defaultPadWidth = 6
	maxPadWidth     = 12
)

var prefixPattern = regexp.MustCompile(`^[A-Z]{1,10}$`)

// VoucherSeries hands out sequential voucher numbers within a fixed range
type VoucherSeries struct {
	shared.BaseAggregateRoot
	Prefix      string
	Description string
	StartNumber int64
	EndNumber   int64
	NextNumber  int64
	PadWidth    int
	Status      VoucherSeriesStatus
}

// NewVoucherSeries creates an active series covering [start, end]
func NewVoucherSeries(prefix, description string, start, end int64, padWidth int) (*VoucherSeries, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if !prefixPattern.MatchString(prefix) {
		return nil, shared.NewDomainError("INVALID_PREFIX", "prefix must be 1-10 letters")
	}
	if start < 1 {
		return nil, shared.NewDomainError("INVALID_RANGE", "start number must be at least 1")
	}
	if end < start {
		return nil, shared.NewDomainError("INVALID_RANGE", "end number must not be less than start number")
	}
	if padWidth == 0 {
		padWidth = defaultPadWidth
	}
	if padWidth < 1 || padWidth > maxPadWidth {
		return nil, shared.NewDomainErrorf("INVALID_PAD_WIDTH", "pad width must be between 1 and %d", maxPadWidth)
	}

	s := &VoucherSeries{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Prefix:            prefix,
		Description:       strings.TrimSpace(description),
		StartNumber:       start,
		EndNumber:         end,
		NextNumber:        start,
		PadWidth:          padWidth,
		Status:            VoucherSeriesStatusActive,
	}
	s.AddDomainEvent(NewVoucherSeriesEvent(EventTypeVoucherSeriesCreated, s, ""))
	return s, nil
}

// Remaining returns how many numbers can still be issued
func (s *VoucherSeries) Remaining() int64 {
	if s.NextNumber > s.EndNumber {
		return 0
	}
	return s.EndNumber - s.NextNumber + 1
}

// Format renders a number of this series
func (s *VoucherSeries) Format(n int64) string {
	return fmt.Sprintf("%s-%0*d", s.Prefix, s.PadWidth, n)
}

// IssueNext returns the next voucher number and advances the series.
// The series becomes exhausted after its last number is issued.
func (s *VoucherSeries) IssueNext() (string, error) {
	switch s.Status {
	case VoucherSeriesStatusInactive:
		return "", shared.NewDomainError("SERIES_INACTIVE", "voucher series is inactive")
	case VoucherSeriesStatusExhausted:
		return "", shared.NewDomainError("SERIES_EXHAUSTED", "voucher series is exhausted")
	}

	number := s.Format(s.NextNumber)
	s.NextNumber++
	if s.NextNumber > s.EndNumber {
		s.Status = VoucherSeriesStatusExhausted
	}
	s.touch()
	s.AddDomainEvent(NewVoucherSeriesEvent(EventTypeVoucherIssued, s, number))
	return number, nil
}

// Update changes the description and the end of the range. The range may
// not shrink below numbers already issued. Extending an exhausted series
// reactivates it.
func (s *VoucherSeries) Update(description string, end int64) error {
	floor := max(s.NextNumber-1, s.StartNumber)
	if end < floor {
		return shared.NewDomainErrorf("INVALID_RANGE", "end number cannot be below %d", floor)
	}
	s.Description = strings.TrimSpace(description)
	s.EndNumber = end
	if s.Status == VoucherSeriesStatusExhausted && s.NextNumber <= s.EndNumber {
		s.Status = VoucherSeriesStatusActive
	}
	s.touch()
	s.AddDomainEvent(NewVoucherSeriesEvent(EventTypeVoucherSeriesUpdated, s, ""))
	return nil
}

// Deactivate stops issuing from the series
func (s *VoucherSeries) Deactivate() error {
	if s.Status == VoucherSeriesStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "voucher series is already inactive")
	}
	s.Status = VoucherSeriesStatusInactive
	s.touch()
	s.AddDomainEvent(NewVoucherSeriesEvent(EventTypeVoucherSeriesUpdated, s, ""))
	return nil
}

// Activate resumes issuing. A used-up range comes back as exhausted.
func (s *VoucherSeries) Activate() error {
	if s.Status != VoucherSeriesStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "voucher series is not inactive")
	}
	s.Status = VoucherSeriesStatusActive
	if s.NextNumber > s.EndNumber {
		s.Status = VoucherSeriesStatusExhausted
	}
	s.touch()
	s.AddDomainEvent(NewVoucherSeriesEvent(EventTypeVoucherSeriesUpdated, s, ""))
	return nil
}

func (s *VoucherSeries) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
