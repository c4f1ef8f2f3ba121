package enums

import (
	"fmt"
	"strings"
)

// InquiryStatus is the canonical workflow state of a customer inquiry.
type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "new"
	InquiryStatusInProgress InquiryStatus = "in_progress"
	InquiryStatusResolved   InquiryStatus = "resolved"
	InquiryStatusClosed     InquiryStatus = "closed"
)

// inquiryStatusAliases maps historical status spellings onto the
// canonical set so older clients keep working.
var inquiryStatusAliases = map[string]InquiryStatus{
	"assigned":  InquiryStatusInProgress,
	"responded": InquiryStatusResolved,
}

func (s InquiryStatus) String() string {
	return string(s)
}

func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusInProgress, InquiryStatusResolved, InquiryStatusClosed:
		return true
	}
	return false
}

// IsOpen reports whether the inquiry still needs staff attention.
func (s InquiryStatus) IsOpen() bool {
	return s == InquiryStatusNew || s == InquiryStatusInProgress
}

// CanTransitionTo reports whether the workflow permits moving from s to
// next. The flow only moves forward; closed is terminal.
func (s InquiryStatus) CanTransitionTo(next InquiryStatus) bool {
	switch s {
	case InquiryStatusNew:
		return next == InquiryStatusInProgress || next == InquiryStatusResolved || next == InquiryStatusClosed
	case InquiryStatusInProgress:
		return next == InquiryStatusResolved || next == InquiryStatusClosed
	case InquiryStatusResolved:
		return next == InquiryStatusClosed
	}
	return false
}

func ParseInquiryStatus(value string) (InquiryStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if alias, ok := inquiryStatusAliases[normalized]; ok {
		return alias, nil
	}
	status := InquiryStatus(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid inquiry status: %q", value)
	}
	return status, nil
}

// InquiryType records what the customer is asking about.
type InquiryType string

const (
	InquiryTypeGeneral   InquiryType = "general"
	InquiryTypePricing   InquiryType = "pricing"
	InquiryTypeTestDrive InquiryType = "test_drive"
	InquiryTypeFinancing InquiryType = "financing"
	InquiryTypeTradeIn   InquiryType = "trade_in"
)

func (t InquiryType) String() string {
	return string(t)
}

func (t InquiryType) IsValid() bool {
	switch t {
	case InquiryTypeGeneral, InquiryTypePricing, InquiryTypeTestDrive, InquiryTypeFinancing, InquiryTypeTradeIn:
		return true
	}
	return false
}

func ParseInquiryType(value string) (InquiryType, error) {
	inquiryType := InquiryType(strings.ToLower(strings.TrimSpace(value)))
	if !inquiryType.IsValid() {
		return "", fmt.Errorf("invalid inquiry type: %q", value)
	}
	return inquiryType, nil
}

// InquiryPriority orders the staff queue.
type InquiryPriority string

const (
	InquiryPriorityLow    InquiryPriority = "low"
	InquiryPriorityMedium InquiryPriority = "medium"
	InquiryPriorityHigh   InquiryPriority = "high"
	InquiryPriorityUrgent InquiryPriority = "urgent"
)

func (p InquiryPriority) String() string {
	return string(p)
}

func (p InquiryPriority) IsValid() bool {
	switch p {
	case InquiryPriorityLow, InquiryPriorityMedium, InquiryPriorityHigh, InquiryPriorityUrgent:
		return true
	}
	return false
}

func ParseInquiryPriority(value string) (InquiryPriority, error) {
	priority := InquiryPriority(strings.ToLower(strings.TrimSpace(value)))
	if !priority.IsValid() {
		return "", fmt.Errorf("invalid inquiry priority: %q", value)
	}
	return priority, nil
}
