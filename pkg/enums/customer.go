package enums

import (
	"fmt"
	"strings"
)

// TestDriveStatus tracks a scheduled test drive through its lifecycle.
type TestDriveStatus string

const (
	TestDriveStatusScheduled TestDriveStatus = "scheduled"
	TestDriveStatusCompleted TestDriveStatus = "completed"
	TestDriveStatusCancelled TestDriveStatus = "cancelled"
)

func (s TestDriveStatus) String() string {
	return string(s)
}

func (s TestDriveStatus) IsValid() bool {
	switch s {
	case TestDriveStatusScheduled, TestDriveStatusCompleted, TestDriveStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a status change is allowed. Only
// scheduled test drives may move, and only to completed or cancelled.
func (s TestDriveStatus) CanTransitionTo(next TestDriveStatus) bool {
	if s != TestDriveStatusScheduled {
		return false
	}
	return next == TestDriveStatusCompleted || next == TestDriveStatusCancelled
}

func ParseTestDriveStatus(value string) (TestDriveStatus, error) {
	status := TestDriveStatus(strings.ToLower(strings.TrimSpace(value)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid test drive status: %q", value)
	}
	return status, nil
}
