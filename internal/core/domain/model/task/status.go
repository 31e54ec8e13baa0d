package task

import (
	"fmt"
	"strings"

	"prepcenter/internal/pkg/errs"
)

// Status is the lifecycle state of a task.
//
//	Pending <──> InProgress ──> Done
//	   │             │
//	   └─────────────┴──> Cancelled
type Status int

const (
	Unknown Status = iota
	Pending
	InProgress
	Done
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		InProgress: "IN_PROGRESS",
		Done:       "DONE",
		Cancelled:  "CANCELLED",
	}
}

// ParseStatus maps the wire name onto the enum.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a task status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid task status", s))
	}
	return nil
}

// IsOpen reports whether a task in this status counts toward station load.
func (s Status) IsOpen() bool {
	return s == Pending || s == InProgress
}

// OpenStatuses lists the statuses counted by station load.
func OpenStatuses() []Status {
	return []Status{Pending, InProgress}
}
