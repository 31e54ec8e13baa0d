package task

import (
	"fmt"
	"strings"

	"prepcenter/internal/pkg/errs"
)

// Priority ranks tasks for listing. Higher values sort first.
type Priority int

const (
	UnknownPriority Priority = iota
	Low
	Normal
	High
	Urgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		UnknownPriority: "UNKNOWN",
		Low:             "LOW",
		Normal:          "NORMAL",
		High:            "HIGH",
		Urgent:          "URGENT",
	}
}

// ParsePriority maps the wire name onto the enum.
func ParsePriority(s string) (Priority, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for p, str := range getPriorityStrings() {
		if p != UnknownPriority && str == normalized {
			return p, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a task priority", s))
}

func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}

func (p Priority) Validate() error {
	if p < Low || p > Urgent {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}
