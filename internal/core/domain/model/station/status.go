package station

import (
	"fmt"
	"strings"

	"prepcenter/internal/pkg/errs"
)

// Status is the operating state of a station.
type Status int

const (
	Unknown Status = iota
	// Active stations accept new work.
	Active
	// Inactive stations are closed and accept nothing.
	Inactive
	// Maintenance stations keep their running tasks but accept nothing new.
	Maintenance
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "UNKNOWN",
		Active:      "ACTIVE",
		Inactive:    "INACTIVE",
		Maintenance: "MAINTENANCE",
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
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a station status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s < Active || s > Maintenance {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid station status", s))
	}
	return nil
}
