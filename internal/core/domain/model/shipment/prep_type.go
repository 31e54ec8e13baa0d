package shipment

import (
	"fmt"
	"regexp"
	"strings"

	"prepcenter/internal/pkg/errs"
)

var prepTypePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,39}$`)

// PrepType names a category of physical preparation work, e.g. LABELING or POLY_BAGGING.
// Stations are typed with the same vocabulary.
type PrepType string

// NewPrepType normalizes s to upper snake case and validates it.
func NewPrepType(s string) (PrepType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	if normalized == "" {
		return "", errs.NewValueIsRequiredError("prepType")
	}
	if !prepTypePattern.MatchString(normalized) {
		return "", errs.NewValueIsInvalidErrorWithCause("prepType", fmt.Errorf("%q is not a prep type", s))
	}
	return PrepType(normalized), nil
}

func (p PrepType) String() string {
	return string(p)
}
