package shipment

import (
	"fmt"
	"strings"

	"prepcenter/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
//
//	Received ─> Inspecting ─> Prepping ─> QualityCheck ─> ReadyToShip ─> Shipped
//	    │            │            │             │               │
//	    └────────────┴────────────┴─────────────┴───────────────┴──> Cancelled
type Status int

const (
	// Unknown catches uninitialized statuses.
	Unknown Status = iota
	// Received is the initial status set at creation.
	Received
	// Inspecting opens inspection tasks; the owner is notified.
	Inspecting
	// Prepping opens prep tasks, one per distinct prep type.
	Prepping
	// QualityCheck is the final floor check.
	QualityCheck
	// ReadyToShip is the billable milestone; an order is ensured and the owner notified.
	ReadyToShip
	// Shipped is terminal; the owner is notified.
	Shipped
	// Cancelled is terminal and reachable from every non-terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "UNKNOWN",
		Received:     "RECEIVED",
		Inspecting:   "INSPECTING",
		Prepping:     "PREPPING",
		QualityCheck: "QUALITY_CHECK",
		ReadyToShip:  "READY_TO_SHIP",
		Shipped:      "SHIPPED",
		Cancelled:    "CANCELLED",
	}
}

// forwardChain maps each status to its immediate successor.
func forwardChain() map[Status]Status {
	//nolint:exhaustive // terminal statuses have no successor
	return map[Status]Status{
		Received:     Inspecting,
		Inspecting:   Prepping,
		Prepping:     QualityCheck,
		QualityCheck: ReadyToShip,
		ReadyToShip:  Shipped,
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
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", s))
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Shipped || s == Cancelled
}

// IsActive reports whether goods of the shipment are physically held on the floor.
func (s Status) IsActive() bool {
	return s.Validate() == nil && !s.IsTerminal()
}

// Next returns the immediate forward successor, if any.
func (s Status) Next() (Status, bool) {
	next, ok := forwardChain()[s]
	return next, ok
}

// ValidateTransition checks that target is the immediate successor of s, or Cancelled
// while s is non-terminal.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == Cancelled && !s.IsTerminal() && s.Validate() == nil {
		return nil
	}
	if next, ok := s.Next(); ok && next == target {
		return nil
	}
	return errs.NewInvalidTransitionError("shipment", s.String(), target.String())
}

// NotifiesOwner reports whether entering s notifies the owning client.
func (s Status) NotifiesOwner() bool {
	return s == Inspecting || s == ReadyToShip || s == Shipped
}

// OpensTasks reports whether entering s opens work on the floor.
func (s Status) OpensTasks() bool {
	return s == Inspecting || s == Prepping
}

// IsBillable reports whether entering s creates the shipment's order.
func (s Status) IsBillable() bool {
	return s == ReadyToShip
}
