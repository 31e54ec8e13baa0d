package crossborder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

// ErrShipmentIsNotConstructed is returned for records not built through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("cross-border Shipment must be created via NewShipment constructor")

// Status tracks a Ghana-line shipment in transit.
type Status int

const (
	Unknown Status = iota
	Booked
	InTransit
	Arrived
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Booked:    "BOOKED",
		InTransit: "IN_TRANSIT",
		Arrived:   "ARRIVED",
		Delivered: "DELIVERED",
	}
}

func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a cross-border status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s < Booked || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid cross-border status", s))
	}
	return nil
}

// Shipment is one Ghana-line consignment.
type Shipment struct {
	id             kernel.UUID
	ownerID        kernel.UUID
	origin         string
	destination    string
	trackingNumber string
	weightGrams    int
	status         Status
	createdAt      time.Time
	guard          guard.ConstructorGuard
}

// NewShipment books a consignment.
func NewShipment(
	id, ownerID kernel.UUID,
	origin, destination, trackingNumber string,
	weightGrams int,
	createdAt time.Time,
) (*Shipment, error) {
	return RestoreShipment(id, ownerID, origin, destination, trackingNumber, weightGrams, Booked, createdAt)
}

// RestoreShipment rebuilds a consignment read from the record store.
func RestoreShipment(
	id, ownerID kernel.UUID,
	origin, destination, trackingNumber string,
	weightGrams int,
	status Status,
	createdAt time.Time,
) (*Shipment, error) {
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	trackingNumber = strings.TrimSpace(trackingNumber)

	var errList []error
	errList = append(errList, id.Validate(), status.Validate())
	if err := ownerID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("ownerId", err))
	}
	if origin == "" {
		errList = append(errList, errs.NewValueIsRequiredError("origin"))
	}
	if destination == "" {
		errList = append(errList, errs.NewValueIsRequiredError("destination"))
	}
	if trackingNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("trackingNumber"))
	}
	if weightGrams <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("weightGrams",
			fmt.Errorf("%d is not greater than 0", weightGrams)))
	}
	if createdAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("createdAt"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return &Shipment{
		id:             id,
		ownerID:        ownerID,
		origin:         origin,
		destination:    destination,
		trackingNumber: trackingNumber,
		weightGrams:    weightGrams,
		status:         status,
		createdAt:      createdAt.UTC(),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() kernel.UUID        { return s.id }
func (s *Shipment) OwnerID() kernel.UUID   { return s.ownerID }
func (s *Shipment) Origin() string         { return s.origin }
func (s *Shipment) Destination() string    { return s.destination }
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }
func (s *Shipment) WeightGrams() int       { return s.weightGrams }
func (s *Shipment) Status() Status         { return s.status }
func (s *Shipment) CreatedAt() time.Time   { return s.createdAt }
