package shipment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

// ErrShipmentIsNotConstructed is returned for shipments not built through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Change describes one accepted status transition.
type Change struct {
	From Status
	To   Status
}

// Shipment is the aggregate root for goods a client sends in for preparation.
//
// Invariants:
//   - exactly one owner, set at creation and never changed
//   - at least one item
//   - status only moves along the edges documented on Status
//   - items are frozen once the shipment leaves Received, except admin quantity corrections
type Shipment struct {
	id             kernel.UUID
	ownerID        kernel.UUID
	status         Status
	origin         string
	destination    string
	trackingNumber string
	items          []*Item
	createdAt      time.Time
	guard          guard.ConstructorGuard
}

// NewShipment registers a shipment in Received status.
func NewShipment(
	id kernel.UUID,
	ownerID kernel.UUID,
	origin, destination, trackingNumber string,
	items []*Item,
	createdAt time.Time,
) (*Shipment, error) {
	return RestoreShipment(id, ownerID, Received, origin, destination, trackingNumber, items, createdAt)
}

// RestoreShipment rebuilds a shipment read from the record store.
func RestoreShipment(
	id kernel.UUID,
	ownerID kernel.UUID,
	status Status,
	origin, destination, trackingNumber string,
	items []*Item,
	createdAt time.Time,
) (*Shipment, error) {
	s := &Shipment{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		s.setID(id),
		s.setOwnerID(ownerID),
		s.setStatus(status),
		s.setRoute(origin, destination),
		s.setItems(items),
		s.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	s.trackingNumber = strings.TrimSpace(trackingNumber)
	return s, nil
}

// Validate ensures the shipment was built through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() kernel.UUID        { return s.id }
func (s *Shipment) OwnerID() kernel.UUID   { return s.ownerID }
func (s *Shipment) Status() Status         { return s.status }
func (s *Shipment) Origin() string         { return s.origin }
func (s *Shipment) Destination() string    { return s.destination }
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }
func (s *Shipment) CreatedAt() time.Time   { return s.createdAt }

// Items returns a copy of the item list.
func (s *Shipment) Items() []*Item {
	out := make([]*Item, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the total number of units across all items.
func (s *Shipment) ItemCount() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity()
	}
	return total
}

// TrackingLabel is the tracking number, or the shipment id when none was given.
func (s *Shipment) TrackingLabel() string {
	if s.trackingNumber != "" {
		return s.trackingNumber
	}
	return s.id.String()
}

// IsOwnedBy reports whether userID owns the shipment.
func (s *Shipment) IsOwnedBy(userID kernel.UUID) bool {
	return s.ownerID.IsEqual(userID)
}

// PrepTypes returns the distinct prep types among items, sorted.
func (s *Shipment) PrepTypes() []PrepType {
	seen := make(map[PrepType]struct{}, len(s.items))
	out := make([]PrepType, 0, len(s.items))
	for _, item := range s.items {
		if _, ok := seen[item.PrepType()]; ok {
			continue
		}
		seen[item.PrepType()] = struct{}{}
		out = append(out, item.PrepType())
	}
	slices.Sort(out)
	return out
}

// DominantPrepType is the prep type carrying the most units. Ties resolve to the
// alphabetically first type so the choice is deterministic.
func (s *Shipment) DominantPrepType() PrepType {
	units := make(map[PrepType]int)
	for _, item := range s.items {
		units[item.PrepType()] += item.Quantity()
	}
	var dominant PrepType
	best := -1
	for _, prepType := range s.PrepTypes() {
		if units[prepType] > best {
			dominant, best = prepType, units[prepType]
		}
	}
	return dominant
}

// TransitionTo moves the shipment to target on behalf of actor.
// Clients are rejected with Forbidden before the edge is checked.
func (s *Shipment) TransitionTo(target Status, actor access.Principal) (Change, error) {
	if err := access.Require(actor, "transition shipment", access.Operator, access.Admin); err != nil {
		return Change{}, err
	}
	if err := s.status.ValidateTransition(target); err != nil {
		return Change{}, err
	}
	change := Change{From: s.status, To: target}
	s.status = target
	return change, nil
}

// CorrectItemQuantity updates the quantity of one item.
// While Received the owner or an admin may correct; afterwards only an admin may,
// and never once the shipment is terminal.
func (s *Shipment) CorrectItemQuantity(itemID kernel.UUID, quantity int, actor access.Principal) error {
	owner := s.ownerID
	if s.status == Received {
		if err := access.RequireSelfOr(actor, "correct item quantity", &owner, access.Admin); err != nil {
			return err
		}
	} else if err := access.Require(actor, "correct item quantity", access.Admin); err != nil {
		return err
	}
	if s.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("shipment", fmt.Errorf("%s shipments are closed", s.status))
	}
	for _, item := range s.items {
		if item.ID().IsEqual(itemID) {
			return item.setQuantity(quantity)
		}
	}
	return errs.NewObjectNotFoundError("item", itemID.String())
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("ownerId", err)
	}
	s.ownerID = ownerID
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Shipment) setRoute(origin, destination string) error {
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	var err error
	if origin == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("origin"))
	}
	if destination == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("destination"))
	}
	s.origin, s.destination = origin, destination
	return err
}

func (s *Shipment) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	s.items = slices.Clone(items)
	return nil
}

func (s *Shipment) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	s.createdAt = createdAt.UTC()
	return nil
}
