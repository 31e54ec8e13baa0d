package station

import (
	"errors"
	"fmt"
	"strings"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/guard"
)

const (
	// DefaultCapacity applies when a station is created without an explicit capacity.
	DefaultCapacity = 1
	// General stations accept tasks of every prep type.
	General shipment.PrepType = "GENERAL"
)

var (
	// ErrStationIsNotConstructed is returned for stations not built through NewStation or RestoreStation.
	ErrStationIsNotConstructed = errors.New("Station must be created via NewStation constructor")
	// ErrNameIsRequired is returned when a station has no name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Station is a physical work location with a bounded concurrent task capacity.
//
// Business rules:
//   - name and type are required
//   - capacity is a positive integer
//   - capacity never drops below the active load at the time of the change
//   - only ACTIVE stations admit new tasks
type Station struct {
	id                 kernel.UUID
	name               string
	stationType        shipment.PrepType
	status             Status
	capacity           int
	assignedOperatorID *kernel.UUID
	guard              guard.ConstructorGuard
}

// NewStation creates an ACTIVE station. A nil capacity means DefaultCapacity.
func NewStation(
	id kernel.UUID,
	name string,
	stationType string,
	capacity *int,
	assignedOperatorID *kernel.UUID,
) (*Station, error) {
	c := DefaultCapacity
	if capacity != nil {
		c = *capacity
	}
	pt, typeErr := shipment.NewPrepType(stationType)
	s := &Station{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		typeErr,
		s.setCapacity(c, 0),
		s.setStatus(Active),
	); err != nil {
		return nil, err
	}
	s.stationType = pt
	s.assignedOperatorID = assignedOperatorID
	return s, nil
}

// RestoreStation rebuilds a station read from the record store.
func RestoreStation(
	id kernel.UUID,
	name string,
	stationType shipment.PrepType,
	status Status,
	capacity int,
	assignedOperatorID *kernel.UUID,
) (*Station, error) {
	s := &Station{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setStatus(status),
		s.setCapacity(capacity, 0),
	); err != nil {
		return nil, err
	}
	if stationType == "" {
		return nil, errs.NewValueIsRequiredError("type")
	}
	s.stationType = stationType
	s.assignedOperatorID = assignedOperatorID
	return s, nil
}

func (s *Station) Validate() error {
	if s == nil {
		return ErrStationIsNotConstructed
	}
	return s.guard.Validate(ErrStationIsNotConstructed)
}

func (s *Station) ID() kernel.UUID                  { return s.id }
func (s *Station) Name() string                     { return s.name }
func (s *Station) Type() shipment.PrepType          { return s.stationType }
func (s *Station) Status() Status                   { return s.status }
func (s *Station) Capacity() int                    { return s.capacity }
func (s *Station) AssignedOperatorID() *kernel.UUID { return s.assignedOperatorID }

// Accepts reports whether the station is typed for work of prepType.
func (s *Station) Accepts(prepType shipment.PrepType) bool {
	return s.stationType == General || s.stationType == prepType
}

// Admit decides whether one more task of prepType fits next to activeLoad tasks
// already bound to the station. activeLoad must not include the task being admitted.
func (s *Station) Admit(prepType shipment.PrepType, activeLoad int) error {
	if s.status != Active {
		return errs.NewValueIsInvalidErrorWithCause("station",
			fmt.Errorf("station %s is %s and does not accept work", s.id, s.status))
	}
	if !s.Accepts(prepType) {
		return errs.NewValueIsInvalidErrorWithCause("station",
			fmt.Errorf("station %s of type %s does not handle %s", s.id, s.stationType, prepType))
	}
	if activeLoad+1 > s.capacity {
		return errs.NewCapacityExceededError(s.id.String(), s.capacity, activeLoad)
	}
	return nil
}

// Patch lists the fields of a partial station update.
type Patch struct {
	Name               kernel.Field[string]
	Type               kernel.Field[string]
	Status             kernel.Field[Status]
	Capacity           kernel.Field[int]
	AssignedOperatorID kernel.Field[*kernel.UUID]
}

// IsEmpty reports whether no field was supplied.
func (p Patch) IsEmpty() bool {
	return !p.Name.IsPresent() && !p.Type.IsPresent() && !p.Status.IsPresent() &&
		!p.Capacity.IsPresent() && !p.AssignedOperatorID.IsPresent()
}

// Apply changes the supplied fields only. activeLoad is the current number of open
// tasks bound to the station; capacity may not drop below it. Apply is all or nothing.
func (s *Station) Apply(p Patch, activeLoad int) error {
	next := *s
	var errList []error
	if v, ok := p.Name.Value(); ok {
		errList = append(errList, next.setName(v))
	}
	if v, ok := p.Type.Value(); ok {
		pt, err := shipment.NewPrepType(v)
		if err == nil {
			next.stationType = pt
		}
		errList = append(errList, err)
	}
	if v, ok := p.Status.Value(); ok {
		errList = append(errList, next.setStatus(v))
	}
	if v, ok := p.Capacity.Value(); ok {
		errList = append(errList, next.setCapacity(v, activeLoad))
	}
	if v, ok := p.AssignedOperatorID.Value(); ok {
		next.assignedOperatorID = v
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	*s = next
	return nil
}

func (s *Station) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Station) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Station) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Station) setCapacity(capacity, activeLoad int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not a positive integer", capacity))
	}
	if capacity < activeLoad {
		return errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%d is below the current active load of %d", capacity, activeLoad))
	}
	s.capacity = capacity
	return nil
}
