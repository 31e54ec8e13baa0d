package queries

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/station"
	"prepcenter/internal/pkg/guard"
)

var ErrListStationsQueryIsNotConstructed = errors.New(
	"ListStationsQuery must be created via NewListStationsQuery constructor",
)

// ListStationsQuery lists every station with its current load. Admin only.
type ListStationsQuery struct {
	guard guard.ConstructorGuard
}

func NewListStationsQuery(actor access.Principal) (ListStationsQuery, error) {
	if err := access.Require(actor, "list stations", access.Admin); err != nil {
		return ListStationsQuery{}, err
	}
	return ListStationsQuery{guard: guard.NewConstructorGuard()}, nil
}

func (q ListStationsQuery) Validate() error {
	return q.guard.Validate(ErrListStationsQueryIsNotConstructed)
}

// StationView is a station with the number of open tasks bound to it.
type StationView struct {
	ID                 kernel.UUID
	Name               string
	Type               shipment.PrepType
	Status             station.Status
	Capacity           int
	Load               int
	AssignedOperatorID *kernel.UUID
}
