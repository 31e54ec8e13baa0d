package queries

import (
	"errors"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/guard"
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ListShipmentsQuery lists shipments across all clients, optionally restricted to
// a set of statuses.
type ListShipmentsQuery struct {
	statuses []shipment.Status
	guard    guard.ConstructorGuard
}

func NewListShipmentsQuery(actor access.Principal, statuses ...shipment.Status) (ListShipmentsQuery, error) {
	if err := access.Require(actor, "list shipments", access.Admin); err != nil {
		return ListShipmentsQuery{}, err
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListShipmentsQuery{}, err
		}
	}
	return ListShipmentsQuery{statuses: statuses, guard: guard.NewConstructorGuard()}, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

type ShipmentSummary struct {
	ID             kernel.UUID
	OwnerID        kernel.UUID
	Status         shipment.Status
	Origin         string
	Destination    string
	TrackingNumber string
	ItemCount      int
	OpenTasks      int
	CreatedAt      time.Time
}
