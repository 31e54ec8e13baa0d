package queries

import (
	"errors"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/guard"
)

var ErrListInventoryQueryIsNotConstructed = errors.New(
	"ListInventoryQuery must be created via NewListInventoryQuery constructor",
)

// ListInventoryQuery lists the caller's goods currently held on the floor, that is
// items of shipments that are neither shipped nor cancelled.
type ListInventoryQuery struct {
	ownerID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListInventoryQuery(actor access.Principal) (ListInventoryQuery, error) {
	if err := access.Require(actor, "list inventory", access.Client); err != nil {
		return ListInventoryQuery{}, err
	}
	return ListInventoryQuery{ownerID: actor.ID(), guard: guard.NewConstructorGuard()}, nil
}

func (q ListInventoryQuery) Validate() error {
	return q.guard.Validate(ErrListInventoryQueryIsNotConstructed)
}

type InventoryItem struct {
	ShipmentID     kernel.UUID
	ShipmentStatus shipment.Status
	ItemID         kernel.UUID
	ProductName    string
	SKU            string
	Quantity       int
	PrepType       shipment.PrepType
}
