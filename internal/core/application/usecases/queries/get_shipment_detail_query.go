package queries

import (
	"errors"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/guard"
)

var ErrGetShipmentDetailQueryIsNotConstructed = errors.New(
	"GetShipmentDetailQuery must be created via NewGetShipmentDetailQuery constructor",
)

// GetShipmentDetailQuery reads one shipment with its items and order summary.
// Clients only see their own shipments; anyone else's reads as not found.
type GetShipmentDetailQuery struct {
	actor      access.Principal
	shipmentID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetShipmentDetailQuery(actor access.Principal, shipmentID kernel.UUID) (GetShipmentDetailQuery, error) {
	if err := access.Require(actor, "get shipment detail", access.Client, access.Operator, access.Admin); err != nil {
		return GetShipmentDetailQuery{}, err
	}
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentDetailQuery{}, err
	}
	return GetShipmentDetailQuery{actor: actor, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentDetailQueryIsNotConstructed)
}

type ShipmentDetail struct {
	ID             kernel.UUID
	OwnerID        kernel.UUID
	Status         shipment.Status
	Origin         string
	Destination    string
	TrackingNumber string
	CreatedAt      time.Time
	Items          []ShipmentItemView
	Order          *OrderSummary
}

type ShipmentItemView struct {
	ID          kernel.UUID
	ProductName string
	SKU         string
	Quantity    int
	PrepType    shipment.PrepType
}

type OrderSummary struct {
	ID         kernel.UUID
	Service    shipment.PrepType
	Status     order.Status
	TotalCents int64
	Currency   string
	Invoiced   bool
}
