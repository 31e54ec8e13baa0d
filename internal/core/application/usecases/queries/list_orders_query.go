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

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders. With uninvoiced set it returns only orders that have
// no invoice attached yet.
type ListOrdersQuery struct {
	uninvoiced bool
	guard      guard.ConstructorGuard
}

func NewListOrdersQuery(actor access.Principal, uninvoiced bool) (ListOrdersQuery, error) {
	if err := access.Require(actor, "list orders", access.Admin); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{uninvoiced: uninvoiced, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

type OrderView struct {
	ID         kernel.UUID
	ShipmentID kernel.UUID
	OwnerID    kernel.UUID
	Service    shipment.PrepType
	Status     order.Status
	TotalCents int64
	Currency   string
	InvoiceID  *kernel.UUID
	CreatedAt  time.Time
}
