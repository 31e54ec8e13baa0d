package queries

import (
	"errors"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/guard"
)

var ErrListInvoicesQueryIsNotConstructed = errors.New(
	"ListInvoicesQuery must be created via NewListInvoicesQuery constructor",
)

// ListInvoicesQuery lists invoices issued to the calling client.
type ListInvoicesQuery struct {
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewListInvoicesQuery(actor access.Principal) (ListInvoicesQuery, error) {
	if err := access.Require(actor, "list invoices", access.Client); err != nil {
		return ListInvoicesQuery{}, err
	}
	return ListInvoicesQuery{userID: actor.ID(), guard: guard.NewConstructorGuard()}, nil
}

func (q ListInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListInvoicesQueryIsNotConstructed)
}

type InvoiceView struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	ShipmentID kernel.UUID
	Service    shipment.PrepType
	TotalCents int64
	Currency   string
	CreatedAt  time.Time
}
