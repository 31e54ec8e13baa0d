package order

import (
	"errors"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned for orders not built through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the billable record of the service rendered on one shipment.
//
// An order is created once, when its shipment reaches READY_TO_SHIP, in PENDING
// status. Its invoice reference is empty until an admin attaches one.
type Order struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	service    shipment.PrepType
	status     Status
	total      kernel.Money
	invoiceID  *kernel.UUID
	createdAt  time.Time

	isConstructed bool
}

// NewOrder creates a PENDING order for a shipment.
func NewOrder(
	id kernel.UUID,
	shipmentID kernel.UUID,
	service shipment.PrepType,
	total kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, shipmentID, service, Pending, total, nil, createdAt)
}

// RestoreOrder rebuilds an order read from the record store.
func RestoreOrder(
	id kernel.UUID,
	shipmentID kernel.UUID,
	service shipment.PrepType,
	status Status,
	total kernel.Money,
	invoiceID *kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}
	if err := errors.Join(
		o.setID(id),
		o.setShipmentID(shipmentID),
		o.setService(service),
		o.setStatus(status),
		o.setTotal(total),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	o.invoiceID = invoiceID
	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) ShipmentID() kernel.UUID    { return o.shipmentID }
func (o *Order) Service() shipment.PrepType { return o.service }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Total() kernel.Money        { return o.total }
func (o *Order) InvoiceID() *kernel.UUID    { return o.invoiceID }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }

// IsInvoiced reports whether an invoice is attached.
func (o *Order) IsInvoiced() bool {
	return o.invoiceID != nil
}

// ChangeStatus moves the order to target. Admin only.
func (o *Order) ChangeStatus(target Status, actor access.Principal) error {
	if err := access.Require(actor, "update order status", access.Admin); err != nil {
		return err
	}
	next, err := o.status.Transition(target)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// AttachInvoice links inv to the order. Admin only; a second invoice is a Conflict.
func (o *Order) AttachInvoice(inv *Invoice, actor access.Principal) error {
	if err := access.Require(actor, "attach invoice", access.Admin); err != nil {
		return err
	}
	if err := inv.Validate(); err != nil {
		return err
	}
	if !inv.OrderID().IsEqual(o.id) {
		return errs.NewValueIsInvalidError("invoice.orderId")
	}
	if o.invoiceID != nil {
		return errs.NewConflictError("invoice for order", o.id.String())
	}
	if o.status == Cancelled {
		return errs.NewInvalidTransitionError("order", o.status.String(), "INVOICED")
	}
	id := inv.ID()
	o.invoiceID = &id
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentId", err)
	}
	o.shipmentID = id
	return nil
}

func (o *Order) setService(service shipment.PrepType) error {
	if service == "" {
		return errs.NewValueIsRequiredError("service")
	}
	o.service = service
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.total = total
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt.UTC()
	return nil
}
