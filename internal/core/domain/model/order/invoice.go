package order

import (
	"errors"
	"time"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/pkg/errs"
)

// ErrInvoiceIsNotConstructed is returned for invoices not built through NewInvoice.
var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// Invoice is the billing document for one order. It is never mutated once created.
type Invoice struct {
	id            kernel.UUID
	orderID       kernel.UUID
	userID        kernel.UUID
	createdAt     time.Time
	isConstructed bool
}

// NewInvoice creates an invoice for orderID billed to userID, the shipment owner.
func NewInvoice(id, orderID, userID kernel.UUID, createdAt time.Time) (*Invoice, error) {
	var createdAtErr error
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("createdAt")
	}
	if err := errors.Join(
		id.Validate(),
		wrapRequired("orderId", orderID.Validate()),
		wrapRequired("userId", userID.Validate()),
		createdAtErr,
	); err != nil {
		return nil, err
	}
	return &Invoice{
		id:            id,
		orderID:       orderID,
		userID:        userID,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.UUID      { return i.id }
func (i *Invoice) OrderID() kernel.UUID { return i.orderID }
func (i *Invoice) UserID() kernel.UUID  { return i.userID }
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
