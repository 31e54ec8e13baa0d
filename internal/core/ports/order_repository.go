package ports

import (
	"context"

	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"
)

// OrderRepository persists orders and their invoices.
type OrderRepository interface {
	// Add persists a new order. A second order for the same shipment fails with a
	// ConflictError from the store's unique index.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order status and invoice reference.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate returns the order holding its row lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByShipment returns the shipment's order, or nil when none exists yet.
	FindByShipment(ctx context.Context, shipmentID kernel.UUID) (*order.Order, error)

	// AddInvoice persists an invoice. A second invoice for the same order fails with
	// a ConflictError from the store's unique index.
	AddInvoice(ctx context.Context, invoice *order.Invoice) error
}

// Pricing quotes the amount charged for a service. It is an external collaborator.
type Pricing interface {
	Quote(ctx context.Context, service shipment.PrepType, units int) (kernel.Money, error)
}
