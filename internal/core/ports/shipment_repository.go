package ports

import (
	"context"

	"prepcenter/internal/core/domain/model/crossborder"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/domain/model/shipment"
)

// ShipmentRepository persists shipments together with their items.
type ShipmentRepository interface {
	// Add persists a new shipment and its items.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists the shipment status and item quantities.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get returns the shipment or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate is Get holding the shipment row lock. Transitions on one shipment
	// are serialized through this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
}

// CrossBorderRepository persists Ghana-line consignments.
type CrossBorderRepository interface {
	Add(ctx context.Context, aggregate *crossborder.Shipment) error
}
