package queries

import (
	"context"

	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns orders oldest first, so uninvoiced work is billed in arrival order.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT o.id, o.shipment_id, s.owner_id, o.service, o.status, o.total_cents, o.currency, o.invoice_id, o.created_at
		FROM orders o
		JOIN shipments s ON s.id = o.shipment_id`
	if query.uninvoiced {
		sql += " WHERE o.invoice_id IS NULL"
	}
	sql += " ORDER BY o.created_at, o.id"

	rows, err := h.db.WithContext(ctx).Raw(sql).Rows()
	if err != nil {
		return nil, storeError("list orders", err)
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		var (
			view                    OrderView
			id, shipmentID, ownerID uuid.UUID
			invoiceID               uuid.NullUUID
			service, status         string
		)
		if err = rows.Scan(&id, &shipmentID, &ownerID, &service, &status,
			&view.TotalCents, &view.Currency, &invoiceID, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		if view.ShipmentID, err = idFrom(shipmentID); err != nil {
			return nil, err
		}
		if view.OwnerID, err = idFrom(ownerID); err != nil {
			return nil, err
		}
		if view.InvoiceID, err = optionalIDFrom(invoiceID); err != nil {
			return nil, err
		}
		if view.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		view.Service = shipment.PrepType(service)
		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list orders", err)
	}
	return orders, nil
}
