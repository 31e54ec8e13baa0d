package queries

import (
	"context"

	"prepcenter/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListInvoicesQueryHandler struct {
	db *gorm.DB
}

func NewListInvoicesQueryHandler(db *gorm.DB) ListInvoicesQueryHandler {
	return ListInvoicesQueryHandler{db: db}
}

// Handle returns the caller's invoices, newest first.
func (h ListInvoicesQueryHandler) Handle(ctx context.Context, query ListInvoicesQuery) ([]InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT i.id, i.order_id, o.shipment_id, o.service, o.total_cents, o.currency, i.created_at
		FROM invoices i
		JOIN orders o ON o.id = i.order_id
		WHERE i.user_id = ?
		ORDER BY i.created_at DESC, i.id
	`, query.userID.Bytes()).Rows()
	if err != nil {
		return nil, storeError("list invoices", err)
	}
	defer rows.Close()

	invoices := make([]InvoiceView, 0)
	for rows.Next() {
		var (
			view                    InvoiceView
			id, orderID, shipmentID uuid.UUID
			service                 string
		)
		if err = rows.Scan(&id, &orderID, &shipmentID, &service,
			&view.TotalCents, &view.Currency, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		if view.OrderID, err = idFrom(orderID); err != nil {
			return nil, err
		}
		if view.ShipmentID, err = idFrom(shipmentID); err != nil {
			return nil, err
		}
		view.Service = shipment.PrepType(service)
		invoices = append(invoices, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list invoices", err)
	}
	return invoices, nil
}
