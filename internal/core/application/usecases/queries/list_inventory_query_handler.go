package queries

import (
	"context"

	"prepcenter/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListInventoryQueryHandler struct {
	db *gorm.DB
}

func NewListInventoryQueryHandler(db *gorm.DB) ListInventoryQueryHandler {
	return ListInventoryQueryHandler{db: db}
}

func (h ListInventoryQueryHandler) Handle(ctx context.Context, query ListInventoryQuery) ([]InventoryItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT s.id, s.status, i.id, i.product_name, i.sku, i.quantity, i.prep_type
		FROM shipment_items i
		JOIN shipments s ON s.id = i.shipment_id
		WHERE s.owner_id = ? AND s.status <> ALL(?)
		ORDER BY s.created_at DESC, s.id, i.position
	`, query.ownerID.Bytes(), names(shipment.Shipped, shipment.Cancelled)).Rows()
	if err != nil {
		return nil, storeError("list inventory", err)
	}
	defer rows.Close()

	items := make([]InventoryItem, 0)
	for rows.Next() {
		var (
			item               InventoryItem
			shipmentID, itemID uuid.UUID
			status, prepType   string
		)
		if err = rows.Scan(&shipmentID, &status, &itemID, &item.ProductName, &item.SKU,
			&item.Quantity, &prepType); err != nil {
			return nil, err
		}
		if item.ShipmentID, err = idFrom(shipmentID); err != nil {
			return nil, err
		}
		if item.ItemID, err = idFrom(itemID); err != nil {
			return nil, err
		}
		if item.ShipmentStatus, err = shipment.ParseStatus(status); err != nil {
			return nil, err
		}
		item.PrepType = shipment.PrepType(prepType)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list inventory", err)
	}
	return items, nil
}
