package queries

import (
	"context"

	"prepcenter/internal/core/domain/model/crossborder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListCrossBorderShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListCrossBorderShipmentsQueryHandler(db *gorm.DB) ListCrossBorderShipmentsQueryHandler {
	return ListCrossBorderShipmentsQueryHandler{db: db}
}

func (h ListCrossBorderShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListCrossBorderShipmentsQuery,
) ([]CrossBorderShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, owner_id, origin, destination, tracking_number, weight_grams, status, created_at
		FROM cross_border_shipments
		ORDER BY created_at DESC, id
	`).Rows()
	if err != nil {
		return nil, storeError("list cross-border shipments", err)
	}
	defer rows.Close()

	shipments := make([]CrossBorderShipmentView, 0)
	for rows.Next() {
		var (
			view        CrossBorderShipmentView
			id, ownerID uuid.UUID
			status      string
		)
		if err = rows.Scan(&id, &ownerID, &view.Origin, &view.Destination, &view.TrackingNumber,
			&view.WeightGrams, &status, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		if view.OwnerID, err = idFrom(ownerID); err != nil {
			return nil, err
		}
		if view.Status, err = crossborder.ParseStatus(status); err != nil {
			return nil, err
		}
		shipments = append(shipments, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list cross-border shipments", err)
	}
	return shipments, nil
}
