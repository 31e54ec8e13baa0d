package queries

import (
	"context"

	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

// Handle returns shipment summaries, newest first.
func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) ([]ShipmentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			s.id,
			s.owner_id,
			s.status,
			s.origin,
			s.destination,
			COALESCE(s.tracking_number, ''),
			COALESCE((SELECT SUM(i.quantity) FROM shipment_items i WHERE i.shipment_id = s.id), 0),
			(SELECT COUNT(*) FROM tasks t WHERE t.shipment_id = s.id AND t.status = ANY(?)),
			s.created_at
		FROM shipments s`
	args := []any{names(task.OpenStatuses()...)}
	if len(query.statuses) > 0 {
		sql += " WHERE s.status = ANY(?)"
		args = append(args, names(query.statuses...))
	}
	sql += " ORDER BY s.created_at DESC, s.id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, storeError("list shipments", err)
	}
	defer rows.Close()

	shipments := make([]ShipmentSummary, 0)
	for rows.Next() {
		var (
			summary     ShipmentSummary
			id, ownerID uuid.UUID
			status      string
		)
		if err = rows.Scan(&id, &ownerID, &status, &summary.Origin, &summary.Destination,
			&summary.TrackingNumber, &summary.ItemCount, &summary.OpenTasks, &summary.CreatedAt); err != nil {
			return nil, err
		}
		if summary.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		if summary.OwnerID, err = idFrom(ownerID); err != nil {
			return nil, err
		}
		if summary.Status, err = shipment.ParseStatus(status); err != nil {
			return nil, err
		}
		shipments = append(shipments, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list shipments", err)
	}
	return shipments, nil
}
